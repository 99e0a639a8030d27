package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("index:1", []byte("<html>page one</html>"))

	body, ok := c.Get("index:1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(body, []byte("<html>page one</html>")) {
		t.Fatalf("unexpected body: %s", body)
	}

	if _, ok := c.Get("index:2"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestEntriesExpire(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("k", []byte("v"))

	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after clear")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected miss after clear")
	}
}
