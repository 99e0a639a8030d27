package handler

import (
	"errors"
	"html/template"
	"io"
	"path/filepath"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizerStrict = bluemonday.StrictPolicy()

type TemplateRegistry struct {
	templates map[string]*template.Template
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("template not found: " + name)
	}

	return tmpl.ExecuteTemplate(w, "base.html", data)
}

// NewRenderer parses every page template against the shared base layout.
func NewRenderer(dir string) *TemplateRegistry {
	pages := []string{
		"index.html",
		"group_list.html",
		"profile.html",
		"post_detail.html",
		"post_form.html",
		"follow.html",
		"user-login.html",
		"user-signup.html",
	}
	t := map[string]*template.Template{}
	for _, page := range pages {
		t[page] = template.Must(template.ParseFiles(
			filepath.Join(dir, page),
			filepath.Join(dir, "base.html"),
		))
	}
	return &TemplateRegistry{templates: t}
}

func mdToHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}

func safeMd(content string) template.HTML {
	maybeUnsafeHTML := mdToHTML(content)
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(maybeUnsafeHTML))
}
