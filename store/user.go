package store

import (
	"time"

	"quill/domain"
)

func (s *Store) CreateUser(u domain.User, hashedPassword string) error {
	now := time.Now().UTC()
	_, err := s.DB.Exec(
		"INSERT INTO users (id, username, password, createdAt, updatedAt) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Username, hashedPassword, now, now,
	)
	return err
}

func (s *Store) UserByID(id string) (domain.User, error) {
	var u domain.User
	row := s.DB.QueryRow("SELECT id, username, createdAt, updatedAt FROM users WHERE id = ?", id)
	err := row.Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	return u, notFound(err)
}

func (s *Store) UserByUsername(username string) (domain.User, error) {
	var u domain.User
	row := s.DB.QueryRow("SELECT id, username, createdAt, updatedAt FROM users WHERE username = ?", username)
	err := row.Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	return u, notFound(err)
}

// UserWithPassword returns the user and the stored bcrypt hash, for login.
func (s *Store) UserWithPassword(username string) (domain.User, string, error) {
	var u domain.User
	var hashed string
	row := s.DB.QueryRow("SELECT id, username, password, createdAt, updatedAt FROM users WHERE username = ?", username)
	err := row.Scan(&u.ID, &u.Username, &hashed, &u.CreatedAt, &u.UpdatedAt)
	return u, hashed, notFound(err)
}

func (s *Store) UsernameTaken(username string) (bool, error) {
	var count int
	row := s.DB.QueryRow("SELECT COUNT(username) FROM users WHERE username = ?", username)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count != 0, nil
}

func (s *Store) DeleteUser(id string) error {
	_, err := s.DB.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}
