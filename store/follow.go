package store

import (
	"quill/domain"
)

// CreateFollow subscribes f.UserID to f.AuthorID. A follow that already
// exists is a no-op: the UNIQUE(user_id, author_id) constraint plus ON
// CONFLICT DO NOTHING makes the operation safe under concurrent duplicate
// requests.
func (s *Store) CreateFollow(f domain.Follow) error {
	_, err := s.DB.Exec(
		`INSERT INTO follows (id, user_id, author_id) VALUES (?, ?, ?)
		ON CONFLICT (user_id, author_id) DO NOTHING`,
		f.ID, f.UserID, f.AuthorID,
	)
	return err
}

// DeleteFollow removes the subscription, reporting ErrNotFound when the
// pair was not subscribed.
func (s *Store) DeleteFollow(userID, authorID string) error {
	res, err := s.DB.Exec("DELETE FROM follows WHERE user_id = ? AND author_id = ?", userID, authorID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Following(userID, authorID string) (bool, error) {
	var count int
	row := s.DB.QueryRow("SELECT COUNT(id) FROM follows WHERE user_id = ? AND author_id = ?", userID, authorID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count != 0, nil
}

func (s *Store) CountFollows(userID, authorID string) (int, error) {
	var count int
	row := s.DB.QueryRow("SELECT COUNT(id) FROM follows WHERE user_id = ? AND author_id = ?", userID, authorID)
	err := row.Scan(&count)
	return count, err
}
