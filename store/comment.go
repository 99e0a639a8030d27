package store

import (
	"quill/domain"
)

func (s *Store) CreateComment(c domain.Comment) error {
	_, err := s.DB.Exec(
		"INSERT INTO comments (id, post_id, author_id, text, createdAt) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.PostID, c.Author.ID, c.Text, c.CreatedAt,
	)
	return err
}

func (s *Store) CommentsByPost(postID string) ([]domain.Comment, error) {
	rows, err := s.DB.Query(`SELECT c.id, c.post_id, c.text, c.createdAt, u.id, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ?
		ORDER BY c.createdAt DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Text, &c.CreatedAt, &c.Author.ID, &c.Author.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
