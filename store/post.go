package store

import (
	"database/sql"

	"quill/domain"
)

const postSelect = `SELECT p.id, p.text, p.image, p.createdAt,
	u.id, u.username,
	g.id, g.title, g.slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

const postOrder = " ORDER BY p.createdAt DESC"

func scanPost(row interface{ Scan(...any) error }) (domain.Post, error) {
	var p domain.Post
	var gid, gtitle, gslug sql.NullString
	err := row.Scan(&p.ID, &p.Text, &p.Image, &p.CreatedAt,
		&p.Author.ID, &p.Author.Username,
		&gid, &gtitle, &gslug)
	if err != nil {
		return p, err
	}
	if gid.Valid {
		p.Group = &domain.Group{ID: gid.String, Title: gtitle.String, Slug: gslug.String}
	}
	return p, nil
}

func (s *Store) collectPosts(query string, args ...any) ([]domain.Post, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Store) CreatePost(p domain.Post) error {
	var groupID any
	if p.Group != nil {
		groupID = p.Group.ID
	}
	_, err := s.DB.Exec(
		"INSERT INTO posts (id, text, image, group_id, author_id, createdAt) VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.Text, p.Image, groupID, p.Author.ID, p.CreatedAt,
	)
	return err
}

// UpdatePost changes the mutable fields of a post. The author and creation
// timestamp never change after creation. An empty groupID clears the group.
func (s *Store) UpdatePost(id, text, groupID, image string) error {
	var gid any
	if groupID != "" {
		gid = groupID
	}
	res, err := s.DB.Exec(
		"UPDATE posts SET text = ?, group_id = ?, image = ? WHERE id = ?",
		text, gid, image, id,
	)
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

func (s *Store) PostByID(id string) (domain.Post, error) {
	p, err := scanPost(s.DB.QueryRow(postSelect+" WHERE p.id = ?", id))
	return p, notFound(err)
}

func (s *Store) DeletePost(id string) error {
	_, err := s.DB.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

func (s *Store) AllPosts() ([]domain.Post, error) {
	return s.collectPosts(postSelect + postOrder)
}

func (s *Store) PostsByGroup(groupID string) ([]domain.Post, error) {
	return s.collectPosts(postSelect+" WHERE p.group_id = ?"+postOrder, groupID)
}

func (s *Store) PostsByAuthor(authorID string) ([]domain.Post, error) {
	return s.collectPosts(postSelect+" WHERE p.author_id = ?"+postOrder, authorID)
}

// FeedPosts lists posts by every author the given user follows.
func (s *Store) FeedPosts(userID string) ([]domain.Post, error) {
	return s.collectPosts(postSelect+
		" JOIN follows f ON f.author_id = p.author_id WHERE f.user_id = ?"+postOrder, userID)
}

func (s *Store) CountPosts() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(id) FROM posts").Scan(&count)
	return count, err
}
