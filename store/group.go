package store

import (
	"quill/domain"
)

// Groups are managed administratively; the application only reads them,
// except for the seeding helper used at install time.

func (s *Store) CreateGroup(g domain.Group) error {
	_, err := s.DB.Exec(
		"INSERT INTO groups (id, title, slug, description) VALUES (?, ?, ?, ?)",
		g.ID, g.Title, g.Slug, g.Description,
	)
	return err
}

func (s *Store) Groups() ([]domain.Group, error) {
	rows, err := s.DB.Query("SELECT id, title, slug, description FROM groups ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Store) GroupBySlug(slug string) (domain.Group, error) {
	var g domain.Group
	row := s.DB.QueryRow("SELECT id, title, slug, description FROM groups WHERE slug = ?", slug)
	err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	return g, notFound(err)
}

func (s *Store) GroupByID(id string) (domain.Group, error) {
	var g domain.Group
	row := s.DB.QueryRow("SELECT id, title, slug, description FROM groups WHERE id = ?", id)
	err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	return g, notFound(err)
}

func (s *Store) DeleteGroup(id string) error {
	_, err := s.DB.Exec("DELETE FROM groups WHERE id = ?", id)
	return err
}
