package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ Projects = (*ProjectRepository)(nil)

const (
	projectColumns = `id, title, description, technologies, image_url, github_url, demo_url, category, featured, created_at, updated_at`

	selectProjectsSQL    = `SELECT ` + projectColumns + ` FROM projects`
	orderProjectsSQL     = ` ORDER BY created_at DESC, id DESC`
	selectProjectByIDSQL = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	projectExistsSQL     = `SELECT COUNT(1) FROM projects WHERE id = ?`
	countByCategorySQL   = `SELECT COUNT(1) FROM projects WHERE category = ?`
	insertProjectSQL     = `INSERT INTO projects (title, description, technologies, image_url, github_url, demo_url, category, featured, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING ` + projectColumns
	updateProjectSQL     = `UPDATE projects SET title = ?, description = ?, technologies = ?, image_url = ?, github_url = ?, demo_url = ?, category = ?, featured = ?, updated_at = ? WHERE id = ? RETURNING ` + projectColumns
	deleteProjectSQL     = `DELETE FROM projects WHERE id = ? RETURNING ` + projectColumns
)

// List returns projects matching the filter, newest first.
func (r *ProjectRepository) List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	var (
		conds []string
		args  []any
	)
	if f.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *f.Category)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, *f.Featured)
	}

	q := selectProjectsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += orderProjectsSQL

	out := make([]models.Project, 0, 16)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// GetByID returns (nil, nil) if the project does not exist.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	var p models.Project
	if err := r.db.GetContext(ctx, &p, r.db.Rebind(selectProjectByIDSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select project %d: %w", id, err)
	}
	return &p, nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(projectExistsSQL), id); err != nil {
		return false, fmt.Errorf("check project %d: %w", id, err)
	}
	return n > 0, nil
}

// CountByCategory counts projects whose category equals the given name.
func (r *ProjectRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(countByCategorySQL), category); err != nil {
		return 0, fmt.Errorf("count projects in %q: %w", category, err)
	}
	return n, nil
}

// Create inserts p and returns the stored row. ID and timestamps on p are ignored.
func (r *ProjectRepository) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	now := time.Now().UTC()
	var out models.Project
	err := r.db.GetContext(ctx, &out, r.db.Rebind(insertProjectSQL),
		p.Title, p.Description, p.Technologies, p.ImageURL, p.GithubURL, p.DemoURL,
		p.Category, p.Featured, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", classify(err))
	}
	return &out, nil
}

// Update overwrites the mutable fields of project p.ID and bumps updated_at.
// Returns (nil, nil) if the project does not exist.
func (r *ProjectRepository) Update(ctx context.Context, p models.Project) (*models.Project, error) {
	var out models.Project
	err := r.db.GetContext(ctx, &out, r.db.Rebind(updateProjectSQL),
		p.Title, p.Description, p.Technologies, p.ImageURL, p.GithubURL, p.DemoURL,
		p.Category, p.Featured, time.Now().UTC(), p.ID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update project %d: %w", p.ID, classify(err))
	}
	return &out, nil
}

// Delete removes the project and returns the deleted row. Comments go with it
// through the foreign key cascade. Returns (nil, nil) if nothing was deleted.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) (*models.Project, error) {
	var out models.Project
	if err := r.db.GetContext(ctx, &out, r.db.Rebind(deleteProjectSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete project %d: %w", id, err)
	}
	return &out, nil
}
