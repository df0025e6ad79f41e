package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio_api/internal/models"

	"github.com/jmoiron/sqlx"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ Categories = (*CategoryRepository)(nil)

const (
	categoryColumns = `id, name, color, description, created_at`

	listCategoriesWithCountsSQL = `SELECT c.id, c.name, c.color, c.description, c.created_at, COUNT(p.id) AS project_count
		FROM categories c
		LEFT JOIN projects p ON p.category = c.name
		GROUP BY c.id, c.name, c.color, c.description, c.created_at
		ORDER BY c.name ASC`
	selectCategoryByIDSQL = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	categoryNameTakenSQL  = `SELECT COUNT(1) FROM categories WHERE name = ? AND id <> ?`
	countCategoriesSQL    = `SELECT COUNT(1) FROM categories`
	insertCategorySQL     = `INSERT INTO categories (name, color, description, created_at) VALUES (?, ?, ?, ?) RETURNING ` + categoryColumns
	updateCategorySQL     = `UPDATE categories SET name = ?, color = ?, description = ? WHERE id = ? RETURNING ` + categoryColumns
	deleteCategorySQL     = `DELETE FROM categories WHERE id = ? RETURNING ` + categoryColumns
)

// ListWithCounts returns every category ordered by name, each with the number
// of projects whose category matches its name.
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]models.CategoryWithCount, error) {
	out := make([]models.CategoryWithCount, 0, 8)
	if err := r.db.SelectContext(ctx, &out, listCategoriesWithCountsSQL); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// GetByID returns (nil, nil) if the category does not exist.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := r.db.GetContext(ctx, &c, r.db.Rebind(selectCategoryByIDSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select category %d: %w", id, err)
	}
	return &c, nil
}

// NameTaken reports whether another category already uses name.
// Pass excludeID = 0 when no row should be skipped.
func (r *CategoryRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(categoryNameTakenSQL), name, excludeID); err != nil {
		return false, fmt.Errorf("check category name %q: %w", name, err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, countCategoriesSQL); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (*models.Category, error) {
	var out models.Category
	err := r.db.GetContext(ctx, &out, r.db.Rebind(insertCategorySQL), c.Name, c.Color, c.Description, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("insert category %q: %w", c.Name, classify(err))
	}
	return &out, nil
}

// Update returns (nil, nil) if the category does not exist.
func (r *CategoryRepository) Update(ctx context.Context, c models.Category) (*models.Category, error) {
	var out models.Category
	err := r.db.GetContext(ctx, &out, r.db.Rebind(updateCategorySQL), c.Name, c.Color, c.Description, c.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update category %d: %w", c.ID, classify(err))
	}
	return &out, nil
}

// Delete returns the removed row, or (nil, nil) if nothing matched.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (*models.Category, error) {
	var out models.Category
	if err := r.db.GetContext(ctx, &out, r.db.Rebind(deleteCategorySQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete category %d: %w", id, err)
	}
	return &out, nil
}
