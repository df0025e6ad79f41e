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

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

var _ Comments = (*CommentRepository)(nil)

const (
	commentColumns = `id, project_id, author_name, author_email, content, rating, approved, created_at`

	selectApprovedCommentsSQL = `SELECT ` + commentColumns + ` FROM comments WHERE project_id = ? AND approved = ? ORDER BY created_at DESC, id DESC`
	selectCommentsWithProject = `SELECT c.id, c.project_id, c.author_name, c.author_email, c.content, c.rating, c.approved, c.created_at, p.title AS project_title
		FROM comments c
		JOIN projects p ON p.id = c.project_id`
	orderCommentsWithProject = ` ORDER BY c.created_at DESC, c.id DESC`
	insertCommentSQL         = `INSERT INTO comments (project_id, author_name, author_email, content, rating, approved, created_at) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING ` + commentColumns
	setCommentApprovalSQL    = `UPDATE comments SET approved = ? WHERE id = ? RETURNING ` + commentColumns
	deleteCommentSQL         = `DELETE FROM comments WHERE id = ? RETURNING ` + commentColumns
)

// ListApprovedByProject returns the approved comments of one project, newest first.
func (r *CommentRepository) ListApprovedByProject(ctx context.Context, projectID int64) ([]models.Comment, error) {
	out := make([]models.Comment, 0, 8)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(selectApprovedCommentsSQL), projectID, true); err != nil {
		return nil, fmt.Errorf("list comments of project %d: %w", projectID, err)
	}
	return out, nil
}

// ListWithProject returns comments joined with their project title, newest first.
func (r *CommentRepository) ListWithProject(ctx context.Context, f models.CommentFilter) ([]models.CommentWithProject, error) {
	q := selectCommentsWithProject
	var args []any
	if f.Approved != nil {
		q += " WHERE c.approved = ?"
		args = append(args, *f.Approved)
	}
	q += orderCommentsWithProject

	out := make([]models.CommentWithProject, 0, 16)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return out, nil
}

// Create stores c as pending moderation regardless of c.Approved.
func (r *CommentRepository) Create(ctx context.Context, c models.Comment) (*models.Comment, error) {
	var out models.Comment
	err := r.db.GetContext(ctx, &out, r.db.Rebind(insertCommentSQL),
		c.ProjectID, c.AuthorName, c.AuthorEmail, c.Content, c.Rating, false, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment for project %d: %w", c.ProjectID, classify(err))
	}
	return &out, nil
}

// SetApproval returns (nil, nil) if the comment does not exist.
func (r *CommentRepository) SetApproval(ctx context.Context, id int64, approved bool) (*models.Comment, error) {
	var out models.Comment
	if err := r.db.GetContext(ctx, &out, r.db.Rebind(setCommentApprovalSQL), approved, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set approval of comment %d: %w", id, err)
	}
	return &out, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) (*models.Comment, error) {
	var out models.Comment
	if err := r.db.GetContext(ctx, &out, r.db.Rebind(deleteCommentSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete comment %d: %w", id, err)
	}
	return &out, nil
}
