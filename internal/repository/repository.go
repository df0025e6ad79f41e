package repository

import (
	"context"

	"portfolio_api/internal/models"

	"github.com/jmoiron/sqlx"
)

// Lookups return (nil, nil) when the row does not exist.

type Users interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type Projects interface {
	List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	Update(ctx context.Context, p models.Project) (*models.Project, error)
	Delete(ctx context.Context, id int64) (*models.Project, error)
}

type Categories interface {
	ListWithCounts(ctx context.Context) ([]models.CategoryWithCount, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, c models.Category) (*models.Category, error)
	Update(ctx context.Context, c models.Category) (*models.Category, error)
	Delete(ctx context.Context, id int64) (*models.Category, error)
}

type Comments interface {
	ListApprovedByProject(ctx context.Context, projectID int64) ([]models.Comment, error)
	ListWithProject(ctx context.Context, f models.CommentFilter) ([]models.CommentWithProject, error)
	Create(ctx context.Context, c models.Comment) (*models.Comment, error)
	SetApproval(ctx context.Context, id int64, approved bool) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (*models.Comment, error)
}

type Repository struct {
	Users      Users
	Projects   Projects
	Categories Categories
	Comments   Comments
}

// NewRepository wires every table repository onto the shared pool.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:      NewUserRepository(db),
		Projects:   NewProjectRepository(db),
		Categories: NewCategoryRepository(db),
		Comments:   NewCommentRepository(db),
	}
}
