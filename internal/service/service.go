package service

import (
	"context"
	"time"

	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
)

type Authorization interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ParseToken(accessToken string) (models.Claims, error)
	ResetAdmin(ctx context.Context, email, password string) (*models.AdminCredentials, error)
}

type Projects interface {
	List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	Create(ctx context.Context, in ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id int64, in ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id int64) (*models.Project, error)
}

type Categories interface {
	List(ctx context.Context) ([]models.CategoryWithCount, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, in CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id int64, in CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id int64) (*models.Category, error)
}

type Comments interface {
	ListApproved(ctx context.Context, projectID int64) ([]models.Comment, error)
	ListAll(ctx context.Context, f models.CommentFilter) ([]models.CommentWithProject, error)
	Create(ctx context.Context, in CommentInput) (*models.Comment, error)
	SetApproval(ctx context.Context, id int64, approved bool) (*models.Comment, error)
	Delete(ctx context.Context, id int64) (*models.Comment, error)
}

// Moderation streams comment moderation events to admins.
type Moderation interface {
	Subscribe() (<-chan models.ModerationEvent, func())
}

// Service aggregates the use cases exposed over HTTP.
type Service struct {
	Authorization Authorization
	Projects      Projects
	Categories    Categories
	Comments      Comments
	Moderation    Moderation
}

type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Admin      models.AdminCredentials
	Feed       *ModerationFeed
}

// NewService wires the repositories into concrete services. The returned
// AuthService is also used for bootstrap and the reset tool.
func NewService(repos *repository.Repository, opts Options) (*Service, *AuthService) {
	feed := opts.Feed
	if feed == nil {
		feed = NewModerationFeed()
	}
	auth := NewAuthService(repos.Users, NewTokenManager(opts.JWTSecret, opts.TokenTTL), opts.BcryptCost, opts.Admin)

	return &Service{
		Authorization: auth,
		Projects:      NewProjectService(repos.Projects),
		Categories:    NewCategoryService(repos.Categories, repos.Projects),
		Comments:      NewCommentService(repos.Comments, repos.Projects, feed),
		Moderation:    feed,
	}, auth
}
