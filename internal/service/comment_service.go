package service

import (
	"context"
	"errors"
	"strings"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CommentInput struct {
	ProjectID   int64
	AuthorName  string
	AuthorEmail string
	Content     string
	Rating      *int
}

// Publisher receives moderation events.
type Publisher interface {
	Publish(ev models.ModerationEvent)
}

type CommentService struct {
	repo     repository.Comments
	projects repository.Projects
	events   Publisher
}

func NewCommentService(repo repository.Comments, projects repository.Projects, events Publisher) *CommentService {
	return &CommentService{repo: repo, projects: projects, events: events}
}

// ListApproved returns the public comments of a project.
func (s *CommentService) ListApproved(ctx context.Context, projectID int64) ([]models.Comment, error) {
	out, err := s.repo.ListApprovedByProject(ctx, projectID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return out, nil
}

// ListAll returns comments in any state with their project title.
func (s *CommentService) ListAll(ctx context.Context, f models.CommentFilter) ([]models.CommentWithProject, error) {
	out, err := s.repo.ListWithProject(ctx, f)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return out, nil
}

// Create stores a comment pending moderation.
func (s *CommentService) Create(ctx context.Context, in CommentInput) (*models.Comment, error) {
	c, err := in.toComment()
	if err != nil {
		return nil, err
	}

	ok, err := s.projects.Exists(ctx, c.ProjectID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if !ok {
		return nil, errs.NotFound("project")
	}

	out, err := s.repo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, errs.NotFound("project")
		}
		return nil, errs.Internal(err)
	}
	s.publish(models.EventCommentCreated, out)
	return out, nil
}

func (s *CommentService) SetApproval(ctx context.Context, id int64, approved bool) (*models.Comment, error) {
	out, err := s.repo.SetApproval(ctx, id, approved)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if out == nil {
		return nil, errs.NotFound("comment")
	}
	if approved {
		s.publish(models.EventCommentApproved, out)
	} else {
		s.publish(models.EventCommentRejected, out)
	}
	return out, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) (*models.Comment, error) {
	out, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if out == nil {
		return nil, errs.NotFound("comment")
	}
	s.publish(models.EventCommentDeleted, out)
	return out, nil
}

func (s *CommentService) publish(typ string, c *models.Comment) {
	if s.events == nil {
		return
	}
	s.events.Publish(models.ModerationEvent{Type: typ, Comment: *c})
}

func (in CommentInput) toComment() (models.Comment, error) {
	c := models.Comment{
		ProjectID:   in.ProjectID,
		AuthorName:  strings.TrimSpace(in.AuthorName),
		AuthorEmail: strings.TrimSpace(in.AuthorEmail),
		Content:     strings.TrimSpace(in.Content),
		Rating:      in.Rating,
	}
	switch {
	case c.ProjectID <= 0:
		return c, errs.MissingField("project_id")
	case c.AuthorName == "":
		return c, errs.MissingField("author_name")
	case c.AuthorEmail == "":
		return c, errs.MissingField("author_email")
	case validate.Var(c.AuthorEmail, "email") != nil:
		return c, errs.InvalidField("author_email", "not a valid email address")
	case c.Content == "":
		return c, errs.MissingField("content")
	case c.Rating != nil && (*c.Rating < models.MinRating || *c.Rating > models.MaxRating):
		return c, errs.InvalidField("rating", "must be between 1 and 5")
	}
	return c, nil
}
