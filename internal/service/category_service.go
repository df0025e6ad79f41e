package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var errCategoryNameTaken = errs.Conflict("a category with that name already exists")

type CategoryInput struct {
	Name        string
	Color       string
	Description *string
}

type CategoryService struct {
	repo     repository.Categories
	projects repository.Projects
}

func NewCategoryService(repo repository.Categories, projects repository.Projects) *CategoryService {
	return &CategoryService{repo: repo, projects: projects}
}

// List returns all categories by name with their project counts.
func (s *CategoryService) List(ctx context.Context) ([]models.CategoryWithCount, error) {
	out, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if c == nil {
		return nil, errs.NotFound("category")
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	c, err := in.toCategory()
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.NameTaken(ctx, c.Name, 0)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if taken {
		return nil, errCategoryNameTaken
	}

	out, err := s.repo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCategoryNameTaken
		}
		return nil, errs.Internal(err)
	}
	return out, nil
}

// Update rewrites name, color and description. Projects filed under the old
// name keep it.
func (s *CategoryService) Update(ctx context.Context, id int64, in CategoryInput) (*models.Category, error) {
	c, err := in.toCategory()
	if err != nil {
		return nil, err
	}
	c.ID = id

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing == nil {
		return nil, errs.NotFound("category")
	}

	taken, err := s.repo.NameTaken(ctx, c.Name, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if taken {
		return nil, errCategoryNameTaken
	}

	out, err := s.repo.Update(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCategoryNameTaken
		}
		return nil, errs.Internal(err)
	}
	if out == nil {
		return nil, errs.NotFound("category")
	}
	return out, nil
}

// Delete refuses while any project is filed under the category's name.
func (s *CategoryService) Delete(ctx context.Context, id int64) (*models.Category, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing == nil {
		return nil, errs.NotFound("category")
	}

	n, err := s.projects.CountByCategory(ctx, existing.Name)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if n > 0 {
		return nil, errs.Conflict("category is in use by one or more projects")
	}

	out, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if out == nil {
		return nil, errs.NotFound("category")
	}
	return out, nil
}

func (in CategoryInput) toCategory() (models.Category, error) {
	c := models.Category{
		Name:        strings.TrimSpace(in.Name),
		Color:       strings.TrimSpace(in.Color),
		Description: optionalString(in.Description),
	}
	switch {
	case c.Name == "":
		return c, errs.MissingField("name")
	case c.Color == "":
		return c, errs.MissingField("color")
	case !colorPattern.MatchString(c.Color):
		return c, errs.InvalidField("color", "expected #RRGGBB")
	}
	return c, nil
}
