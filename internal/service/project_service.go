package service

import (
	"context"
	"strings"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
)

// ProjectInput is the writable part of a project. ImageURL is set only when
// a new image was stored for this request.
type ProjectInput struct {
	Title        string
	Description  string
	Technologies []string
	GithubURL    *string
	DemoURL      *string
	Category     string
	Featured     bool
	ImageURL     *string
}

type ProjectService struct {
	repo repository.Projects
}

func NewProjectService(repo repository.Projects) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) List(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	if f.Category != nil {
		c := strings.TrimSpace(*f.Category)
		if c == "" {
			f.Category = nil
		} else {
			f.Category = &c
		}
	}
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return out, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if p == nil {
		return nil, errs.NotFound("project")
	}
	return p, nil
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	p, err := in.toProject()
	if err != nil {
		return nil, err
	}
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return out, nil
}

// Update replaces every writable field. The stored image is kept when in
// carries none.
func (s *ProjectService) Update(ctx context.Context, id int64, in ProjectInput) (*models.Project, error) {
	p, err := in.toProject()
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if existing == nil {
		return nil, errs.NotFound("project")
	}
	if p.ImageURL == nil {
		p.ImageURL = existing.ImageURL
	}
	p.ID = id

	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if out == nil {
		return nil, errs.NotFound("project")
	}
	return out, nil
}

// Delete removes the project and its comments and returns the removed row.
func (s *ProjectService) Delete(ctx context.Context, id int64) (*models.Project, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if p == nil {
		return nil, errs.NotFound("project")
	}
	return p, nil
}

func (in ProjectInput) toProject() (models.Project, error) {
	p := models.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Technologies: NormalizeTechnologies(in.Technologies),
		GithubURL:    optionalString(in.GithubURL),
		DemoURL:      optionalString(in.DemoURL),
		Category:     strings.TrimSpace(in.Category),
		Featured:     in.Featured,
		ImageURL:     optionalString(in.ImageURL),
	}
	switch {
	case p.Title == "":
		return p, errs.MissingField("title")
	case p.Description == "":
		return p, errs.MissingField("description")
	case len(p.Technologies) == 0:
		return p, errs.MissingField("technologies")
	}
	if p.Category == "" {
		p.Category = models.DefaultProjectCategory
	}
	return p, nil
}

// NormalizeTechnologies splits every item on commas, trims the parts and
// drops empty ones. Order is preserved.
func NormalizeTechnologies(items []string) models.StringList {
	out := make(models.StringList, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// optionalString maps nil and blank values to nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
