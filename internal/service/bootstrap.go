package service

import (
	"context"
	"errors"
	"fmt"

	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
)

func strRef(s string) *string { return &s }

// DefaultCategories are seeded into an empty categories table.
var DefaultCategories = []models.Category{
	{Name: "Web", Color: "#7FB3D5", Description: strRef("Aplicaciones y sitios web")},
	{Name: "Backend", Color: "#82E0AA", Description: strRef("APIs y servicios de servidor")},
	{Name: "Mobile", Color: "#BB8FCE", Description: strRef("Aplicaciones móviles")},
	{Name: "Desktop", Color: "#F7DC6F", Description: strRef("Aplicaciones de escritorio")},
	{Name: "DevOps", Color: "#E74C3C", Description: strRef("Infraestructura y despliegue")},
}

// BootstrapReport says what Bootstrap changed.
type BootstrapReport struct {
	AdminCreated     bool
	CategoriesSeeded int
}

// Bootstrap creates the configured admin when missing and seeds the default
// categories when none exist.
func Bootstrap(ctx context.Context, auth *AuthService, categories repository.Categories) (BootstrapReport, error) {
	var rep BootstrapReport

	created, err := auth.EnsureAdmin(ctx)
	if err != nil {
		return rep, fmt.Errorf("ensure admin: %w", err)
	}
	rep.AdminCreated = created

	n, err := categories.Count(ctx)
	if err != nil {
		return rep, fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return rep, nil
	}
	for _, c := range DefaultCategories {
		if _, err := categories.Create(ctx, c); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return rep, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		rep.CategoriesSeeded++
	}
	return rep, nil
}
