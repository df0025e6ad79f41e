package service

import (
	"context"
	"testing"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture() (*CategoryService, *fakeCategories, *ProjectService) {
	projects := newFakeProjects()
	cats := newFakeCategories(projects)
	return NewCategoryService(cats, projects), cats, NewProjectService(projects)
}

func TestCategoryService_CreateValidation(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	tests := []struct {
		name  string
		in    CategoryInput
		field string
	}{
		{name: "missing name", in: CategoryInput{Color: "#FFFFFF"}, field: "name"},
		{name: "missing color", in: CategoryInput{Name: "Games"}, field: "color"},
		{name: "short color", in: CategoryInput{Name: "Games", Color: "#FFF"}, field: "color"},
		{name: "no hash", in: CategoryInput{Name: "Games", Color: "FFFFFF"}, field: "color"},
		{name: "non hex", in: CategoryInput{Name: "Games", Color: "#GGGGGG"}, field: "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.True(t, errs.IsBadRequest(err), "got %v", err)
			assert.Equal(t, tt.field, errs.From(err).Field)
		})
	}
}

func TestCategoryService_UniqueName(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()

	games, err := svc.Create(ctx, CategoryInput{Name: "Games", Color: "#aabbcc", Description: sp("")})
	require.NoError(t, err)
	assert.Nil(t, games.Description)

	_, err = svc.Create(ctx, CategoryInput{Name: "Games", Color: "#000000"})
	assert.True(t, errs.IsConflict(err))

	tools, err := svc.Create(ctx, CategoryInput{Name: "Tools", Color: "#000000"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, tools.ID, CategoryInput{Name: "Games", Color: "#000000"})
	assert.True(t, errs.IsConflict(err), "renaming onto another category's name")

	same, err := svc.Update(ctx, tools.ID, CategoryInput{Name: "Tools", Color: "#111111"})
	require.NoError(t, err, "keeping its own name is allowed")
	assert.Equal(t, "#111111", same.Color)
}

func TestCategoryService_Create_StoreRaceIsConflict(t *testing.T) {
	svc, cats, _ := newCategoryFixture()
	cats.createErr = repository.ErrDuplicate

	_, err := svc.Create(context.Background(), CategoryInput{Name: "Games", Color: "#000000"})
	assert.True(t, errs.IsConflict(err))
}

func TestCategoryService_DeleteGuard(t *testing.T) {
	svc, _, projects := newCategoryFixture()
	ctx := context.Background()

	mobile, err := svc.Create(ctx, CategoryInput{Name: "mobile", Color: "#BB8FCE"})
	require.NoError(t, err)

	in := validProject()
	in.Category = "mobile"
	p, err := projects.Create(ctx, in)
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ProjectCount)

	_, err = svc.Delete(ctx, mobile.ID)
	assert.True(t, errs.IsConflict(err))

	_, err = projects.Delete(ctx, p.ID)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, mobile.ID)
	require.NoError(t, err)
	assert.Equal(t, "mobile", deleted.Name)

	_, err = svc.Delete(ctx, mobile.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestCategoryService_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()

	_, err := svc.Get(ctx, 5)
	assert.True(t, errs.IsNotFound(err))
	_, err = svc.Update(ctx, 5, CategoryInput{Name: "x", Color: "#000000"})
	assert.True(t, errs.IsNotFound(err))
}
