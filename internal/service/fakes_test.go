package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"portfolio_api/internal/models"
	"portfolio_api/internal/repository"
)

// In-memory repositories. They follow the (nil, nil) not-found convention of
// the SQL implementations.

type fakeUsers struct {
	mu     sync.Mutex
	byMail map[string]*models.User
	nextID int64
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byMail: map[string]*models.User{}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(_ context.Context, email, hash string, role models.Role) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byMail[email]; ok {
		return nil, repository.ErrDuplicate
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Email: email, PasswordHash: hash, Role: role, CreatedAt: time.Now().UTC()}
	f.byMail[email] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) DeleteByEmail(_ context.Context, email string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byMail[email]; !ok {
		return 0, nil
	}
	delete(f.byMail, email)
	return 1, nil
}

type fakeProjects struct {
	rows   map[int64]models.Project
	nextID int64
	clock  time.Time
	// onDelete runs after a project row is removed (cascade hook).
	onDelete func(id int64)
	err      error
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{rows: map[int64]models.Project{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeProjects) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeProjects) List(_ context.Context, flt models.ProjectFilter) ([]models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Project{}
	for _, p := range f.rows {
		if flt.Category != nil && p.Category != *flt.Category {
			continue
		}
		if flt.Featured != nil && p.Featured != *flt.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProjects) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, f.err
}

func (f *fakeProjects) CountByCategory(_ context.Context, category string) (int64, error) {
	var n int64
	for _, p := range f.rows {
		if p.Category == category {
			n++
		}
	}
	return n, f.err
}

func (f *fakeProjects) Create(_ context.Context, p models.Project) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = f.tick()
	p.UpdatedAt = p.CreatedAt
	if p.Technologies == nil {
		p.Technologies = models.StringList{}
	}
	f.rows[p.ID] = p
	return &p, nil
}

func (f *fakeProjects) Update(_ context.Context, p models.Project) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	old, ok := f.rows[p.ID]
	if !ok {
		return nil, nil
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = f.tick()
	f.rows[p.ID] = p
	return &p, nil
}

func (f *fakeProjects) Delete(_ context.Context, id int64) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	delete(f.rows, id)
	if f.onDelete != nil {
		f.onDelete(id)
	}
	return &p, nil
}

type fakeCategories struct {
	rows     map[int64]models.Category
	nextID   int64
	projects *fakeProjects
	// createErr is returned by Create once, then cleared.
	createErr error
}

func newFakeCategories(projects *fakeProjects) *fakeCategories {
	return &fakeCategories{rows: map[int64]models.Category{}, projects: projects}
}

func (f *fakeCategories) ListWithCounts(ctx context.Context) ([]models.CategoryWithCount, error) {
	out := []models.CategoryWithCount{}
	for _, c := range f.rows {
		n, _ := f.projects.CountByCategory(ctx, c.Name)
		out = append(out, models.CategoryWithCount{Category: c, ProjectCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id int64) (*models.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCategories) NameTaken(_ context.Context, name string, excludeID int64) (bool, error) {
	for id, c := range f.rows {
		if c.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategories) Count(context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeCategories) Create(ctx context.Context, c models.Category) (*models.Category, error) {
	if err := f.createErr; err != nil {
		f.createErr = nil
		return nil, err
	}
	if taken, _ := f.NameTaken(ctx, c.Name, 0); taken {
		return nil, repository.ErrDuplicate
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now().UTC()
	f.rows[c.ID] = c
	return &c, nil
}

func (f *fakeCategories) Update(_ context.Context, c models.Category) (*models.Category, error) {
	old, ok := f.rows[c.ID]
	if !ok {
		return nil, nil
	}
	c.CreatedAt = old.CreatedAt
	f.rows[c.ID] = c
	return &c, nil
}

func (f *fakeCategories) Delete(_ context.Context, id int64) (*models.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	delete(f.rows, id)
	return &c, nil
}

type fakeComments struct {
	rows     map[int64]models.Comment
	nextID   int64
	projects *fakeProjects
	clock    time.Time
}

func newFakeComments(projects *fakeProjects) *fakeComments {
	f := &fakeComments{rows: map[int64]models.Comment{}, projects: projects, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	projects.onDelete = func(pid int64) {
		for id, c := range f.rows {
			if c.ProjectID == pid {
				delete(f.rows, id)
			}
		}
	}
	return f
}

func (f *fakeComments) sorted(keep func(models.Comment) bool) []models.Comment {
	out := []models.Comment{}
	for _, c := range f.rows {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeComments) ListApprovedByProject(_ context.Context, projectID int64) ([]models.Comment, error) {
	return f.sorted(func(c models.Comment) bool { return c.ProjectID == projectID && c.Approved }), nil
}

func (f *fakeComments) ListWithProject(_ context.Context, flt models.CommentFilter) ([]models.CommentWithProject, error) {
	out := []models.CommentWithProject{}
	for _, c := range f.sorted(func(c models.Comment) bool { return flt.Approved == nil || c.Approved == *flt.Approved }) {
		out = append(out, models.CommentWithProject{Comment: c, ProjectTitle: f.projects.rows[c.ProjectID].Title})
	}
	return out, nil
}

func (f *fakeComments) Create(_ context.Context, c models.Comment) (*models.Comment, error) {
	if _, ok := f.projects.rows[c.ProjectID]; !ok {
		return nil, repository.ErrForeignKey
	}
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	c.ID = f.nextID
	c.Approved = false
	c.CreatedAt = f.clock
	f.rows[c.ID] = c
	return &c, nil
}

func (f *fakeComments) SetApproval(_ context.Context, id int64, approved bool) (*models.Comment, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	c.Approved = approved
	f.rows[id] = c
	return &c, nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) (*models.Comment, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	delete(f.rows, id)
	return &c, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	events []models.ModerationEvent
}

func (p *recordingPublisher) Publish(ev models.ModerationEvent) {
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
