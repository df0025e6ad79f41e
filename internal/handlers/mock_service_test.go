package handlers

import (
	"context"
	"net/http"

	"portfolio_api/internal/logger"
	"portfolio_api/internal/models"
	"portfolio_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginRes *service.LoginResult
	loginErr error
	claims   models.Claims
	parseErr error
	resetErr error

	lastEmail, lastPassword string
	lastParseToken          string
	resetCalls              int
}

func (m *mockAuth) Login(_ context.Context, email, password string) (*service.LoginResult, error) {
	m.lastEmail, m.lastPassword = email, password
	return m.loginRes, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (models.Claims, error) {
	m.lastParseToken = token
	return m.claims, m.parseErr
}

func (m *mockAuth) ResetAdmin(_ context.Context, email, password string) (*models.AdminCredentials, error) {
	m.resetCalls++
	m.lastEmail, m.lastPassword = email, password
	if m.resetErr != nil {
		return nil, m.resetErr
	}
	if email == "" {
		email = "admin@example.com"
	}
	return &models.AdminCredentials{Email: email, Password: password}, nil
}

type mockProjects struct {
	list      []models.Project
	project   *models.Project
	err       error
	lastFlt   models.ProjectFilter
	lastID    int64
	lastInput service.ProjectInput
}

func (m *mockProjects) List(_ context.Context, f models.ProjectFilter) ([]models.Project, error) {
	m.lastFlt = f
	return m.list, m.err
}

func (m *mockProjects) Get(_ context.Context, id int64) (*models.Project, error) {
	m.lastID = id
	return m.project, m.err
}

func (m *mockProjects) Create(_ context.Context, in service.ProjectInput) (*models.Project, error) {
	m.lastInput = in
	return m.project, m.err
}

func (m *mockProjects) Update(_ context.Context, id int64, in service.ProjectInput) (*models.Project, error) {
	m.lastID, m.lastInput = id, in
	return m.project, m.err
}

func (m *mockProjects) Delete(_ context.Context, id int64) (*models.Project, error) {
	m.lastID = id
	return m.project, m.err
}

type mockCategories struct {
	list      []models.CategoryWithCount
	category  *models.Category
	err       error
	lastID    int64
	lastInput service.CategoryInput
}

func (m *mockCategories) List(context.Context) ([]models.CategoryWithCount, error) {
	return m.list, m.err
}

func (m *mockCategories) Get(_ context.Context, id int64) (*models.Category, error) {
	m.lastID = id
	return m.category, m.err
}

func (m *mockCategories) Create(_ context.Context, in service.CategoryInput) (*models.Category, error) {
	m.lastInput = in
	return m.category, m.err
}

func (m *mockCategories) Update(_ context.Context, id int64, in service.CategoryInput) (*models.Category, error) {
	m.lastID, m.lastInput = id, in
	return m.category, m.err
}

func (m *mockCategories) Delete(_ context.Context, id int64) (*models.Category, error) {
	m.lastID = id
	return m.category, m.err
}

type mockComments struct {
	approved     []models.Comment
	all          []models.CommentWithProject
	comment      *models.Comment
	err          error
	lastID       int64
	lastFilter   models.CommentFilter
	lastInput    service.CommentInput
	lastApproved *bool
}

func (m *mockComments) ListApproved(_ context.Context, projectID int64) ([]models.Comment, error) {
	m.lastID = projectID
	return m.approved, m.err
}

func (m *mockComments) ListAll(_ context.Context, f models.CommentFilter) ([]models.CommentWithProject, error) {
	m.lastFilter = f
	return m.all, m.err
}

func (m *mockComments) Create(_ context.Context, in service.CommentInput) (*models.Comment, error) {
	m.lastInput = in
	return m.comment, m.err
}

func (m *mockComments) SetApproval(_ context.Context, id int64, approved bool) (*models.Comment, error) {
	m.lastID, m.lastApproved = id, &approved
	if m.comment != nil {
		m.comment.Approved = approved
	}
	return m.comment, m.err
}

func (m *mockComments) Delete(_ context.Context, id int64) (*models.Comment, error) {
	m.lastID = id
	return m.comment, m.err
}

// ---- Shared Test Helpers ----

const adminToken = "admin-token"

// adminAuth accepts adminToken as an admin identity and rejects anything else.
type adminAuth struct{ mockAuth }

func (a *adminAuth) ParseToken(token string) (models.Claims, error) {
	a.lastParseToken = token
	if token != adminToken {
		return models.Claims{}, errInvalidTokenForTest
	}
	return models.Claims{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin}, nil
}

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if s.Authorization == nil {
		s.Authorization = &adminAuth{}
	}
	return NewHandler(s, logger.Nop(), opts...).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
