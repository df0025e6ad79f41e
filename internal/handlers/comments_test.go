package handlers

import (
	"net/http"
	"strings"
	"testing"

	"portfolio_api/internal/errs"
	"portfolio_api/internal/models"
	"portfolio_api/internal/service"
)

func TestComments_ListApproved(t *testing.T) {
	comments := &mockComments{approved: []models.Comment{{ID: 1, ProjectID: 3, Approved: true}}}
	r := newTestRouter(&service.Service{Comments: comments})

	w := do(t, r, http.MethodGet, "/api/comments/project/3", nil, "")
	expectStatus(t, w, http.StatusOK)
	if comments.lastID != 3 {
		t.Fatalf("expected project id 3, got %d", comments.lastID)
	}

	w = do(t, r, http.MethodGet, "/api/comments/project/x", nil, "")
	expectError(t, w, http.StatusBadRequest, "projectId")
}

func TestComments_Create(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
		field  string
	}{
		{
			name:   "submitted",
			body:   `{"project_id":3,"author_name":"Ana","author_email":"ana@example.com","content":"Nice","rating":5}`,
			status: http.StatusCreated,
		},
		{
			name:   "client cannot self-approve",
			body:   `{"project_id":3,"author_name":"Ana","author_email":"ana@example.com","content":"Nice","approved":true}`,
			status: http.StatusCreated,
		},
		{name: "missing project", body: `{"author_name":"Ana","author_email":"ana@example.com","content":"x"}`, status: http.StatusBadRequest, field: "project_id"},
		{name: "missing content", body: `{"project_id":3,"author_name":"Ana","author_email":"ana@example.com"}`, status: http.StatusBadRequest, field: "content"},
		{name: "bad email", body: `{"project_id":3,"author_name":"Ana","author_email":"nope","content":"x"}`, status: http.StatusBadRequest, field: "author_email"},
		{name: "rating too high", body: `{"project_id":3,"author_name":"Ana","author_email":"ana@example.com","content":"x","rating":6}`, status: http.StatusBadRequest, field: "rating"},
		{name: "rating zero", body: `{"project_id":3,"author_name":"Ana","author_email":"ana@example.com","content":"x","rating":0}`, status: http.StatusBadRequest, field: "rating"},
		{name: "unknown project", body: `{"project_id":99,"author_name":"Ana","author_email":"ana@example.com","content":"x"}`, err: errs.NotFound("project"), status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			comments := &mockComments{comment: &models.Comment{ID: 11, ProjectID: 3}, err: tc.err}
			r := newTestRouter(&service.Service{Comments: comments})

			w := do(t, r, http.MethodPost, "/api/comments", tc.body, "")
			if tc.status != http.StatusCreated {
				expectError(t, w, tc.status, tc.field)
				return
			}
			expectStatus(t, w, http.StatusCreated)
			m := decode(t, w)
			cm, _ := m["comment"].(map[string]any)
			if cm["approved"] != false {
				t.Fatalf("new comment must be pending, got %v", cm)
			}
			if comments.lastInput.AuthorEmail != "ana@example.com" || comments.lastInput.ProjectID != 3 {
				t.Fatalf("unexpected input %+v", comments.lastInput)
			}
		})
	}
}

func TestComments_AdminList(t *testing.T) {
	comments := &mockComments{all: []models.CommentWithProject{{Comment: models.Comment{ID: 1}, ProjectTitle: "Shop"}}}
	r := newTestRouter(&service.Service{Comments: comments})

	w := do(t, r, http.MethodGet, "/api/comments/admin", nil, "")
	expectError(t, w, http.StatusUnauthorized, "")

	w = do(t, r, http.MethodGet, "/api/comments/admin?approved=false", nil, adminToken)
	expectStatus(t, w, http.StatusOK)
	if comments.lastFilter.Approved == nil || *comments.lastFilter.Approved {
		t.Fatalf("expected approved=false filter, got %v", comments.lastFilter.Approved)
	}
	if !strings.Contains(w.Body.String(), `"project_title":"Shop"`) {
		t.Fatalf("expected project title, got %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/comments/admin", nil, adminToken)
	expectStatus(t, w, http.StatusOK)
	if comments.lastFilter.Approved != nil {
		t.Fatalf("expected no filter")
	}

	w = do(t, r, http.MethodGet, "/api/comments/admin?approved=perhaps", nil, adminToken)
	expectError(t, w, http.StatusBadRequest, "approved")
}

func TestComments_Approve(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		comments := &mockComments{comment: &models.Comment{ID: 2}}
		r := newTestRouter(&service.Service{Comments: comments})

		w := do(t, r, http.MethodPatch, "/api/comments/2/approve", `{"approved":true}`, adminToken)
		expectStatus(t, w, http.StatusOK)
		if decode(t, w)["message"] != "comment approved" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
		if comments.lastID != 2 || comments.lastApproved == nil || !*comments.lastApproved {
			t.Fatalf("approval not forwarded")
		}
	})

	t.Run("reject", func(t *testing.T) {
		comments := &mockComments{comment: &models.Comment{ID: 2, Approved: true}}
		r := newTestRouter(&service.Service{Comments: comments})

		w := do(t, r, http.MethodPatch, "/api/comments/2/approve", `{"approved":false}`, adminToken)
		expectStatus(t, w, http.StatusOK)
		if decode(t, w)["message"] != "comment rejected" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("missing flag", func(t *testing.T) {
		comments := &mockComments{comment: &models.Comment{ID: 2}}
		r := newTestRouter(&service.Service{Comments: comments})

		w := do(t, r, http.MethodPatch, "/api/comments/2/approve", `{}`, adminToken)
		expectError(t, w, http.StatusBadRequest, "approved")
		if comments.lastApproved != nil {
			t.Fatalf("service must not be called")
		}
	})

	t.Run("unknown comment", func(t *testing.T) {
		r := newTestRouter(&service.Service{Comments: &mockComments{err: errs.NotFound("comment")}})
		w := do(t, r, http.MethodPatch, "/api/comments/5/approve", `{"approved":true}`, adminToken)
		expectError(t, w, http.StatusNotFound, "")
	})
}

func TestComments_Delete(t *testing.T) {
	comments := &mockComments{comment: &models.Comment{ID: 8}}
	r := newTestRouter(&service.Service{Comments: comments})

	w := do(t, r, http.MethodDelete, "/api/comments/8", nil, "")
	expectError(t, w, http.StatusUnauthorized, "")

	w = do(t, r, http.MethodDelete, "/api/comments/8", nil, adminToken)
	expectStatus(t, w, http.StatusOK)
	if comments.lastID != 8 || decode(t, w)["message"] != "comment deleted" {
		t.Fatalf("unexpected delete: id=%d body=%s", comments.lastID, w.Body.String())
	}
}
