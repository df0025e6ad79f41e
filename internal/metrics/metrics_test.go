package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio_api/internal/models"

	"github.com/gin-gonic/gin"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, Path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("scrape status=%d", w.Code)
	}
	return w.Body.String()
}

func TestMiddleware_RecordsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/projects/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/api/projects/1", "/api/projects/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, m)
	want := []string{
		`portfolio_api_http_requests_total{method="GET",route="/api/projects/:id",status="204"} 2`,
		`portfolio_api_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`portfolio_api_http_inflight_requests 0`,
	}
	for _, line := range want {
		if !strings.Contains(body, line) {
			t.Fatalf("expected %q in exposition:\n%s", line, body)
		}
	}
}

func TestObserveModeration(t *testing.T) {
	m := New()
	m.ObserveModeration(models.ModerationEvent{Type: models.EventCommentCreated})
	m.ObserveModeration(models.ModerationEvent{Type: models.EventCommentCreated})
	m.ObserveModeration(models.ModerationEvent{Type: models.EventCommentApproved})

	body := scrape(t, m)
	for _, line := range []string{
		`portfolio_api_comments_moderation_events_total{type="comment_created"} 2`,
		`portfolio_api_comments_moderation_events_total{type="comment_approved"} 1`,
	} {
		if !strings.Contains(body, line) {
			t.Fatalf("expected %q in exposition:\n%s", line, body)
		}
	}
}
