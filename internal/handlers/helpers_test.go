package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var errInvalidTokenForTest = errors.New("token rejected")

// do sends a request with an optional JSON body and admin bearer token.
func do(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range authHeader(token) {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status: got %d, want %d (body=%s)", w.Code, want, w.Body.String())
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, field string) map[string]any {
	t.Helper()
	expectStatus(t, w, status)
	m := decode(t, w)
	if _, ok := m["error"].(string); !ok {
		t.Fatalf("expected error message in body, got %v", m)
	}
	if field != "" && m["field"] != field {
		t.Fatalf("expected field %q, got %v (body=%v)", field, m["field"], m)
	}
	return m
}
