package repository

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

// newMockDB returns a sqlx handle over sqlmock. The "sqlmock" driver name keeps
// ? placeholders as written, so expectations can reuse the query constants.
func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = raw.Close()
	})
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
