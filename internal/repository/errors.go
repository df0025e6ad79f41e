package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Constraint violations reported by the store, independent of the driver.
var (
	ErrDuplicate  = errors.New("unique constraint violation")
	ErrForeignKey = errors.New("foreign key constraint violation")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// classify maps driver constraint errors onto ErrDuplicate / ErrForeignKey.
// Other errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.Constraint)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", ErrForeignKey, err)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// primary code only: fall back to the message
			msg := liteErr.Error()
			if strings.Contains(msg, "UNIQUE constraint failed") {
				return fmt.Errorf("%w: %v", ErrDuplicate, err)
			}
			if strings.Contains(msg, "FOREIGN KEY constraint failed") {
				return fmt.Errorf("%w: %v", ErrForeignKey, err)
			}
		}
	}
	return err
}
