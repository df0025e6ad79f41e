package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultProjectCategory is used when a project is saved without a category.
const DefaultProjectCategory = "web"

type Project struct {
	ID           int64      `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Technologies StringList `json:"technologies" db:"technologies"`
	ImageURL     *string    `json:"image_url" db:"image_url"`
	GithubURL    *string    `json:"github_url" db:"github_url"`
	DemoURL      *string    `json:"demo_url" db:"demo_url"`
	Category     string     `json:"category" db:"category"`
	Featured     bool       `json:"featured" db:"featured"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ProjectFilter narrows a project listing. Nil fields are not constrained.
type ProjectFilter struct {
	Category *string
	Featured *bool
}

// StringList is an ordered list of strings stored as a JSON array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}
