package models

import "time"

type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"` // #RRGGBB
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategoryWithCount is a category plus the number of projects filed under its name.
type CategoryWithCount struct {
	Category
	ProjectCount int64 `json:"project_count" db:"project_count"`
}
