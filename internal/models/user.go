package models

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // don’t expose hash
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// ClaimsOf returns the token identity for u.
func ClaimsOf(u *User) Claims {
	return Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// AdminCredentials is the result of an admin credential reset.
type AdminCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
