package models

import "time"

// User is an account in the user directory.
type User struct {
	ID           int64
	UserName     string
	Email        string
	FullName     string
	PhoneNumber  string
	PasswordHash string
	Avatar       string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
