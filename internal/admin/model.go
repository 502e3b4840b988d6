package admin

import "time"

// Admin represents a staff account allowed into the dashboard.
type Admin struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string
	Password string
}
