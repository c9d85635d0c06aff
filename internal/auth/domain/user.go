package domain

import "time"

type User struct {
	ID           int64
	UserID       string
	Fullname     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
