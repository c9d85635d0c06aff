package dto

import (
	"time"
)

type RegisterOutput struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type TokenOutput struct {
	Token string `json:"token"`
}

type UserOutput struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
