package models

import "time"

type User struct {
	ID           string
	FullName     string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
