package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	HashedPassword   string     `json:"-"` // Not exposed
	Role             string     `json:"role"`
	TotalSubmissions int        `json:"totalSubmissions"`
	TotalSolved      int        `json:"totalSolved"`
	LastSolvedAt     *time.Time `json:"lastSolvedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
