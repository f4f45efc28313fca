package model

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// User is a dashboard account.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UserName  string    `json:"user_name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserClaims are the JWT claims carried by dashboard sessions.
type UserClaims struct {
	UserName string `json:"user_name"`
	Name     string `json:"name"`
	jwt.StandardClaims
}
