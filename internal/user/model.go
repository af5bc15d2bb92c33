package user

import (
	"time"

	"brytashop-be/internal/auth"
)

type User struct {
	ID               uint
	Name             string
	Email            string
	Password         string
	Permissions      []auth.Permission
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type SignupParams struct {
	Email    string
	Name     string
	Password string
}

type ResetPasswordParams struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}
