// Package dto defines the request and response bodies of the auth endpoints.
package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"coffee_backend/internal/feature/auth/domain/entity"
)

// SignupReq is the body of POST /signup.
type SignupReq struct {
	Name        string              `json:"name" binding:"required,max=100"`
	Email       openapi_types.Email `json:"email" binding:"required,email"`
	Password    string              `json:"password" binding:"required,min=8,max=72"`
	AccountType string              `json:"account_type" binding:"required"`
}

// LoginReq is the body of POST /login.
type LoginReq struct {
	Email    openapi_types.Email `json:"email" binding:"required,email"`
	Password string              `json:"password" binding:"required"`
}

// ChangePasswordReq is the body of PUT /me/password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type UserRes struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Email       openapi_types.Email `json:"email"`
	AccountType string              `json:"account_type"`
	CreatedAt   time.Time           `json:"created_at"`
}

func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:          u.ID,
		Name:        u.Name,
		Email:       openapi_types.Email(u.Email),
		AccountType: string(u.AccountType),
		CreatedAt:   u.CreatedAt,
	}
}
