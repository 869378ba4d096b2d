// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"coffee_backend/internal/api"
	"coffee_backend/internal/feature/auth/domain"
	"coffee_backend/internal/feature/auth/domain/entity"
	"coffee_backend/internal/feature/auth/transport/http/dto"
	"coffee_backend/internal/feature/auth/usecase"
	jwtmw "coffee_backend/internal/platform/jwt"
)

// AuthUsecase is defined here, by the consumer, rather than by the usecase package.
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID uint) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
	DeleteMe(ctx context.Context, userID uint) error
}

type AuthHandler struct {
	auth AuthUsecase
}

func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /signup.
//   - 400 on validation errors
//   - 409 when the email is taken
//   - 201 with the created user
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:        req.Name,
		Email:       string(req.Email),
		Password:    req.Password,
		AccountType: req.AccountType,
	})
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		// the message does not confirm which emails are registered
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		return
	case errors.Is(err, domain.ErrInvalidAccountType), errors.Is(err, domain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login handles POST /login.
//   - 400 on validation errors
//   - 401 on bad credentials
//   - 200 with a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, TokenType: "bearer"})
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		h.userError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// ChangePassword handles PUT /me/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.userError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password updated"})
}

// DeleteMe handles DELETE /me.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	if err := h.auth.DeleteMe(c.Request.Context(), userID); err != nil {
		h.userError(c, err)
		return
	}
	slog.Info("user deleted", "user_id", userID)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "current password is incorrect"})
	case errors.Is(err, domain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("user request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
