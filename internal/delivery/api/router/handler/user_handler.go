// Package handler contains the HTTP handlers of the account API.
package handler

import (
	"log/slog"
	"net/http"

	"tiktok/internal/delivery/api/response"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves signup, login and email verification.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// Signup registers an inactive account.
func (h *UserHandler) Signup(c echo.Context) error {
	var input usecase.RegisterUserInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrMalformedRequest)
	}

	output, err := h.userUC.RegisterUser(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, newUserResponse(output.User))
}

// Login exchanges credentials for a session token pair.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrMalformedRequest)
	}

	output, err := h.userUC.Login(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, &LoginResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User: LoginUserResponse{
			ID:       output.User.ID,
			Email:    output.User.Email,
			Username: output.User.Username,
		},
	})
}

// VerifyEmail activates the account named by the ?token= link.
func (h *UserHandler) VerifyEmail(c echo.Context) error {
	input := usecase.VerifyEmailInput{Token: c.QueryParam("token")}

	output, err := h.userUC.VerifyEmail(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, &MessageResponse{Message: output.Message})
}
