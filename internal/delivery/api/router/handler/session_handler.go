package handler

import (
	"net/http"

	"tiktok/internal/delivery/api/response"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
}

// SessionHandler serves the session token endpoints.
type SessionHandler struct {
	sessionUC usecase.SessionUsecase
}

// NewSessionHandler is the constructor for SessionHandler.
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{sessionUC: params.SessionUC}
}

// RefreshToken mints a new access token from a refresh token.
func (h *SessionHandler) RefreshToken(c echo.Context) error {
	var input usecase.RefreshTokenInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrMalformedRequest)
	}

	output, err := h.sessionUC.RefreshToken(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, &AccessResponse{Access: output.Access})
}

// VerifyToken answers 200 with an empty object for any valid session token.
func (h *SessionHandler) VerifyToken(c echo.Context) error {
	var input usecase.VerifyTokenInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrMalformedRequest)
	}

	if err := h.sessionUC.VerifyToken(c.Request().Context(), &input); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, struct{}{})
}
