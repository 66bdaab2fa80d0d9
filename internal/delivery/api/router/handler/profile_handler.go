package handler

import (
	"net/http"
	"strconv"

	"tiktok/internal/delivery/api/response"
	deliverycontext "tiktok/internal/delivery/context"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
}

// ProfileHandler serves the authenticated profile routes.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{profileUC: params.ProfileUC}
}

// GetProfile returns the profile named by ?id=, or the caller's own.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := targetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UpdateProfile partially updates the caller's own profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrMalformedRequest)
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), principal.ID, &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// GetProfileQRCode returns a PNG share code for the profile named by ?id=, or the caller's own.
func (h *ProfileHandler) GetProfileQRCode(c echo.Context) error {
	userID, err := targetUserID(c)
	if err != nil {
		return err
	}

	png, err := h.profileUC.GetProfileQRCode(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func targetUserID(c echo.Context) (int64, error) {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return 0, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	raw := c.QueryParam("id")
	if raw == "" {
		return principal.ID, nil
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.WithStack(domainerrors.ErrInvalidUserID)
	}
	// Ids start at 1, so a non-positive id names no user.
	if userID <= 0 {
		return 0, errors.WithStack(domainerrors.ErrUserNotFound)
	}

	return userID, nil
}
