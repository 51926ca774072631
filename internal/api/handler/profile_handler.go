package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// ProfileHandler handles merged account+profile reads and partial updates.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// List handles GET /auth/profiles. Admin-only via RBAC.
//
// @Summary      List all profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset into the result set"  default(0)
// @Param        limit  query     int  false  "Page size"                   default(100)
// @Success      200    {object}  listProfilesResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /auth/profiles [get]
func (h *ProfileHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 0)

	page, err := h.service.ListProfiles(c.Request().Context(), skip, limit, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListProfilesResponse(page))
}

// GetMe handles GET /auth/profile/me.
//
// @Summary      Get the signed-in account's profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/profile/me [get]
func (h *ProfileHandler) GetMe(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetProfile(c.Request().Context(), actor.ID, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// GetByID handles GET /auth/profile/:id. The owner or an admin may read.
//
// @Summary      Get a profile by account id
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/profile/{id} [get]
func (h *ProfileHandler) GetByID(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetProfile(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// Update handles PUT /auth/profile/:id. The owner or an admin may patch; only
// keys present in the body change.
//
// @Summary      Update a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateProfileRequest  true  "Partial profile patch"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/profile/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.service.UpdateProfile(c.Request().Context(), c.Param("id"), toProfileUpdate(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(view))
}

// queryInt parses an integer query parameter, falling back on absence or junk.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
