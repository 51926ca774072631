package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// HospitalHandler serves the hospital directory and owner updates.
type HospitalHandler struct {
	service ports.HospitalService
}

func NewHospitalHandler(service ports.HospitalService) *HospitalHandler {
	return &HospitalHandler{service: service}
}

// List handles GET /hospitals.
//
// @Summary      List hospitals
// @Tags         hospitals
// @Produce      json
// @Param        skip   query     int  false  "Offset into the result set"  default(0)
// @Param        limit  query     int  false  "Page size"                   default(100)
// @Success      200    {array}   domain.Hospital
// @Router       /hospitals [get]
func (h *HospitalHandler) List(c echo.Context) error {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 0)

	hospitals, err := h.service.ListHospitals(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}
	return c.JSON(http.StatusOK, hospitals)
}

// GetByID handles GET /hospitals/:id.
//
// @Summary      Get a hospital by id
// @Tags         hospitals
// @Produce      json
// @Param        id   path      string  true  "Hospital id"
// @Success      200  {object}  domain.Hospital
// @Failure      404  {object}  errorResponse
// @Router       /hospitals/{id} [get]
func (h *HospitalHandler) GetByID(c echo.Context) error {
	hospital, err := h.service.GetHospital(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hospital)
}

// Update handles PUT /hospitals/:id. The owning hospital account or an admin
// may patch.
//
// @Summary      Update a hospital
// @Tags         hospitals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Hospital id"
// @Param        body  body      hospitalPatchRequest  true  "Partial hospital patch"
// @Success      200   {object}  domain.Hospital
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /hospitals/{id} [put]
func (h *HospitalHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req hospitalPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	hospital, err := h.service.UpdateHospital(c.Request().Context(), c.Param("id"), toHospitalUpdate(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hospital)
}
