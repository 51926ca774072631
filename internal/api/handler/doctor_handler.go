package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// DoctorHandler serves the doctor directory and self-or-admin updates.
type DoctorHandler struct {
	service ports.DoctorService
}

func NewDoctorHandler(service ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// List handles GET /doctors with optional hospital_id and specialization
// filters.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Param        hospital_id     query     string  false  "Filter by hospital id"
// @Param        specialization  query     string  false  "Filter by specialization"
// @Param        skip            query     int     false  "Offset into the result set"  default(0)
// @Param        limit           query     int     false  "Page size"                   default(100)
// @Success      200             {array}   domain.Doctor
// @Router       /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	filter := ports.DoctorFilter{
		HospitalID:     c.QueryParam("hospital_id"),
		Specialization: c.QueryParam("specialization"),
		Skip:           queryInt(c, "skip", 0),
		Limit:          queryInt(c, "limit", 0),
	}

	doctors, err := h.service.ListDoctors(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if doctors == nil {
		doctors = []domain.Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

// GetByID handles GET /doctors/:id.
//
// @Summary      Get a doctor by id
// @Tags         doctors
// @Produce      json
// @Param        id   path      string  true  "Doctor id"
// @Success      200  {object}  domain.Doctor
// @Failure      404  {object}  errorResponse
// @Router       /doctors/{id} [get]
func (h *DoctorHandler) GetByID(c echo.Context) error {
	doctor, err := h.service.GetDoctor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctor)
}

// Update handles PUT /doctors/:id. The doctor's own account or an admin may
// patch.
//
// @Summary      Update a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Doctor id"
// @Param        body  body      doctorPatchRequest  true  "Partial doctor patch"
// @Success      200   {object}  domain.Doctor
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /doctors/{id} [put]
func (h *DoctorHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req doctorPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	doctor, err := h.service.UpdateDoctor(c.Request().Context(), c.Param("id"), toDoctorUpdate(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctor)
}
