package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// PatientHandler serves the signed-in patient's own record. Routes are gated
// to the patient role by RBAC, so no id parameter exists here.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// GetMe handles GET /patients/me.
//
// @Summary      Get the signed-in patient's record
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Patient
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/me [get]
func (h *PatientHandler) GetMe(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	patient, err := h.service.GetOwnPatient(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// UpdateMe handles PUT /patients/me.
//
// @Summary      Update the signed-in patient's record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientPatchRequest  true  "Partial patient patch"
// @Success      200   {object}  domain.Patient
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /patients/me [put]
func (h *PatientHandler) UpdateMe(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req patientPatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	patient, err := h.service.UpdateOwnPatient(c.Request().Context(), toPatientUpdate(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}
