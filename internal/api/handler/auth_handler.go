package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/api/metrics"
	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// AuthHandler handles registration, login, and the password-reset flow.
type AuthHandler struct {
	authService ports.AuthService
	hospitals   ports.HospitalRepository
}

func NewAuthHandler(authService ports.AuthService, hospitals ports.HospitalRepository) *AuthHandler {
	return &AuthHandler{authService: authService, hospitals: hospitals}
}

// RegisterAdmin creates an admin account. Admin-only; the route is mounted
// behind Auth+RBAC.
//
// @Summary      Register an admin account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerAdminRequest  true  "Admin credentials"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/admin/register [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.RegisterAdmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// RegisterHospital creates a hospital account with its profile.
//
// @Summary      Register a hospital
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerHospitalRequest  true  "Hospital registration details"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/hospital/register [post]
func (h *AuthHandler) RegisterHospital(c echo.Context) error {
	var req registerHospitalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.RegisterHospital(c.Request().Context(), req.Email, req.Password, toHospitalInput(req))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("hospital").Inc()
	return c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// RegisterDoctor creates a doctor account affiliated with a hospital. The
// hospital must exist and hold an active subscription.
//
// @Summary      Register a doctor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerDoctorRequest  true  "Doctor registration details"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/doctor/register [post]
func (h *AuthHandler) RegisterDoctor(c echo.Context) error {
	var req registerDoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.RegisterDoctor(c.Request().Context(), req.Email, req.Password, toDoctorInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrHospitalNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "hospital not found"})
		}
		if errors.Is(err, domain.ErrSubscriptionInactive) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "hospital subscription is not active"})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("doctor").Inc()
	return c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// RegisterPatient creates a patient account with its profile.
//
// @Summary      Register a patient
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerPatientRequest  true  "Patient registration details"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/patient/register [post]
func (h *AuthHandler) RegisterPatient(c echo.Context) error {
	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.RegisterPatient(c.Request().Context(), req.Email, req.Password, toPatientInput(req))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("patient").Inc()
	return c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// ListHospitals returns the public registration picklist of hospitals whose
// account and subscription are both active.
//
// @Summary      List hospitals available for doctor registration
// @Tags         auth
// @Produce      json
// @Success      200  {array}   domain.HospitalRef
// @Failure      500  {object}  errorResponse
// @Router       /auth/hospitals [get]
func (h *AuthHandler) ListHospitals(c echo.Context) error {
	refs, err := h.hospitals.ListForRegistration(c.Request().Context())
	if err != nil {
		return err
	}
	if refs == nil {
		refs = []domain.HospitalRef{}
	}
	return c.JSON(http.StatusOK, refs)
}

// Login authenticates credentials and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.TokenPair
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokens)
}

// Logout acknowledges a logout. Tokens are stateless, so the server keeps no
// session to destroy; the client discards its pair.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

// ForgotPassword accepts a reset request. The response never reveals whether
// the email is registered.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "If email exists, a reset link has been sent"})
}

// ResetPassword consumes a reset ticket and sets the new password.
//
// @Summary      Reset password with a ticket
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset ticket and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid or expired reset token"})
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset successful"})
}
