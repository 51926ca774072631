package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

type stubAuthService struct {
	result *ports.RegistrationResult
	tokens ports.TokenPair
	err    error

	gotEmail    string
	gotPassword string
	gotDoctor   ports.DoctorInput
	gotPatient  ports.PatientInput
	gotTicket   string
}

func (s *stubAuthService) RegisterAdmin(_ context.Context, email, password string) (*ports.RegistrationResult, error) {
	s.gotEmail, s.gotPassword = email, password
	return s.result, s.err
}

func (s *stubAuthService) RegisterHospital(_ context.Context, email, password string, _ ports.HospitalInput) (*ports.RegistrationResult, error) {
	s.gotEmail, s.gotPassword = email, password
	return s.result, s.err
}

func (s *stubAuthService) RegisterDoctor(_ context.Context, email, password string, profile ports.DoctorInput) (*ports.RegistrationResult, error) {
	s.gotEmail, s.gotPassword, s.gotDoctor = email, password, profile
	return s.result, s.err
}

func (s *stubAuthService) RegisterPatient(_ context.Context, email, password string, profile ports.PatientInput) (*ports.RegistrationResult, error) {
	s.gotEmail, s.gotPassword, s.gotPatient = email, password, profile
	return s.result, s.err
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (ports.TokenPair, error) {
	s.gotEmail, s.gotPassword = email, password
	return s.tokens, s.err
}

func (s *stubAuthService) ForgotPassword(_ context.Context, email string) error {
	s.gotEmail = email
	return s.err
}

func (s *stubAuthService) ResetPassword(_ context.Context, ticket, newPassword string) error {
	s.gotTicket, s.gotPassword = ticket, newPassword
	return s.err
}

type stubHospitalLister struct {
	refs []domain.HospitalRef
	err  error
}

func (s *stubHospitalLister) FindByID(context.Context, string) (*domain.Hospital, error) {
	return nil, domain.ErrHospitalNotFound
}

func (s *stubHospitalLister) FindByAccountID(context.Context, string) (*domain.Hospital, error) {
	return nil, domain.ErrHospitalNotFound
}

func (s *stubHospitalLister) ListForRegistration(context.Context) ([]domain.HospitalRef, error) {
	return s.refs, s.err
}

func (s *stubHospitalLister) List(context.Context, int, int) ([]domain.Hospital, error) {
	return nil, nil
}

func (s *stubHospitalLister) Update(context.Context, string, ports.HospitalUpdate) error {
	return nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_RegisterPatient_Success(t *testing.T) {
	svc := &stubAuthService{result: &ports.RegistrationResult{
		Account: &domain.Account{ID: "acc-1", Email: "pat@example.com", Role: domain.RolePatient, Status: domain.StatusActive},
		Patient: &domain.Patient{ID: "p-1", AccountID: "acc-1", FirstName: "Ngozi"},
		Tokens:  ports.TokenPair{AccessToken: "at", RefreshToken: "rt", TokenType: "bearer"},
	}}
	h := NewAuthHandler(svc, &stubHospitalLister{})

	body := `{
		"email": "pat@example.com", "password": "password1",
		"first_name": "Ngozi", "last_name": "Eze", "phone": "+2348000000003",
		"date_of_birth": "1990-03-14", "gender": "female"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/auth/patient/register", body)

	if err := h.RegisterPatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"user", "patient", "tokens"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("response missing %q: %s", key, rec.Body.String())
		}
	}
	if _, ok := resp["hospital"]; ok {
		t.Fatalf("patient registration must not carry a hospital key")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_RegisterPatient_DateOnlyBirthDate(t *testing.T) {
	svc := &stubAuthService{result: &ports.RegistrationResult{
		Account: &domain.Account{ID: "acc-1", Email: "pat@example.com", Role: domain.RolePatient},
		Patient: &domain.Patient{ID: "p-1", AccountID: "acc-1"},
	}}
	h := NewAuthHandler(svc, &stubHospitalLister{})

	// Clients send a calendar date, not a timestamp.
	body := `{
		"email": "pat@example.com", "password": "password1",
		"first_name": "Ngozi", "last_name": "Eze", "phone": "+2348000000003",
		"date_of_birth": "1990-05-10", "gender": "female"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/auth/patient/register", body)

	if err := h.RegisterPatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	want := time.Date(1990, 5, 10, 0, 0, 0, 0, time.UTC)
	if !svc.gotPatient.DateOfBirth.Equal(want) {
		t.Fatalf("birth date not forwarded: %v", svc.gotPatient.DateOfBirth)
	}
}

func TestAuthHandler_RegisterPatient_RejectsTimestampBirthDate(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, &stubHospitalLister{})

	body := `{
		"email": "pat@example.com", "password": "password1",
		"first_name": "Ngozi", "last_name": "Eze", "phone": "+2348000000003",
		"date_of_birth": "1990-05-10T00:00:00Z", "gender": "female"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/auth/patient/register", body)

	if err := h.RegisterPatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotEmail != "" {
		t.Fatalf("service called despite malformed date")
	}
}

func TestAuthHandler_RegisterPatient_ValidationFailure(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, &stubHospitalLister{})

	// Missing password and a malformed email.
	c, rec := newTestContext(t, http.MethodPost, "/auth/patient/register", `{"email": "nope"}`)

	if err := h.RegisterPatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotEmail != "" {
		t.Fatalf("service called despite validation failure")
	}
}

func TestAuthHandler_RegisterDoctor_HospitalErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"hospital missing", domain.ErrHospitalNotFound, http.StatusNotFound},
		{"subscription lapsed", domain.ErrSubscriptionInactive, http.StatusForbidden},
	}

	body := `{
		"email": "ada@example.com", "password": "password1",
		"hospital_id": "7f9c24e5-2f86-4a6b-9ab1-3d6f2f1f8a11",
		"first_name": "Ada", "last_name": "Obi",
		"phone": "+2348000000002", "specialization": "cardiology"
	}`

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{err: tc.err}, &stubHospitalLister{})
			c, rec := newTestContext(t, http.MethodPost, "/auth/doctor/register", body)

			if err := h.RegisterDoctor(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestAuthHandler_RegisterAdmin_DuplicatePropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrDuplicateEmail}, &stubHospitalLister{})
	c, _ := newTestContext(t, http.MethodPost, "/auth/admin/register", `{"email": "dup@example.com", "password": "password1"}`)

	err := h.RegisterAdmin(c)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_ListHospitals(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubHospitalLister{refs: []domain.HospitalRef{
		{ID: "hosp-1", Name: "General Hospital"},
	}})
	c, rec := newTestContext(t, http.MethodGet, "/auth/hospitals", "")

	if err := h.ListHospitals(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var refs []domain.HospitalRef
	if err := json.Unmarshal(rec.Body.Bytes(), &refs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != "hosp-1" {
		t.Fatalf("unexpected picklist: %+v", refs)
	}
}

func TestAuthHandler_ListHospitals_Empty(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubHospitalLister{})
	c, rec := newTestContext(t, http.MethodGet, "/auth/hospitals", "")

	if err := h.ListHospitals(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{tokens: ports.TokenPair{AccessToken: "at", RefreshToken: "rt", TokenType: "bearer"}}
	h := NewAuthHandler(svc, &stubHospitalLister{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"email": "carol@example.com", "password": "s3cret-pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var pair ports.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pair.AccessToken != "at" || pair.RefreshToken != "rt" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

func TestAuthHandler_Login_FailurePropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials}, &stubHospitalLister{})
	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email": "carol@example.com", "password": "wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubHospitalLister{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Successfully logged out") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_ForgotPassword_GenericResponse(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, &stubHospitalLister{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/forgot-password", `{"email": "eve@example.com"}`)

	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "If email exists") {
		t.Fatalf("response must stay generic: %s", rec.Body.String())
	}
	if svc.gotEmail != "eve@example.com" {
		t.Fatalf("service not called with email")
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, &stubHospitalLister{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/reset-password", `{"token": "tkt", "new_password": "newpass12"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotTicket != "tkt" || svc.gotPassword != "newpass12" {
		t.Fatalf("service called with %q/%q", svc.gotTicket, svc.gotPassword)
	}
}

func TestAuthHandler_ResetPassword_BadTicket(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidResetToken}, &stubHospitalLister{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/reset-password", `{"token": "stale", "new_password": "newpass12"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
