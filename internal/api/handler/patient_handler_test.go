package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

type stubPatientService struct {
	patient *domain.Patient
	err     error

	gotPatch ports.PatientUpdate
	gotActor ports.Actor
}

func (s *stubPatientService) GetOwnPatient(_ context.Context, actor ports.Actor) (*domain.Patient, error) {
	s.gotActor = actor
	return s.patient, s.err
}

func (s *stubPatientService) UpdateOwnPatient(_ context.Context, patch ports.PatientUpdate, actor ports.Actor) (*domain.Patient, error) {
	s.gotPatch, s.gotActor = patch, actor
	return s.patient, s.err
}

func TestPatientHandler_GetMe(t *testing.T) {
	svc := &stubPatientService{patient: &domain.Patient{ID: "p-1", AccountID: "acc-1", FirstName: "Ngozi"}}
	h := NewPatientHandler(svc)
	c, rec := authedContext(t, http.MethodGet, "/patients/me", "", "acc-1", domain.RolePatient)

	if err := h.GetMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotActor.ID != "acc-1" {
		t.Fatalf("actor not forwarded: %q", svc.gotActor.ID)
	}
}

func TestPatientHandler_GetMe_MissingRecordPropagates(t *testing.T) {
	h := NewPatientHandler(&stubPatientService{err: domain.ErrPatientNotFound})
	c, _ := authedContext(t, http.MethodGet, "/patients/me", "", "acc-1", domain.RolePatient)

	if err := h.GetMe(c); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientHandler_UpdateMe_ForwardsDateAndGender(t *testing.T) {
	svc := &stubPatientService{patient: &domain.Patient{ID: "p-1", AccountID: "acc-1"}}
	h := NewPatientHandler(svc)

	body := `{"date_of_birth": "1991-05-10", "gender": "other", "city": "Abuja"}`
	c, rec := authedContext(t, http.MethodPut, "/patients/me", body, "acc-1", domain.RolePatient)

	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	want := time.Date(1991, 5, 10, 0, 0, 0, 0, time.UTC)
	if svc.gotPatch.DateOfBirth == nil || !svc.gotPatch.DateOfBirth.Equal(want) {
		t.Fatalf("date_of_birth not forwarded: %+v", svc.gotPatch.DateOfBirth)
	}
	if svc.gotPatch.Gender == nil || *svc.gotPatch.Gender != domain.GenderOther {
		t.Fatalf("gender not forwarded: %+v", svc.gotPatch.Gender)
	}
	if svc.gotPatch.City == nil || *svc.gotPatch.City != "Abuja" {
		t.Fatalf("city not forwarded: %+v", svc.gotPatch.City)
	}
}

func TestPatientHandler_UpdateMe_RejectsBadGender(t *testing.T) {
	svc := &stubPatientService{}
	h := NewPatientHandler(svc)
	c, rec := authedContext(t, http.MethodPut, "/patients/me", `{"gender": "unknown"}`, "acc-1", domain.RolePatient)

	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotActor.ID != "" {
		t.Fatalf("service called despite validation failure")
	}
}
