package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/smartdoc/smartdoc-api/internal/core/domain"
	"github.com/smartdoc/smartdoc-api/internal/core/ports"
)

// In-memory doubles for the repository and store ports. Each stub clones on
// read and write so tests cannot mutate stored state through aliases.

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) put(a *domain.Account) {
	r.accounts[a.ID] = cloneAccount(a)
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) List(_ context.Context, skip, limit int) ([]*domain.Account, int64, error) {
	ids := make([]string, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	total := int64(len(ids))
	if skip >= len(ids) {
		return nil, total, nil
	}
	ids = ids[skip:]
	if limit < len(ids) {
		ids = ids[:limit]
	}

	out := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneAccount(r.accounts[id]))
	}
	return out, total, nil
}

func (r *stubAccountRepo) UpdateLastLogin(_ context.Context, id string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	now := time.Now().UTC()
	a.LastLogin = &now
	return nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func (r *stubAccountRepo) UpdateEmail(_ context.Context, id, email string) error {
	for otherID, a := range r.accounts {
		if otherID != id && strings.EqualFold(a.Email, email) {
			return domain.ErrDuplicateEmail
		}
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Email = email
	return nil
}

type stubHospitalRepo struct {
	hospitals map[string]*domain.Hospital
}

func newStubHospitalRepo() *stubHospitalRepo {
	return &stubHospitalRepo{hospitals: make(map[string]*domain.Hospital)}
}

func cloneHospital(h *domain.Hospital) *domain.Hospital {
	if h == nil {
		return nil
	}
	clone := *h
	return &clone
}

func (r *stubHospitalRepo) put(h *domain.Hospital) {
	r.hospitals[h.ID] = cloneHospital(h)
}

func (r *stubHospitalRepo) FindByID(_ context.Context, id string) (*domain.Hospital, error) {
	h, ok := r.hospitals[id]
	if !ok {
		return nil, domain.ErrHospitalNotFound
	}
	return cloneHospital(h), nil
}

func (r *stubHospitalRepo) FindByAccountID(_ context.Context, accountID string) (*domain.Hospital, error) {
	for _, h := range r.hospitals {
		if h.AccountID == accountID {
			return cloneHospital(h), nil
		}
	}
	return nil, domain.ErrHospitalNotFound
}

func (r *stubHospitalRepo) ListForRegistration(_ context.Context) ([]domain.HospitalRef, error) {
	var refs []domain.HospitalRef
	for _, h := range r.hospitals {
		if h.Status == domain.StatusActive && h.SubscriptionStatus == domain.SubscriptionActive {
			refs = append(refs, domain.HospitalRef{ID: h.ID, Name: h.Name})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (r *stubHospitalRepo) List(_ context.Context, skip, limit int) ([]domain.Hospital, error) {
	var out []domain.Hospital
	for _, h := range r.hospitals {
		out = append(out, *cloneHospital(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubHospitalRepo) Update(_ context.Context, accountID string, patch ports.HospitalUpdate) error {
	for _, h := range r.hospitals {
		if h.AccountID != accountID {
			continue
		}
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Phone != nil {
			h.Phone = *patch.Phone
		}
		if patch.City != nil {
			h.City = *patch.City
		}
		if patch.Description != nil {
			h.Description = *patch.Description
		}
		if patch.Specialties != nil {
			h.Specialties = *patch.Specialties
		}
		if patch.EmergencyServices != nil {
			h.EmergencyServices = *patch.EmergencyServices
		}
		if patch.BedCapacity != nil {
			h.BedCapacity = patch.BedCapacity
		}
		h.UpdatedAt = time.Now().UTC()
		return nil
	}
	return domain.ErrHospitalNotFound
}

type stubDoctorRepo struct {
	doctors map[string]*domain.Doctor
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{doctors: make(map[string]*domain.Doctor)}
}

func cloneDoctor(d *domain.Doctor) *domain.Doctor {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDoctorRepo) put(d *domain.Doctor) {
	r.doctors[d.ID] = cloneDoctor(d)
}

func (r *stubDoctorRepo) FindByID(_ context.Context, id string) (*domain.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	return cloneDoctor(d), nil
}

func (r *stubDoctorRepo) List(_ context.Context, filter ports.DoctorFilter) ([]domain.Doctor, error) {
	var out []domain.Doctor
	for _, d := range r.doctors {
		if filter.HospitalID != "" && d.HospitalID != filter.HospitalID {
			continue
		}
		if filter.Specialization != "" && !strings.EqualFold(d.Specialization, filter.Specialization) {
			continue
		}
		out = append(out, *cloneDoctor(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	if filter.Skip >= len(out) {
		return nil, nil
	}
	out = out[filter.Skip:]
	if filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *stubDoctorRepo) FindByAccountID(_ context.Context, accountID string) (*domain.Doctor, error) {
	for _, d := range r.doctors {
		if d.AccountID == accountID {
			return cloneDoctor(d), nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) Update(_ context.Context, accountID string, patch ports.DoctorUpdate) error {
	for _, d := range r.doctors {
		if d.AccountID != accountID {
			continue
		}
		if patch.FirstName != nil {
			d.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			d.LastName = *patch.LastName
		}
		if patch.Phone != nil {
			d.Phone = *patch.Phone
		}
		if patch.Specialization != nil {
			d.Specialization = *patch.Specialization
		}
		if patch.SubSpecialization != nil {
			d.SubSpecialization = *patch.SubSpecialization
		}
		if patch.Bio != nil {
			d.Bio = *patch.Bio
		}
		d.UpdatedAt = time.Now().UTC()
		return nil
	}
	return domain.ErrDoctorNotFound
}

type stubPatientRepo struct {
	patients map[string]*domain.Patient
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*domain.Patient)}
}

func clonePatient(p *domain.Patient) *domain.Patient {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPatientRepo) put(p *domain.Patient) {
	r.patients[p.ID] = clonePatient(p)
}

func (r *stubPatientRepo) FindByAccountID(_ context.Context, accountID string) (*domain.Patient, error) {
	for _, p := range r.patients {
		if p.AccountID == accountID {
			return clonePatient(p), nil
		}
	}
	return nil, domain.ErrPatientNotFound
}

func (r *stubPatientRepo) Update(_ context.Context, accountID string, patch ports.PatientUpdate) error {
	for _, p := range r.patients {
		if p.AccountID != accountID {
			continue
		}
		if patch.FirstName != nil {
			p.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			p.LastName = *patch.LastName
		}
		if patch.Phone != nil {
			p.Phone = *patch.Phone
		}
		if patch.DateOfBirth != nil {
			p.DateOfBirth = *patch.DateOfBirth
		}
		if patch.Gender != nil {
			p.Gender = *patch.Gender
		}
		if patch.City != nil {
			p.City = *patch.City
		}
		if patch.InsuranceProvider != nil {
			p.InsuranceProvider = *patch.InsuranceProvider
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	}
	return domain.ErrPatientNotFound
}

// stubEnrollmentStore mimics the transactional store: a profile failure leaves
// no account behind.
type stubEnrollmentStore struct {
	accounts    *stubAccountRepo
	hospitals   *stubHospitalRepo
	doctors     *stubDoctorRepo
	patients    *stubPatientRepo
	failProfile error
}

func (s *stubEnrollmentStore) createAccount(account *domain.Account) error {
	if _, err := s.accounts.FindByEmail(context.Background(), account.Email); err == nil {
		return domain.ErrDuplicateEmail
	}
	s.accounts.put(account)
	return nil
}

func (s *stubEnrollmentStore) CreateAdmin(_ context.Context, account *domain.Account) error {
	return s.createAccount(account)
}

func (s *stubEnrollmentStore) CreateHospital(_ context.Context, account *domain.Account, hospital *domain.Hospital) error {
	if err := s.createAccount(account); err != nil {
		return err
	}
	if s.failProfile != nil {
		delete(s.accounts.accounts, account.ID)
		return s.failProfile
	}
	s.hospitals.put(hospital)
	return nil
}

func (s *stubEnrollmentStore) CreateDoctor(_ context.Context, account *domain.Account, doctor *domain.Doctor) error {
	if err := s.createAccount(account); err != nil {
		return err
	}
	if s.failProfile != nil {
		delete(s.accounts.accounts, account.ID)
		return s.failProfile
	}
	s.doctors.put(doctor)
	return nil
}

func (s *stubEnrollmentStore) CreatePatient(_ context.Context, account *domain.Account, patient *domain.Patient) error {
	if err := s.createAccount(account); err != nil {
		return err
	}
	if s.failProfile != nil {
		delete(s.accounts.accounts, account.ID)
		return s.failProfile
	}
	s.patients.put(patient)
	return nil
}

// stubTicketStore is a single-use in-memory ticket store.
type stubTicketStore struct {
	tickets map[string]string
}

func newStubTicketStore() *stubTicketStore {
	return &stubTicketStore{tickets: make(map[string]string)}
}

func (s *stubTicketStore) Save(_ context.Context, ticket, accountID string, _ time.Duration) error {
	s.tickets[ticket] = accountID
	return nil
}

func (s *stubTicketStore) Consume(_ context.Context, ticket string) (string, error) {
	accountID, ok := s.tickets[ticket]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tickets, ticket)
	return accountID, nil
}

// stubNotifier records queued reset mail.
type stubNotifier struct {
	emails  []string
	tickets []string
}

func (n *stubNotifier) EnqueuePasswordReset(email, ticket string) {
	n.emails = append(n.emails, email)
	n.tickets = append(n.tickets, ticket)
}
