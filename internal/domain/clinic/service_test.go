package clinic

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/schema"
)

// -- Mock Repository --

type mockRepo struct {
	clinics map[int64]*Clinic
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{clinics: make(map[int64]*Clinic), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, c *Clinic) error {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now().Add(time.Duration(c.ID) * time.Millisecond)
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.clinics[c.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *c
	cp.Doctor = &DoctorRef{ID: c.DoctorID}
	return &cp, nil
}

func (m *mockRepo) GetForUpdate(_ context.Context, id int64) (*Clinic, error) {
	c, ok := m.clinics[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter) ([]*Clinic, error) {
	items := []*Clinic{}
	for _, c := range m.clinics {
		if f.DoctorID != nil && c.DoctorID != *f.DoctorID {
			continue
		}
		cp := *c
		cp.Doctor = &DoctorRef{ID: c.DoctorID}
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (m *mockRepo) Update(_ context.Context, c *Clinic) error {
	if _, ok := m.clinics[c.ID]; !ok {
		return db.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cp := *c
	m.clinics[c.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.clinics[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.clinics, id)
	return nil
}

type mockChecker struct {
	rows map[string]map[int64]bool
}

func newMockChecker() *mockChecker {
	return &mockChecker{rows: map[string]map[int64]bool{
		schema.TableDoctor: {1: true, 2: true},
	}}
}

func (m *mockChecker) Exists(_ context.Context, table string, id int64) (bool, error) {
	return m.rows[table][id], nil
}

type passthroughTx struct{}

func (passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, passthroughTx{}, newMockChecker()), repo
}

func strPtr(s string) *string { return &s }

func createClinic(t *testing.T, svc *Service, name string, doctorID int64) *Clinic {
	t.Helper()
	c, err := svc.Create(context.Background(), CreateRequest{
		Name:       name,
		DoctorName: "Dr. Rao",
		DoctorID:   doctorID,
		Address:    strPtr("12 MG Road"),
	})
	if err != nil {
		t.Fatalf("create clinic: %v", err)
	}
	return c
}

// -- Tests --

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()
	c := createClinic(t, svc, "City Clinic", 1)
	if c.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if c.DoctorID != 1 {
		t.Errorf("expected doctor 1, got %d", c.DoctorID)
	}
}

func TestService_Create_MissingFields(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateRequest{Name: "City Clinic"})
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(e.Details) != 2 {
		t.Errorf("expected doctorName and doctor_id errors, got %v", e.Details)
	}
}

func TestService_Create_UnknownDoctor(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.Create(context.Background(), CreateRequest{Name: "X", DoctorName: "Y", DoctorID: 99})
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindNotFound || e.Message != "Doctor not found" {
		t.Fatalf("expected Doctor not found, got %v", err)
	}
	if len(repo.clinics) != 0 {
		t.Error("expected nothing written")
	}
}

func TestService_Get(t *testing.T) {
	svc, _ := newTestService()
	c := createClinic(t, svc, "City Clinic", 1)

	got, err := svc.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Doctor == nil || got.Doctor.ID != 1 {
		t.Errorf("expected doctor attached, got %+v", got.Doctor)
	}

	if _, err := svc.Get(context.Background(), 999); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestService_ListByDoctor(t *testing.T) {
	svc, _ := newTestService()
	first := createClinic(t, svc, "A", 1)
	createClinic(t, svc, "B", 2)
	second := createClinic(t, svc, "C", 1)

	items, err := svc.ListByDoctor(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 clinics, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("expected newest first, got %d then %d", items[0].ID, items[1].ID)
	}

	none, err := svc.ListByDoctor(context.Background(), 42)
	if err != nil || len(none) != 0 {
		t.Errorf("expected empty list, got %v %v", none, err)
	}
}

func TestService_Update_Merge(t *testing.T) {
	svc, _ := newTestService()
	c := createClinic(t, svc, "City Clinic", 1)

	updated, err := svc.Update(context.Background(), c.ID, UpdateRequest{LandlineNo: strPtr("020-555")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "City Clinic" || updated.Address == nil || *updated.Address != "12 MG Road" {
		t.Errorf("expected untouched fields kept, got %+v", updated)
	}
	if updated.LandlineNo == nil || *updated.LandlineNo != "020-555" {
		t.Errorf("expected landline set, got %v", updated.LandlineNo)
	}
}

func TestService_Update_ChangeDoctor(t *testing.T) {
	svc, _ := newTestService()
	c := createClinic(t, svc, "City Clinic", 1)

	missing := int64(77)
	_, err := svc.Update(context.Background(), c.ID, UpdateRequest{DoctorID: &missing})
	if e, ok := apperr.As(err); !ok || e.Message != "Doctor not found" {
		t.Errorf("expected Doctor not found, got %v", err)
	}

	other := int64(2)
	updated, err := svc.Update(context.Background(), c.ID, UpdateRequest{DoctorID: &other})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DoctorID != 2 {
		t.Errorf("expected doctor 2, got %d", updated.DoctorID)
	}
}

func TestService_Update_Invalid(t *testing.T) {
	svc, _ := newTestService()
	c := createClinic(t, svc, "City Clinic", 1)

	zero := int64(0)
	if _, err := svc.Update(context.Background(), c.ID, UpdateRequest{DoctorID: &zero}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for doctor_id 0, got %v", err)
	}
	if _, err := svc.Update(context.Background(), c.ID, UpdateRequest{Name: strPtr("")}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), 5, UpdateRequest{Name: strPtr("X")})
	if e, ok := apperr.As(err); !ok || e.Message != "Clinic not found" {
		t.Errorf("expected Clinic not found, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService()
	c := createClinic(t, svc, "City Clinic", 1)

	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), c.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}
