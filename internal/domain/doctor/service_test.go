package doctor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/db"
)

// -- Mock Repository --

type mockRepo struct {
	doctors map[int64]*Doctor
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[int64]*Doctor), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	for _, existing := range m.doctors {
		if existing.Email == d.Email {
			return &pgconn.PgError{Code: db.CodeUniqueViolation, ConstraintName: "doctor_email_key"}
		}
	}
	d.ID = m.nextID
	m.nextID++
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.Email == email {
			cp := *d
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockRepo) GetForUpdate(ctx context.Context, id int64) (*Doctor, error) {
	return m.GetByID(ctx, id)
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return db.ErrNotFound
	}
	d.UpdatedAt = time.Now()
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.doctors[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.doctors, id)
	return nil
}

type passthroughTx struct{ calls int }

func (p *passthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeHasher struct{ dummyCalls int }

func (f *fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (f *fakeHasher) Verify(plain, hash string) bool { return hash == "hashed:"+plain }

func (f *fakeHasher) VerifyDummy(string) bool {
	f.dummyCalls++
	return false
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(id int64, email string) (string, time.Time, error) {
	return "token-for-" + email, time.Now().Add(time.Hour), nil
}

func newTestService() (*Service, *mockRepo, *fakeHasher) {
	repo := newMockRepo()
	hasher := &fakeHasher{}
	return NewService(repo, &passthroughTx{}, hasher, fakeIssuer{}), repo, hasher
}

func registerDefault(t *testing.T, svc *Service) *Doctor {
	t.Helper()
	d, err := svc.Register(context.Background(), RegisterRequest{
		Fullname: "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return d
}

// -- Tests --

func TestService_Register(t *testing.T) {
	svc, repo, _ := newTestService()
	d, err := svc.Register(context.Background(), RegisterRequest{
		Fullname: "  Asha Rao ",
		Email:    " Asha@Example.COM ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == 0 {
		t.Error("expected ID to be assigned")
	}
	if d.Email != "asha@example.com" {
		t.Errorf("expected normalized email, got %q", d.Email)
	}
	if d.Fullname != "Asha Rao" {
		t.Errorf("expected trimmed fullname, got %q", d.Fullname)
	}
	stored := repo.doctors[d.ID]
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Errorf("password stored unhashed: %q", stored.PasswordHash)
	}
}

func TestService_Register_MissingFields(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.com"})
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(e.Message, "Missing required fields") {
		t.Errorf("unexpected message %q", e.Message)
	}
	if len(repo.doctors) != 0 {
		t.Errorf("expected nothing written, got %d", len(repo.doctors))
	}
}

func TestService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"bad email", RegisterRequest{Fullname: "A", Email: "not-an-email", Password: "secret1"}},
		{"short password", RegisterRequest{Fullname: "A", Email: "a@b.com", Password: "123"}},
	}
	svc, repo, _ := newTestService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
	if len(repo.doctors) != 0 {
		t.Errorf("expected nothing written, got %d", len(repo.doctors))
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	registerDefault(t, svc)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Fullname: "Other",
		Email:    "ASHA@example.com",
		Password: "secret2",
	})
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if e.Message != "Email already exists" {
		t.Errorf("unexpected message %q", e.Message)
	}
	if len(repo.doctors) != 1 {
		t.Errorf("expected only the first doctor stored, got %d", len(repo.doctors))
	}
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newTestService()
	d := registerDefault(t, svc)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token")
	}
	if res.Doctor.ID != d.ID {
		t.Errorf("expected doctor %d, got %d", d.ID, res.Doctor.ID)
	}
}

func TestService_Login_UniformFailure(t *testing.T) {
	svc, _, hasher := newTestService()
	registerDefault(t, svc)

	_, wrongPass := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "nope"})
	_, unknown := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "secret1"})

	for _, err := range []error{wrongPass, unknown} {
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Errorf("expected invalid credentials, got %v", err)
		}
	}
	if wrongPass.Error() != unknown.Error() {
		t.Errorf("expected identical messages, got %q and %q", wrongPass, unknown)
	}
	if hasher.dummyCalls != 1 {
		t.Errorf("expected one dummy comparison for unknown email, got %d", hasher.dummyCalls)
	}
}

func TestService_GetProfile_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetProfile(context.Background(), 99)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestService_UpdateProfile_MergesSuppliedFields(t *testing.T) {
	svc, repo, _ := newTestService()
	d := registerDefault(t, svc)
	degree := "MBBS"
	phone := "555-0100"
	repo.doctors[d.ID].PhoneNo = &phone

	updated, err := svc.UpdateProfile(context.Background(), d.ID, UpdateProfileRequest{Degree: &degree})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Degree == nil || *updated.Degree != "MBBS" {
		t.Errorf("expected degree MBBS, got %v", updated.Degree)
	}
	if updated.PhoneNo == nil || *updated.PhoneNo != "555-0100" {
		t.Errorf("expected phone untouched, got %v", updated.PhoneNo)
	}
	if updated.Fullname != "Asha Rao" {
		t.Errorf("expected fullname untouched, got %q", updated.Fullname)
	}
}

func TestService_UpdateProfile_RehashesPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	d := registerDefault(t, svc)
	pw := "newsecret"

	if _, err := svc.UpdateProfile(context.Background(), d.ID, UpdateProfileRequest{Password: &pw}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.doctors[d.ID].PasswordHash; got != "hashed:newsecret" {
		t.Errorf("expected rehashed password, got %q", got)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Email: d.Email, Password: "newsecret"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestService_UpdateProfile_Invalid(t *testing.T) {
	svc, _, _ := newTestService()
	d := registerDefault(t, svc)
	blank := "   "
	short := "abc"

	if _, err := svc.UpdateProfile(context.Background(), d.ID, UpdateProfileRequest{Fullname: &blank}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for blank fullname, got %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), d.ID, UpdateProfileRequest{Password: &short}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error for short password, got %v", err)
	}
}

func TestService_UpdateProfile_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	degree := "MD"
	_, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileRequest{Degree: &degree})
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindNotFound || e.Message != "Doctor not found" {
		t.Errorf("expected Doctor not found, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo, _ := newTestService()
	d := registerDefault(t, svc)

	if err := svc.Delete(context.Background(), d.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.doctors[d.ID]; ok {
		t.Error("expected doctor to be removed")
	}
	if err := svc.Delete(context.Background(), d.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}
