package doctor

import (
	"context"
	"strings"
	"time"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/validation"
)

const msgNotFound = "Doctor not found"

// Hasher hashes and verifies doctor passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
	// VerifyDummy burns the same work as Verify for an unknown account and
	// always reports false.
	VerifyDummy(plain string) bool
}

// TokenIssuer signs bearer tokens for a logged-in doctor.
type TokenIssuer interface {
	Issue(doctorID int64, email string) (string, time.Time, error)
}

type Service struct {
	repo   Repository
	tx     db.TxRunner
	hasher Hasher
	tokens TokenIssuer
}

func NewService(repo Repository, tx db.TxRunner, hasher Hasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tx: tx, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Doctor, error) {
	req.Email = normalizeEmail(req.Email)
	req.Fullname = strings.TrimSpace(req.Fullname)
	if req.Email == "" || req.Fullname == "" || req.Password == "" {
		return nil, apperr.Validation("Missing required fields: fullname, email, password")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}
	d := &Doctor{
		Email:        req.Email,
		Fullname:     req.Fullname,
		Degree:       req.Degree,
		PhoneNo:      req.PhoneNo,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, db.Classify(err, msgNotFound, "Registration failed")
	}
	return d, nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password produce the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if db.IsNotFound(err) {
			s.hasher.VerifyDummy(req.Password)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, apperr.Internal("Login failed", err)
	}
	if !s.hasher.Verify(req.Password, d.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(d.ID, d.Email)
	if err != nil {
		return nil, apperr.Internal("Login failed", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Doctor: d}, nil
}

func (s *Service) GetProfile(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Failed to fetch doctor")
	}
	return d, nil
}

// UpdateProfile merges the supplied fields into the stored doctor. A new
// password is hashed before it is persisted.
func (s *Service) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*Doctor, error) {
	if req.Fullname != nil {
		trimmed := strings.TrimSpace(*req.Fullname)
		if trimmed == "" {
			return nil, apperr.Validation("fullname cannot be empty", "fullname cannot be empty")
		}
		req.Fullname = &trimmed
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var hash string
	if req.Password != nil {
		h, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperr.Internal("Failed to update profile", err)
		}
		hash = h
	}

	var out *Doctor
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Fullname != nil {
			d.Fullname = *req.Fullname
		}
		if req.Degree != nil {
			d.Degree = req.Degree
		}
		if req.PhoneNo != nil {
			d.PhoneNo = req.PhoneNo
		}
		if hash != "" {
			d.PasswordHash = hash
		}
		if err := s.repo.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Failed to update profile")
	}
	return out, nil
}

// Delete removes the doctor. Clinics, patients and everything below them go
// with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return db.Classify(err, msgNotFound, "Failed to delete doctor")
	}
	return nil
}
