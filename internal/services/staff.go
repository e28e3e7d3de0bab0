package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pahanaedu/pos-platform/internal/config"
	"github.com/pahanaedu/pos-platform/internal/errors"
	"github.com/pahanaedu/pos-platform/internal/models"
	repository "github.com/pahanaedu/pos-platform/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type StaffService interface {
	CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.Staff, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetStaffByID(ctx context.Context, id int64) (*models.Staff, error)
	UpdateStaff(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.Staff, error)
	DeleteStaff(ctx context.Context, id int64) error
	ListStaff(ctx context.Context, page, pageSize int) ([]*models.Staff, int, error)
}

type staffService struct {
	repo        repository.StaffRepository
	rateLimiter repository.RateLimitRepository
	jwtKey      []byte
	tokenExpiry time.Duration
	sanitizer   *bluemonday.Policy
}

func NewStaffService(repo repository.StaffRepository, rateLimiter repository.RateLimitRepository, security config.Security) StaffService {
	return &staffService{
		repo:        repo,
		rateLimiter: rateLimiter,
		jwtKey:      []byte(security.JWTKey),
		tokenExpiry: security.TokenExpiry,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *staffService) CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.Staff, error) {

	existing, err := s.repo.GetStaffByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check existing staff").WithError(err)
	}

	if existing != nil {
		return nil, errors.DuplicateEntryError("Username already registered")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	staff := &models.Staff{
		Name:      s.sanitizer.Sanitize(req.Name),
		Telephone: req.Telephone,
		Address:   s.sanitizer.Sanitize(req.Address),
		Username:  req.Username,
		Password:  string(hashedPassword),
		Email:     req.Email,
		Role:      req.Role,
	}

	err = s.repo.CreateStaff(ctx, staff)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create staff member").WithError(err)
	}

	return staff, nil
}

// Login never reveals whether the username or the password was wrong, and the
// rate limiter counts every attempt, failed or not.
func (s *staffService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	staff, err := s.repo.GetStaffByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.DatabaseError("Failed to look up staff member").WithError(err)
	}

	if staff == nil || bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid username or password",
			RemainingTries: remaining,
		}, nil
	}

	claims := &models.Claims{
		Username: staff.Username,
		Role:     staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		UserID:    staff.ID,
		Username:  staff.Username,
		Role:      staff.Role,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *staffService) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {

	staff, err := s.repo.GetStaffByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Staff member not found").WithError(err)
	}

	return staff, nil
}

// UpdateStaff leaves the username and the stored password hash untouched.
func (s *staffService) UpdateStaff(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.Staff, error) {

	staff, err := s.repo.GetStaffByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Staff member not found").WithError(err)
	}

	staff.Name = s.sanitizer.Sanitize(req.Name)
	staff.Telephone = req.Telephone
	staff.Address = s.sanitizer.Sanitize(req.Address)
	staff.Email = req.Email
	staff.Role = req.Role

	if err := s.repo.UpdateStaff(ctx, staff); err != nil {
		return nil, errors.DatabaseError("Failed to update staff member").WithError(err)
	}

	return staff, nil
}

func (s *staffService) DeleteStaff(ctx context.Context, id int64) error {

	err := s.repo.DeleteStaff(ctx, id)
	if err != nil {
		return errors.NotFoundError("Staff member not found").WithError(err)
	}

	return nil
}

func (s *staffService) ListStaff(ctx context.Context, page, pageSize int) ([]*models.Staff, int, error) {

	staffMembers, total, err := s.repo.ListStaff(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch staff").WithError(err)
	}

	return staffMembers, total, nil
}
