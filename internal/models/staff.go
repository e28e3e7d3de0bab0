package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type StaffRole string

const (
	RoleManager StaffRole = "MANAGER"
	RoleCashier StaffRole = "CASHIER"
)

type Staff struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Telephone   string    `json:"telephone"`
	Address     string    `json:"address"`
	Username    string    `json:"username" validate:"required"`
	Password    string    `json:"-"`
	Email       string    `json:"email"`
	Role        StaffRole `json:"role"`
	LastUpdated time.Time `json:"last_updated"`
}

type CreateStaffRequest struct {
	Name      string    `json:"name" validate:"required,max=100"`
	Telephone string    `json:"telephone" validate:"required,min=9,max=15"`
	Address   string    `json:"address" validate:"required,max=255"`
	Username  string    `json:"username" validate:"required,min=3,max=50"`
	Password  string    `json:"password" validate:"required,min=6"`
	Email     string    `json:"email" validate:"required,email"`
	Role      StaffRole `json:"role" validate:"required,oneof=MANAGER CASHIER"`
}

// UpdateStaffRequest covers everything a manager may edit on a staff record.
// Username and password are fixed at creation; password changes go through a
// separate reset flow.
type UpdateStaffRequest struct {
	Name      string    `json:"name" validate:"required,max=100"`
	Telephone string    `json:"telephone" validate:"required,min=9,max=15"`
	Address   string    `json:"address" validate:"required,max=255"`
	Email     string    `json:"email" validate:"required,email"`
	Role      StaffRole `json:"role" validate:"required,oneof=MANAGER CASHIER"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool      `json:"success"`
	Token          string    `json:"token,omitempty"`
	UserID         int64     `json:"userId,omitempty"`
	Username       string    `json:"username,omitempty"`
	Role           StaffRole `json:"role,omitempty"`
	ExpiresIn      int       `json:"expires_in,omitempty"`
	RemainingTries int       `json:"remaining_tries,omitempty"`
	RetryAfter     int       `json:"retry_after,omitempty"`
	Message        string    `json:"message,omitempty"`
}

// JWT claims structure
type Claims struct {
	Username string    `json:"username"`
	Role     StaffRole `json:"role"`
	jwt.RegisteredClaims
}
