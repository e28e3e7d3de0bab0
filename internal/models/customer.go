package models

import "time"

type Customer struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Telephone   string    `json:"telephone" validate:"required,min=9,max=15"`
	Address     string    `json:"address" validate:"required"`
	IsActive    bool      `json:"is_active"`
	LastUpdated time.Time `json:"last_updated"`
}

// CustomerInput is the raw candidate customer assembled at the terminal. It
// stays separate from Customer so that an unvalidated form never masquerades
// as a persisted record.
type CustomerInput struct {
	Name      string `json:"name" validate:"required"`
	Telephone string `json:"telephone" validate:"required,min=9,max=15"`
	Address   string `json:"address" validate:"required"`
}

type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Telephone string `json:"telephone" validate:"required,min=9,max=15"`
	Address   string `json:"address" validate:"required,max=255"`
}

type UpdateCustomerRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Telephone string `json:"telephone" validate:"required,min=9,max=15"`
	Address   string `json:"address" validate:"required,max=255"`
}
