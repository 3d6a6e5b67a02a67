package account

import (
	accountDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/account"
)

// ID identifies an authenticated account. It is a different namespace
// from org.EmployeeID: notifications and approval records are always
// addressed to an account, never to an employee record. Keeping the two
// as distinct types makes mixing them a compile error.
type ID int64

type Account struct {
	ID           ID     `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"is_active"`
	IsManager    bool   `json:"is_manager"`
}

// Repository is the account directory boundary: the only lookups the
// workflow engine needs are by email (bridging employee records to
// accounts) and by id (token validation).
type Repository interface {
	GetByEmail(email string) (*Account, error)
	GetByID(id ID) (*Account, error)
}

func FromDataModel(a *accountDatamodel.Account) *Account {
	return &Account{
		ID:           ID(a.ID),
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
		IsManager:    a.IsManager,
	}
}
