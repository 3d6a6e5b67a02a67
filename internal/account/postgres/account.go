package postgres

import (
	"errors"

	"github.com/wicaksana/hr-workflow/internal"
	"github.com/wicaksana/hr-workflow/internal/account"
	accountDatamodel "github.com/wicaksana/hr-workflow/internal/core/datamodel/account"
	"gorm.io/gorm"
)

// AccountRepository implements the account.Repository interface using GORM
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByEmail(email string) (*account.Account, error) {
	var dm accountDatamodel.Account
	err := r.db.Where("email = ? AND is_active = true", email).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return account.FromDataModel(&dm), nil
}

func (r *AccountRepository) GetByID(id account.ID) (*account.Account, error) {
	var dm accountDatamodel.Account
	err := r.db.Where("id = ? AND is_active = true", int64(id)).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAccountNotFound
		}
		return nil, err
	}
	return account.FromDataModel(&dm), nil
}
