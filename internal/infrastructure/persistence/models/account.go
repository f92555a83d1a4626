package models

import (
	"time"

	"github.com/storeboard/backend/internal/domain/account"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement"`
	Email               string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	DisplayName         string     `gorm:"type:varchar(200)"`
	StoreURL            string     `gorm:"type:varchar(500)"`
	ConsumerKeyEnc      string     `gorm:"type:text"`
	ConsumerSecretEnc   string     `gorm:"type:text"`
	TrialExpirationDate *time.Time `gorm:""`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *account.Account {
	return &account.Account{
		ID:                  m.ID,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		DisplayName:         m.DisplayName,
		StoreURL:            m.StoreURL,
		ConsumerKeyEnc:      m.ConsumerKeyEnc,
		ConsumerSecretEnc:   m.ConsumerSecretEnc,
		TrialExpirationDate: m.TrialExpirationDate,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// AccountModelFromDomain converts a domain Account entity to its persistence model.
func AccountModelFromDomain(a *account.Account) *AccountModel {
	return &AccountModel{
		ID:                  a.ID,
		Email:               a.Email,
		PasswordHash:        a.PasswordHash,
		DisplayName:         a.DisplayName,
		StoreURL:            a.StoreURL,
		ConsumerKeyEnc:      a.ConsumerKeyEnc,
		ConsumerSecretEnc:   a.ConsumerSecretEnc,
		TrialExpirationDate: a.TrialExpirationDate,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}
