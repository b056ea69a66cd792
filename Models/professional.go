package Models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProfessionalActive    = "active"
	ProfessionalInactive  = "inactive"
	ProfessionalSuspended = "suspended"
)

type Professional struct {
	ID             string  `gorm:"primaryKey;size:36" json:"id"`
	UserID         *uint   `json:"user_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	LicenseNumber  *string `gorm:"size:50;unique" json:"license_number"`
	Specialization string  `gorm:"size:100" json:"specialization"`
	Phone          string  `gorm:"size:20" json:"phone"`
	Address        string  `json:"address"`
	Status         string  `gorm:"size:20;default:active" json:"status"`

	// Commission share used when an attention carries no override, 0-100.
	DefaultCommissionPercentage float64 `gorm:"default:30" json:"default_commission_percentage"`

	BankAccount string `gorm:"size:50" json:"bank_account"`
	BankName    string `gorm:"size:100" json:"bank_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (professional *Professional) BeforeCreate(tx *gorm.DB) error {
	if professional.ID == "" {
		professional.ID = uuid.NewString()
	}
	return nil
}

func (professional *Professional) FullName() string {
	return strings.TrimSpace(professional.FirstName + " " + professional.LastName)
}
