package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:200;not null;unique" json:"name"`
	Description string `json:"description"`

	BasePrice float64 `json:"base_price"`

	// Suggested commission for attentions of this service, 0-100. Copied onto
	// new attentions by the UI; settlement math reads the attention override or
	// the professional default, never this field.
	CommissionPercentage float64 `gorm:"default:30" json:"commission_percentage"`

	Code     string `gorm:"size:50;not null;unique" json:"code"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (service *Service) BeforeCreate(tx *gorm.DB) error {
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	return nil
}
