package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttentionPending   = "pending"
	AttentionCompleted = "completed"
	AttentionCancelled = "cancelled"
)

// Attention is a billable patient encounter. Dates are stored as "2006-01-02"
// strings so period filters are plain lexical BETWEENs.
type Attention struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	ProfessionalID string       `gorm:"size:36;index" json:"professional_id"`
	Professional   Professional `json:"professional,omitempty"`
	ServiceID      string       `gorm:"size:36" json:"service_id"`
	Service        Service      `json:"service,omitempty"`

	PatientName     string `gorm:"size:200" json:"patient_name"`
	PatientID       string `gorm:"size:50" json:"patient_id"`
	HealthInsurance string `gorm:"size:100" json:"health_insurance"`

	Date          string  `gorm:"size:10;index" json:"date"`
	AmountCharged float64 `json:"amount_charged"`

	InsuranceDiscountPercentage float64 `json:"insurance_discount_percentage"`

	// Per-attention override; nil falls back to the professional default.
	CommissionPercentage *float64 `json:"commission_percentage"`

	Notes  string `json:"notes"`
	Status string `gorm:"size:20;default:completed" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (attention *Attention) BeforeCreate(tx *gorm.DB) error {
	if attention.ID == "" {
		attention.ID = uuid.NewString()
	}
	return nil
}

// EffectiveCommissionPercentage resolves the override against the
// professional's stored default.
func (attention *Attention) EffectiveCommissionPercentage(defaultPercentage float64) float64 {
	if attention.CommissionPercentage != nil {
		return *attention.CommissionPercentage
	}
	return defaultPercentage
}

// CalculateCommission computes the professional's share of this attention.
// The insurance discount comes off the charged amount first, the commission
// percentage applies to what remains.
func (attention *Attention) CalculateCommission(defaultPercentage float64) float64 {
	amount := attention.AmountCharged
	if attention.InsuranceDiscountPercentage > 0 {
		amount = amount - (amount*attention.InsuranceDiscountPercentage)/100
	}
	return (amount * attention.EffectiveCommissionPercentage(defaultPercentage)) / 100
}
