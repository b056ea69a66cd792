package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

const (
	CategoryDiscount  = "discount"
	CategoryRetention = "retention"
	CategoryDeduction = "deduction"
)

// Discount is a named deduction applied to every settlement while active:
// percentage values apply to the settlement's total commission, fixed values
// subtract as-is.
type Discount struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `json:"description"`

	DiscountType string `gorm:"size:20" json:"discount_type"`
	Category     string `gorm:"size:20" json:"category"`

	Value float64 `json:"value"`

	IsActive    bool `gorm:"default:true" json:"is_active"`
	IsMandatory bool `gorm:"default:false" json:"is_mandatory"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (discount *Discount) BeforeCreate(tx *gorm.DB) error {
	if discount.ID == "" {
		discount.ID = uuid.NewString()
	}
	return nil
}

// AmountFor resolves the discount against a commission base.
func (discount *Discount) AmountFor(totalCommission float64) float64 {
	if discount.DiscountType == DiscountTypePercentage {
		return (totalCommission * discount.Value) / 100
	}
	return discount.Value
}

type InsuranceDiscount struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	InsuranceName string `gorm:"size:200;not null;unique" json:"insurance_name"`

	DiscountType  string  `gorm:"size:20;default:percentage" json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`

	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (insuranceDiscount *InsuranceDiscount) BeforeCreate(tx *gorm.DB) error {
	if insuranceDiscount.ID == "" {
		insuranceDiscount.ID = uuid.NewString()
	}
	return nil
}
