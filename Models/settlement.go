package Models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SettlementDraft      = "draft"
	SettlementCalculated = "calculated"
	SettlementApproved   = "approved"
	SettlementPaid       = "paid"
	SettlementCancelled  = "cancelled"
)

var (
	ErrNotCalculable      = errors.New("only draft or calculated settlements can be calculated")
	ErrNotApprovable      = errors.New("only calculated settlements can be approved")
	ErrNotPayable         = errors.New("only approved settlements can be marked as paid")
	ErrNotCancellable     = errors.New("paid or cancelled settlements cannot be cancelled")
	ErrEmptyPaymentReference = errors.New("a payment reference is required")
)

// Settlement is the periodic commission payout record for one professional.
// The server owns the lifecycle: draft -> calculated -> approved -> paid, with
// cancelled reachable from any non-paid state. Totals are only ever written by
// Calculate, inside one transaction, so net_amount = total_commission -
// total_discounts holds on every persisted row.
type Settlement struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	ProfessionalID string       `gorm:"size:36;uniqueIndex:idx_settlement_period" json:"professional_id"`
	Professional   Professional `json:"professional,omitempty"`

	PeriodStart string `gorm:"size:10;uniqueIndex:idx_settlement_period" json:"period_start"`
	PeriodEnd   string `gorm:"size:10;uniqueIndex:idx_settlement_period" json:"period_end"`

	TotalAttended   float64 `json:"total_attended"`
	TotalCommission float64 `json:"total_commission"`
	// TotalDiscounts aggregates every applied deduction regardless of
	// category; TotalRetentions is the retention share of it, kept for the
	// report breakdown.
	TotalDiscounts  float64 `json:"total_discounts"`
	TotalRetentions float64 `json:"total_retentions"`
	NetAmount       float64 `json:"net_amount"`

	Status string `gorm:"size:20;default:draft" json:"status"`

	PaymentReference string     `gorm:"size:100" json:"payment_reference"`
	PaymentDate      *time.Time `json:"payment_date"`

	Notes       string `json:"notes"`
	CreatedByID *uint  `json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	LineItems        []SettlementLineItem `json:"line_items,omitempty"`
	DiscountsApplied []SettlementDiscount `json:"discounts_applied,omitempty"`
}

func (settlement *Settlement) BeforeCreate(tx *gorm.DB) error {
	if settlement.ID == "" {
		settlement.ID = uuid.NewString()
	}
	return nil
}

// SettlementLineItem snapshots one attention as it was settled, so later edits
// to the attention or the catalog don't rewrite history.
type SettlementLineItem struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	SettlementID string  `gorm:"size:36;index" json:"settlement_id"`
	AttentionID  *string `gorm:"size:36" json:"attention_id"`

	ServiceName string `gorm:"size:200" json:"service_name"`
	ServiceCode string `gorm:"size:50" json:"service_code"`
	PatientName string `gorm:"size:200" json:"patient_name"`

	AttendanceDate       string  `gorm:"size:10" json:"attendance_date"`
	AmountCharged        float64 `json:"amount_charged"`
	CommissionPercentage float64 `json:"commission_percentage"`
	CommissionAmount     float64 `json:"commission_amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (item *SettlementLineItem) BeforeCreate(tx *gorm.DB) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return nil
}

type SettlementDiscount struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	SettlementID string `gorm:"size:36;index" json:"settlement_id"`
	DiscountID   string `gorm:"size:36" json:"discount_id"`

	DiscountName   string  `gorm:"size:200" json:"discount_name"`
	DiscountType   string  `gorm:"size:20" json:"discount_type"`
	Category       string  `gorm:"size:20" json:"category"`
	DiscountValue  float64 `json:"discount_value"`
	DiscountAmount float64 `json:"discount_amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (applied *SettlementDiscount) BeforeCreate(tx *gorm.DB) error {
	if applied.ID == "" {
		applied.ID = uuid.NewString()
	}
	return nil
}

// Calculate recomputes the settlement from the current attention and discount
// state. Idempotent on calculated settlements (the recalculate affordance):
// previous line items and applied discounts are wiped and rebuilt, all inside
// one transaction.
func (settlement *Settlement) Calculate(db *gorm.DB) error {
	if settlement.Status != SettlementDraft && settlement.Status != SettlementCalculated {
		return ErrNotCalculable
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var professional Professional
		if err := tx.First(&professional, "id = ?", settlement.ProfessionalID).Error; err != nil {
			return err
		}

		var attentions []Attention
		if err := tx.Model(&Attention{}).
			Preload("Service").
			Where("professional_id = ? AND status = ? AND date BETWEEN ? AND ?",
				settlement.ProfessionalID, AttentionCompleted, settlement.PeriodStart, settlement.PeriodEnd).
			Find(&attentions).Error; err != nil {
			return err
		}

		if err := tx.Where("settlement_id = ?", settlement.ID).Delete(&SettlementLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("settlement_id = ?", settlement.ID).Delete(&SettlementDiscount{}).Error; err != nil {
			return err
		}

		var totalAttended, totalCommission float64
		for index := range attentions {
			attention := &attentions[index]
			commission := attention.CalculateCommission(professional.DefaultCommissionPercentage)
			totalAttended += attention.AmountCharged
			totalCommission += commission

			attentionID := attention.ID
			item := SettlementLineItem{
				SettlementID:         settlement.ID,
				AttentionID:          &attentionID,
				ServiceName:          attention.Service.Name,
				ServiceCode:          attention.Service.Code,
				PatientName:          attention.PatientName,
				AttendanceDate:       attention.Date,
				AmountCharged:        attention.AmountCharged,
				CommissionPercentage: attention.EffectiveCommissionPercentage(professional.DefaultCommissionPercentage),
				CommissionAmount:     commission,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		var discounts []Discount
		if err := tx.Model(&Discount{}).Where("is_active = ?", true).Find(&discounts).Error; err != nil {
			return err
		}

		var totalDiscounts, totalRetentions float64
		for _, discount := range discounts {
			amount := discount.AmountFor(totalCommission)
			totalDiscounts += amount
			if discount.Category == CategoryRetention {
				totalRetentions += amount
			}

			applied := SettlementDiscount{
				SettlementID:   settlement.ID,
				DiscountID:     discount.ID,
				DiscountName:   discount.Name,
				DiscountType:   discount.DiscountType,
				Category:       discount.Category,
				DiscountValue:  discount.Value,
				DiscountAmount: amount,
			}
			if err := tx.Create(&applied).Error; err != nil {
				return err
			}
		}

		settlement.TotalAttended = totalAttended
		settlement.TotalCommission = totalCommission
		settlement.TotalDiscounts = totalDiscounts
		settlement.TotalRetentions = totalRetentions
		settlement.NetAmount = totalCommission - totalDiscounts
		settlement.Status = SettlementCalculated

		return tx.Save(settlement).Error
	})
}

// Approve freezes a calculated settlement for payment processing.
func (settlement *Settlement) Approve(db *gorm.DB) error {
	if settlement.Status != SettlementCalculated {
		return ErrNotApprovable
	}
	settlement.Status = SettlementApproved
	return db.Save(settlement).Error
}

// MarkAsPaid is terminal for the normal flow.
func (settlement *Settlement) MarkAsPaid(db *gorm.DB, paymentReference string) error {
	if settlement.Status != SettlementApproved {
		return ErrNotPayable
	}
	paymentReference = strings.TrimSpace(paymentReference)
	if paymentReference == "" {
		return ErrEmptyPaymentReference
	}
	now := time.Now()
	settlement.Status = SettlementPaid
	settlement.PaymentReference = paymentReference
	settlement.PaymentDate = &now
	return db.Save(settlement).Error
}

// Cancel abandons the settlement. Allowed from any non-paid state.
func (settlement *Settlement) Cancel(db *gorm.DB) error {
	if settlement.Status == SettlementPaid || settlement.Status == SettlementCancelled {
		return ErrNotCancellable
	}
	settlement.Status = SettlementCancelled
	return db.Save(settlement).Error
}

// GenerateForPeriod creates a draft settlement for every active professional
// that doesn't already have one for the exact period. Repeating the call for
// the same or overlapping periods is safe: the (professional, period_start,
// period_end) key dedupes, overlap policy is the caller's concern.
func GenerateForPeriod(db *gorm.DB, periodStart, periodEnd string, createdBy *uint) ([]Settlement, int, error) {
	var professionals []Professional
	if err := db.Model(&Professional{}).Where("status = ?", ProfessionalActive).Find(&professionals).Error; err != nil {
		return nil, 0, err
	}

	settlements := make([]Settlement, 0, len(professionals))
	created := 0
	for _, professional := range professionals {
		settlement := Settlement{
			ProfessionalID: professional.ID,
			PeriodStart:    periodStart,
			PeriodEnd:      periodEnd,
		}
		result := db.Where("professional_id = ? AND period_start = ? AND period_end = ?",
			professional.ID, periodStart, periodEnd).
			Attrs(Settlement{Status: SettlementDraft, CreatedByID: createdBy}).
			FirstOrCreate(&settlement)
		if result.Error != nil {
			return nil, 0, result.Error
		}
		if result.RowsAffected > 0 {
			created++
		}
		settlements = append(settlements, settlement)
	}
	return settlements, created, nil
}
