package Models

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	Migrate(db)
	return db
}

func seedProfessional(t *testing.T, db *gorm.DB, commission float64) Professional {
	professional := Professional{
		FirstName:                   "Ana",
		LastName:                    "Suarez",
		Specialization:              "Orthodontics",
		Status:                      ProfessionalActive,
		DefaultCommissionPercentage: commission,
	}
	if err := db.Create(&professional).Error; err != nil {
		t.Fatalf("create professional: %v", err)
	}
	return professional
}

func seedService(t *testing.T, db *gorm.DB, name, code string) Service {
	service := Service{Name: name, Code: code, BasePrice: 50000, IsActive: true}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return service
}

func seedAttention(t *testing.T, db *gorm.DB, professionalID, serviceID, date string, amount float64) Attention {
	attention := Attention{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		PatientName:    "Carlos Perez",
		Date:           date,
		AmountCharged:  amount,
		Status:         AttentionCompleted,
	}
	if err := db.Create(&attention).Error; err != nil {
		t.Fatalf("create attention: %v", err)
	}
	return attention
}

func TestCalculateSettlementTotals(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 30)
	service := seedService(t, db, "Cleaning", "CLN")

	seedAttention(t, db, professional.ID, service.ID, "2026-01-10", 100000)
	seedAttention(t, db, professional.ID, service.ID, "2026-01-20", 200000)

	monthly := Discount{
		Name:         "Admin fee",
		DiscountType: DiscountTypeFixed,
		Category:     CategoryDeduction,
		Value:        10000,
		IsActive:     true,
	}
	if err := db.Create(&monthly).Error; err != nil {
		t.Fatalf("create discount: %v", err)
	}

	settlement := Settlement{
		ProfessionalID: professional.ID,
		PeriodStart:    "2026-01-01",
		PeriodEnd:      "2026-01-31",
		Status:         SettlementDraft,
	}
	if err := db.Create(&settlement).Error; err != nil {
		t.Fatalf("create settlement: %v", err)
	}

	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if settlement.Status != SettlementCalculated {
		t.Fatalf("expected calculated, got %s", settlement.Status)
	}
	if settlement.TotalAttended != 300000 {
		t.Fatalf("total attended: want 300000 got %v", settlement.TotalAttended)
	}
	if settlement.TotalCommission != 90000 {
		t.Fatalf("total commission: want 90000 got %v", settlement.TotalCommission)
	}
	if settlement.TotalDiscounts != 10000 {
		t.Fatalf("total discounts: want 10000 got %v", settlement.TotalDiscounts)
	}
	if settlement.NetAmount != 80000 {
		t.Fatalf("net amount: want 80000 got %v", settlement.NetAmount)
	}
	if settlement.NetAmount != settlement.TotalCommission-settlement.TotalDiscounts {
		t.Fatalf("net invariant broken: %v != %v - %v",
			settlement.NetAmount, settlement.TotalCommission, settlement.TotalDiscounts)
	}

	var items []SettlementLineItem
	if err := db.Where("settlement_id = ?", settlement.ID).Find(&items).Error; err != nil {
		t.Fatalf("load line items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 30)
	service := seedService(t, db, "Extraction", "EXT")
	seedAttention(t, db, professional.ID, service.ID, "2026-02-05", 50000)

	settlement := Settlement{
		ProfessionalID: professional.ID,
		PeriodStart:    "2026-02-01",
		PeriodEnd:      "2026-02-28",
		Status:         SettlementDraft,
	}
	if err := db.Create(&settlement).Error; err != nil {
		t.Fatalf("create settlement: %v", err)
	}

	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("first calculate: %v", err)
	}
	firstNet := settlement.NetAmount
	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("second calculate: %v", err)
	}
	if settlement.NetAmount != firstNet {
		t.Fatalf("recalculate changed net: %v -> %v", firstNet, settlement.NetAmount)
	}

	var count int64
	db.Model(&SettlementLineItem{}).Where("settlement_id = ?", settlement.ID).Count(&count)
	if count != 1 {
		t.Fatalf("recalculate duplicated line items: got %d", count)
	}
}

func TestCommissionOverrideAndInsuranceDiscount(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 30)
	service := seedService(t, db, "Implant", "IMP")

	override := 40.0
	attention := Attention{
		ProfessionalID:              professional.ID,
		ServiceID:                   service.ID,
		PatientName:                 "Lucia Gomez",
		Date:                        "2026-03-10",
		AmountCharged:               100000,
		InsuranceDiscountPercentage: 20,
		CommissionPercentage:        &override,
		Status:                      AttentionCompleted,
	}
	if err := db.Create(&attention).Error; err != nil {
		t.Fatalf("create attention: %v", err)
	}

	// 100000 less 20% insurance = 80000, 40% of that = 32000
	if got := attention.CalculateCommission(professional.DefaultCommissionPercentage); got != 32000 {
		t.Fatalf("commission: want 32000 got %v", got)
	}

	settlement := Settlement{
		ProfessionalID: professional.ID,
		PeriodStart:    "2026-03-01",
		PeriodEnd:      "2026-03-31",
		Status:         SettlementDraft,
	}
	if err := db.Create(&settlement).Error; err != nil {
		t.Fatalf("create settlement: %v", err)
	}
	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if settlement.TotalCommission != 32000 {
		t.Fatalf("settlement commission: want 32000 got %v", settlement.TotalCommission)
	}
}

func TestPendingAttentionsExcluded(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 30)
	service := seedService(t, db, "Whitening", "WHT")

	seedAttention(t, db, professional.ID, service.ID, "2026-04-10", 100000)
	pending := Attention{
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		PatientName:    "Maria Lopez",
		Date:           "2026-04-12",
		AmountCharged:  999999,
		Status:         AttentionPending,
	}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("create pending attention: %v", err)
	}
	outside := seedAttention(t, db, professional.ID, service.ID, "2026-05-01", 777777)
	_ = outside

	settlement := Settlement{
		ProfessionalID: professional.ID,
		PeriodStart:    "2026-04-01",
		PeriodEnd:      "2026-04-30",
		Status:         SettlementDraft,
	}
	if err := db.Create(&settlement).Error; err != nil {
		t.Fatalf("create settlement: %v", err)
	}
	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if settlement.TotalAttended != 100000 {
		t.Fatalf("only completed in-period attentions should count, got %v", settlement.TotalAttended)
	}
}

func TestLifecycleGuards(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 30)

	settlement := Settlement{
		ProfessionalID: professional.ID,
		PeriodStart:    "2026-05-01",
		PeriodEnd:      "2026-05-31",
		Status:         SettlementDraft,
	}
	if err := db.Create(&settlement).Error; err != nil {
		t.Fatalf("create settlement: %v", err)
	}

	if err := settlement.Approve(db); err != ErrNotApprovable {
		t.Fatalf("approve on draft: want ErrNotApprovable got %v", err)
	}
	if err := settlement.MarkAsPaid(db, "TRF-1"); err != ErrNotPayable {
		t.Fatalf("pay on draft: want ErrNotPayable got %v", err)
	}

	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if err := settlement.MarkAsPaid(db, "TRF-1"); err != ErrNotPayable {
		t.Fatalf("pay on calculated: want ErrNotPayable got %v", err)
	}

	if err := settlement.Approve(db); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := settlement.Calculate(db); err != ErrNotCalculable {
		t.Fatalf("calculate on approved: want ErrNotCalculable got %v", err)
	}
	if err := settlement.MarkAsPaid(db, ""); err != ErrEmptyPaymentReference {
		t.Fatalf("pay with empty reference: want ErrEmptyPaymentReference got %v", err)
	}
	if settlement.Status != SettlementApproved {
		t.Fatalf("failed payment must not change status, got %s", settlement.Status)
	}

	if err := settlement.MarkAsPaid(db, "TRF-2041"); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if settlement.PaymentDate == nil {
		t.Fatalf("payment date not stamped")
	}
	if err := settlement.Cancel(db); err != ErrNotCancellable {
		t.Fatalf("cancel on paid: want ErrNotCancellable got %v", err)
	}
}

func TestCancelFromAnyNonPaidState(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 30)

	for index, status := range []string{SettlementDraft, SettlementCalculated, SettlementApproved} {
		settlement := Settlement{
			ProfessionalID: professional.ID,
			PeriodStart:    "2026-06-01",
			PeriodEnd:      fmt.Sprintf("2026-06-1%d", index),
			Status:         status,
		}
		if err := db.Create(&settlement).Error; err != nil {
			t.Fatalf("create %s settlement: %v", status, err)
		}
		if err := settlement.Cancel(db); err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if settlement.Status != SettlementCancelled {
			t.Fatalf("cancel from %s left status %s", status, settlement.Status)
		}
		if err := settlement.Cancel(db); err != ErrNotCancellable {
			t.Fatalf("double cancel: want ErrNotCancellable got %v", err)
		}
	}
}

func TestGenerateForPeriodDedupes(t *testing.T) {
	db := setupTestDB(t)
	first := seedProfessional(t, db, 30)
	second := Professional{
		FirstName:                   "Bruno",
		LastName:                    "Diaz",
		Status:                      ProfessionalActive,
		DefaultCommissionPercentage: 25,
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("create professional: %v", err)
	}
	inactive := Professional{
		FirstName: "Vera",
		LastName:  "Ruiz",
		Status:    ProfessionalInactive,
	}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("create inactive professional: %v", err)
	}

	settlements, created, err := GenerateForPeriod(db, "2026-07-01", "2026-07-31", nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if created != 2 || len(settlements) != 2 {
		t.Fatalf("want 2 created for active professionals, got created=%d len=%d", created, len(settlements))
	}
	for _, settlement := range settlements {
		if settlement.Status != SettlementDraft {
			t.Fatalf("generated settlement not draft: %s", settlement.Status)
		}
		if settlement.ProfessionalID == inactive.ID {
			t.Fatalf("inactive professional got a settlement")
		}
	}

	_, created, err = GenerateForPeriod(db, "2026-07-01", "2026-07-31", nil)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if created != 0 {
		t.Fatalf("regenerate must not create duplicates, got %d", created)
	}

	var count int64
	db.Model(&Settlement{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 settlements total, got %d", count)
	}
	_ = first
}

func TestPercentageDiscountAppliesToCommission(t *testing.T) {
	db := setupTestDB(t)
	professional := seedProfessional(t, db, 50)
	service := seedService(t, db, "Consultation", "CON")
	seedAttention(t, db, professional.ID, service.ID, "2026-08-15", 100000)

	retention := Discount{
		Name:         "Income retention",
		DiscountType: DiscountTypePercentage,
		Category:     CategoryRetention,
		Value:        10,
		IsActive:     true,
	}
	if err := db.Create(&retention).Error; err != nil {
		t.Fatalf("create retention: %v", err)
	}

	settlement := Settlement{
		ProfessionalID: professional.ID,
		PeriodStart:    "2026-08-01",
		PeriodEnd:      "2026-08-31",
		Status:         SettlementDraft,
	}
	if err := db.Create(&settlement).Error; err != nil {
		t.Fatalf("create settlement: %v", err)
	}
	if err := settlement.Calculate(db); err != nil {
		t.Fatalf("calculate: %v", err)
	}

	// 50% of 100000 = 50000 commission, 10% retention = 5000
	if settlement.TotalCommission != 50000 {
		t.Fatalf("commission: want 50000 got %v", settlement.TotalCommission)
	}
	if settlement.TotalDiscounts != 5000 || settlement.TotalRetentions != 5000 {
		t.Fatalf("retention: want 5000/5000 got %v/%v", settlement.TotalDiscounts, settlement.TotalRetentions)
	}
	if settlement.NetAmount != 45000 {
		t.Fatalf("net: want 45000 got %v", settlement.NetAmount)
	}
}
