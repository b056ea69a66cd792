package Controllers

import (
	"errors"
	"net/http"
	"time"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func settlementScope(c *gin.Context) *gorm.DB {
	query := Models.DB.Model(&Models.Settlement{})
	if isAdmin(c) {
		return query
	}
	own := ownProfessionalID(c)
	if own == "" {
		return query.Where("1 = 0")
	}
	return query.Where("professional_id = ?", own)
}

// lifecycleStatus maps a rejected transition to 400 with the reason, anything
// else to 500.
func lifecycleStatus(err error) int {
	switch {
	case errors.Is(err, Models.ErrNotCalculable),
		errors.Is(err, Models.ErrNotApprovable),
		errors.Is(err, Models.ErrNotPayable),
		errors.Is(err, Models.ErrNotCancellable),
		errors.Is(err, Models.ErrEmptyPaymentReference):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func FetchSettlements(c *gin.Context) {
	query := settlementScope(c)

	if professionalID := c.Query("professional_id"); professionalID != "" {
		query = query.Where("professional_id = ?", professionalID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("period_start >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("period_end <= ?", endDate)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offset, limit := pageWindow(c)
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var settlements []Models.Settlement
	if err := query.Preload("Professional").Order("period_end desc").Find(&settlements).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, settlements))
}

func GetSettlement(c *gin.Context) {
	var settlement Models.Settlement
	if err := settlementScope(c).
		Preload("Professional").
		Preload("LineItems").
		Preload("DiscountsApplied").
		First(&settlement, "settlements.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}
	c.JSON(http.StatusOK, settlement)
}

type SettlementInput struct {
	ProfessionalID string `json:"professional_id" binding:"required"`
	PeriodStart    string `json:"period_start" binding:"required"`
	PeriodEnd      string `json:"period_end" binding:"required"`
	Notes          string `json:"notes"`
}

func validPeriod(start, end string) bool {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return false
	}
	return !e.Before(s)
}

func CreateSettlement(c *gin.Context) {
	var input SettlementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPeriod(input.PeriodStart, input.PeriodEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period, expected YYYY-MM-DD with start before end"})
		return
	}

	var professional Models.Professional
	if err := Models.DB.First(&professional, "id = ?", input.ProfessionalID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Professional not found"})
		return
	}

	settlement := Models.Settlement{
		ProfessionalID: input.ProfessionalID,
		PeriodStart:    input.PeriodStart,
		PeriodEnd:      input.PeriodEnd,
		Notes:          input.Notes,
		Status:         Models.SettlementDraft,
		CreatedByID:    currentUserID(c),
	}
	if err := Models.DB.Create(&settlement).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A settlement already exists for this professional and period"})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "Settlement",
		settlement.ID, settlement.PeriodStart+" - "+settlement.PeriodEnd, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, settlement)
}

// UpdateSettlement only touches the free-text notes. Periods and totals are
// owned by the lifecycle.
func UpdateSettlement(c *gin.Context) {
	var settlement Models.Settlement
	if err := Models.DB.First(&settlement, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement.Notes = input.Notes
	if err := Models.DB.Save(&settlement).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settlement)
}

func DeleteSettlement(c *gin.Context) {
	var settlement Models.Settlement
	if err := Models.DB.First(&settlement, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	if settlement.Status == Models.SettlementPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paid settlements cannot be deleted"})
		return
	}

	if err := Models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("settlement_id = ?", settlement.ID).Delete(&Models.SettlementLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("settlement_id = ?", settlement.ID).Delete(&Models.SettlementDiscount{}).Error; err != nil {
			return err
		}
		return tx.Delete(&settlement).Error
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "Settlement",
		settlement.ID, settlement.PeriodStart+" - "+settlement.PeriodEnd, c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

func CalculateSettlement(c *gin.Context) {
	var settlement Models.Settlement
	if err := Models.DB.First(&settlement, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	if err := settlement.Calculate(Models.DB); err != nil {
		c.JSON(lifecycleStatus(err), gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditStatusChange, "Settlement",
		settlement.ID, "calculated", c.ClientIP(), c.Request.UserAgent())

	if err := Models.DB.Preload("Professional").Preload("LineItems").Preload("DiscountsApplied").
		First(&settlement, "id = ?", settlement.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settlement)
}

func ApproveSettlement(c *gin.Context) {
	var settlement Models.Settlement
	if err := Models.DB.First(&settlement, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	if err := settlement.Approve(Models.DB); err != nil {
		c.JSON(lifecycleStatus(err), gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditStatusChange, "Settlement",
		settlement.ID, "approved", c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, settlement)
}

func MarkSettlementAsPaid(c *gin.Context) {
	var settlement Models.Settlement
	if err := Models.DB.First(&settlement, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	var input struct {
		PaymentReference string `json:"payment_reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := settlement.MarkAsPaid(Models.DB, input.PaymentReference); err != nil {
		c.JSON(lifecycleStatus(err), gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditPayment, "Settlement",
		settlement.ID, "paid ref "+input.PaymentReference, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, settlement)
}

func CancelSettlement(c *gin.Context) {
	var settlement Models.Settlement
	if err := Models.DB.First(&settlement, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		return
	}

	if err := settlement.Cancel(Models.DB); err != nil {
		c.JSON(lifecycleStatus(err), gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditStatusChange, "Settlement",
		settlement.ID, "cancelled", c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, settlement)
}

func GenerateSettlementsForPeriod(c *gin.Context) {
	var input struct {
		PeriodStart string `json:"period_start" binding:"required"`
		PeriodEnd   string `json:"period_end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period_start and period_end are required"})
		return
	}
	if !validPeriod(input.PeriodStart, input.PeriodEnd) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period, expected YYYY-MM-DD with start before end"})
		return
	}

	settlements, created, err := Models.GenerateForPeriod(Models.DB, input.PeriodStart, input.PeriodEnd, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditSettlementGenerated, "Settlement",
		input.PeriodStart+" - "+input.PeriodEnd, "", c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{
		"created_count": created,
		"settlements":   settlements,
	})
}

func SettlementReport(c *gin.Context) {
	query := settlementScope(c)

	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("period_start >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("period_end <= ?", endDate)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var settlements []Models.Settlement
	if err := query.Preload("Professional").Order("period_end desc").Find(&settlements).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var totalAmount float64
	byStatus := map[string]gin.H{}
	for _, status := range []string{
		Models.SettlementDraft, Models.SettlementCalculated, Models.SettlementApproved,
		Models.SettlementPaid, Models.SettlementCancelled,
	} {
		byStatus[status] = gin.H{"count": 0, "total": 0.0}
	}
	for _, settlement := range settlements {
		totalAmount += settlement.NetAmount
		entry := byStatus[settlement.Status]
		entry["count"] = entry["count"].(int) + 1
		entry["total"] = entry["total"].(float64) + settlement.NetAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"total_settlements": len(settlements),
		"total_amount":      totalAmount,
		"by_status":         byStatus,
		"settlements":       settlements,
	})
}
