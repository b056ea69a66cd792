package Controllers

import (
	"net/http"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func FetchAuditLogs(c *gin.Context) {
	query := Models.DB.Model(&Models.AuditLog{})

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if modelName := c.Query("model_name"); modelName != "" {
		query = query.Where("model_name = ?", modelName)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
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

	var logs []Models.AuditLog
	if err := query.Order("created_at desc").Find(&logs).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, logs))
}

func AuditSummary(c *gin.Context) {
	var total int64
	if err := Models.DB.Model(&Models.AuditLog{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	byAction := map[string]int64{}
	for _, action := range []string{
		Models.AuditCreate, Models.AuditUpdate, Models.AuditDelete,
		Models.AuditStatusChange, Models.AuditPayment, Models.AuditSettlementGenerated,
	} {
		var count int64
		Models.DB.Model(&Models.AuditLog{}).Where("action = ?", action).Count(&count)
		byAction[action] = count
	}

	byModel := map[string]int64{}
	for _, modelName := range []string{"User", "Professional", "Service", "Attention", "Settlement", "Discount", "InsuranceDiscount"} {
		var count int64
		Models.DB.Model(&Models.AuditLog{}).Where("model_name = ?", modelName).Count(&count)
		byModel[modelName] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"total_logs": total,
		"by_action":  byAction,
		"by_model":   byModel,
	})
}
