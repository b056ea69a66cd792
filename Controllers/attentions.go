package Controllers

import (
	"net/http"
	"time"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// attentionScope narrows the query to the caller's own attentions unless the
// caller is an admin. Staff and unlinked users see nothing.
func attentionScope(c *gin.Context) *gorm.DB {
	query := Models.DB.Model(&Models.Attention{})
	if isAdmin(c) {
		return query
	}
	own := ownProfessionalID(c)
	if own == "" {
		return query.Where("1 = 0")
	}
	return query.Where("professional_id = ?", own)
}

func FetchAttentions(c *gin.Context) {
	query := attentionScope(c)

	if professionalID := c.Query("professional_id"); professionalID != "" {
		query = query.Where("professional_id = ?", professionalID)
	}
	if serviceID := c.Query("service_id"); serviceID != "" {
		query = query.Where("service_id = ?", serviceID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("patient_name LIKE ? OR patient_id LIKE ?", like, like)
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

	var attentions []Models.Attention
	if err := query.Preload("Service").Preload("Professional").Order("date desc").Find(&attentions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, attentions))
}

func GetAttention(c *gin.Context) {
	var attention Models.Attention
	if err := attentionScope(c).Preload("Service").Preload("Professional").
		First(&attention, "attentions.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attention not found"})
		return
	}
	c.JSON(http.StatusOK, attention)
}

func CreateAttention(c *gin.Context) {
	var input Models.Attention
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = ""
	input.Professional = Models.Professional{}
	input.Service = Models.Service{}

	// Professionals can only log their own attentions.
	if !isAdmin(c) {
		own := ownProfessionalID(c)
		if own == "" || (input.ProfessionalID != "" && input.ProfessionalID != own) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot register attentions for another professional"})
			return
		}
		input.ProfessionalID = own
	}

	if input.Status == "" {
		input.Status = Models.AttentionCompleted
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	if err := Models.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "Attention",
		input.ID, input.PatientName+" on "+input.Date, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, input)
}

func UpdateAttention(c *gin.Context) {
	var attention Models.Attention
	if err := attentionScope(c).First(&attention, "attentions.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attention not found"})
		return
	}

	var input Models.Attention
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = attention.ID
	input.CreatedAt = attention.CreatedAt
	input.Professional = Models.Professional{}
	input.Service = Models.Service{}

	if !isAdmin(c) {
		input.ProfessionalID = attention.ProfessionalID
	}
	if input.Date != "" {
		if _, err := time.Parse("2006-01-02", input.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
	}

	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "Attention",
		input.ID, input.PatientName+" on "+input.Date, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, input)
}

func DeleteAttention(c *gin.Context) {
	var attention Models.Attention
	if err := attentionScope(c).First(&attention, "attentions.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attention not found"})
		return
	}

	if err := Models.DB.Delete(&attention).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "Attention",
		attention.ID, attention.PatientName, c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

func ProfessionalAttentions(c *gin.Context) {
	professionalID := c.Query("professional_id")
	if professionalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professional_id is required"})
		return
	}

	var attentions []Models.Attention
	if err := attentionScope(c).Preload("Service").
		Where("professional_id = ?", professionalID).
		Order("date desc").
		Find(&attentions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, attentions)
}

func AttentionsByDateRange(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}
	if _, err := time.Parse("2006-01-02", startDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("2006-01-02", endDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	var attentions []Models.Attention
	if err := attentionScope(c).Preload("Service").Preload("Professional").
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date desc").
		Find(&attentions).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, attentions)
}
