package Controllers

import (
	"net/http"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func FetchProfessionals(c *gin.Context) {
	query := Models.DB.Model(&Models.Professional{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if specialization := c.Query("specialization"); specialization != "" {
		query = query.Where("specialization = ?", specialization)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR license_number LIKE ?", like, like, like)
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

	var professionals []Models.Professional
	if err := query.Order("created_at desc").Find(&professionals).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, professionals))
}

func GetProfessional(c *gin.Context) {
	var professional Models.Professional
	if err := Models.DB.First(&professional, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
		return
	}
	c.JSON(http.StatusOK, professional)
}

func CreateProfessional(c *gin.Context) {
	var input Models.Professional
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = ""
	if input.Status == "" {
		input.Status = Models.ProfessionalActive
	}

	if err := Models.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "Professional",
		input.ID, input.FullName(), c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, input)
}

func UpdateProfessional(c *gin.Context) {
	var professional Models.Professional
	if err := Models.DB.First(&professional, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
		return
	}

	var input Models.Professional
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = professional.ID
	input.CreatedAt = professional.CreatedAt

	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "Professional",
		input.ID, input.FullName(), c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, input)
}

func DeleteProfessional(c *gin.Context) {
	var professional Models.Professional
	if err := Models.DB.First(&professional, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
		return
	}

	if err := Models.DB.Delete(&professional).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "Professional",
		professional.ID, professional.FullName(), c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

// ActiveProfessionals returns a bare array. Admins see the whole roster,
// professionals only themselves.
func ActiveProfessionals(c *gin.Context) {
	query := Models.DB.Model(&Models.Professional{}).Where("status = ?", Models.ProfessionalActive)

	if !isAdmin(c) {
		own := ownProfessionalID(c)
		if own == "" {
			c.JSON(http.StatusOK, []Models.Professional{})
			return
		}
		query = query.Where("id = ?", own)
	}

	var professionals []Models.Professional
	if err := query.Find(&professionals).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func ProfessionalSettlementHistory(c *gin.Context) {
	var professional Models.Professional
	if err := Models.DB.First(&professional, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Professional not found"})
		return
	}

	var settlements []Models.Settlement
	if err := Models.DB.Model(&Models.Settlement{}).
		Where("professional_id = ?", professional.ID).
		Order("period_end desc").
		Find(&settlements).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settlements)
}
