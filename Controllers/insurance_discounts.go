package Controllers

import (
	"net/http"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func FetchInsuranceDiscounts(c *gin.Context) {
	query := Models.DB.Model(&Models.InsuranceDiscount{})

	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("insurance_name LIKE ?", "%"+search+"%")
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

	var discounts []Models.InsuranceDiscount
	if err := query.Order("insurance_name").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, discounts))
}

func GetInsuranceDiscount(c *gin.Context) {
	var discount Models.InsuranceDiscount
	if err := Models.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insurance discount not found"})
		return
	}
	c.JSON(http.StatusOK, discount)
}

func CreateInsuranceDiscount(c *gin.Context) {
	var input Models.InsuranceDiscount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = ""
	if input.DiscountType == "" {
		input.DiscountType = Models.DiscountTypePercentage
	}

	if err := Models.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "InsuranceDiscount",
		input.ID, input.InsuranceName, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, input)
}

func UpdateInsuranceDiscount(c *gin.Context) {
	var discount Models.InsuranceDiscount
	if err := Models.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insurance discount not found"})
		return
	}

	var input Models.InsuranceDiscount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = discount.ID
	input.CreatedAt = discount.CreatedAt

	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "InsuranceDiscount",
		input.ID, input.InsuranceName, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, input)
}

func DeleteInsuranceDiscount(c *gin.Context) {
	var discount Models.InsuranceDiscount
	if err := Models.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insurance discount not found"})
		return
	}

	if err := Models.DB.Delete(&discount).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "InsuranceDiscount",
		discount.ID, discount.InsuranceName, c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

func ActiveInsuranceDiscounts(c *gin.Context) {
	var discounts []Models.InsuranceDiscount
	if err := Models.DB.Model(&Models.InsuranceDiscount{}).Where("is_active = ?", true).Order("insurance_name").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, discounts)
}
