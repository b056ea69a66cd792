package Controllers

import (
	"net/http"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func FetchDiscounts(c *gin.Context) {
	query := Models.DB.Model(&Models.Discount{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if discountType := c.Query("discount_type"); discountType != "" {
		query = query.Where("discount_type = ?", discountType)
	}
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
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

	var discounts []Models.Discount
	if err := query.Order("name").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, discounts))
}

func GetDiscount(c *gin.Context) {
	var discount Models.Discount
	if err := Models.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}
	c.JSON(http.StatusOK, discount)
}

func CreateDiscount(c *gin.Context) {
	var input Models.Discount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = ""

	if input.DiscountType != Models.DiscountTypePercentage && input.DiscountType != Models.DiscountTypeFixed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount_type must be percentage or fixed"})
		return
	}
	if input.Category != Models.CategoryDiscount && input.Category != Models.CategoryRetention && input.Category != Models.CategoryDeduction {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be discount, retention or deduction"})
		return
	}
	if input.DiscountType == Models.DiscountTypePercentage && (input.Value < 0 || input.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percentage value must be between 0 and 100"})
		return
	}

	if err := Models.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "Discount",
		input.ID, input.Name, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, input)
}

func UpdateDiscount(c *gin.Context) {
	var discount Models.Discount
	if err := Models.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	var input Models.Discount
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

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "Discount",
		input.ID, input.Name, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, input)
}

func DeleteDiscount(c *gin.Context) {
	var discount Models.Discount
	if err := Models.DB.First(&discount, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	if err := Models.DB.Delete(&discount).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "Discount",
		discount.ID, discount.Name, c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

func ActiveDiscounts(c *gin.Context) {
	var discounts []Models.Discount
	if err := Models.DB.Model(&Models.Discount{}).Where("is_active = ?", true).Order("name").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, discounts)
}

func DiscountsByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	var discounts []Models.Discount
	if err := Models.DB.Model(&Models.Discount{}).Where("category = ?", category).Order("name").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, discounts)
}
