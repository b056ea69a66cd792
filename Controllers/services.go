package Controllers

import (
	"net/http"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func FetchServices(c *gin.Context) {
	query := Models.DB.Model(&Models.Service{})

	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
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

	var services []Models.Service
	if err := query.Order("name").Find(&services).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, services))
}

func GetService(c *gin.Context) {
	var service Models.Service
	if err := Models.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, service)
}

func CreateService(c *gin.Context) {
	var input Models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = ""

	if err := Models.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "Service",
		input.ID, input.Name, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, input)
}

func UpdateService(c *gin.Context) {
	var service Models.Service
	if err := Models.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var input Models.Service
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.ID = service.ID
	input.CreatedAt = service.CreatedAt

	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "Service",
		input.ID, input.Name, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, input)
}

func DeleteService(c *gin.Context) {
	var service Models.Service
	if err := Models.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	if err := Models.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "Service",
		service.ID, service.Name, c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

func ActiveServices(c *gin.Context) {
	var services []Models.Service
	if err := Models.DB.Model(&Models.Service{}).Where("is_active = ?", true).Order("name").Find(&services).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}
