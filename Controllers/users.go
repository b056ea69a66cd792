package Controllers

import (
	"net/http"
	"strconv"

	"OdontAll/Middleware"
	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func FetchUsers(c *gin.Context) {
	query := Models.DB.Model(&Models.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like, like)
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

	var users []Models.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results := make([]gin.H, 0, len(users))
	for _, user := range users {
		results = append(results, userPayload(user))
	}

	c.JSON(http.StatusOK, listEnvelope(c, count, results))
}

func GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := Models.GetUserByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, userPayload(user))
}

type CreateUserInput struct {
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

func CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Role == "" {
		input.Role = Models.RoleProfessional
	}
	if input.Role != Models.RoleAdmin && input.Role != Models.RoleProfessional && input.Role != Models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user := Models.User{
		Username:  input.Username,
		Password:  input.Password,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		IsActive:  true,
	}

	// Professionals get a roster entry alongside the account.
	if input.Role == Models.RoleProfessional {
		professional := Models.Professional{
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Specialization: input.Specialization,
			Phone:          input.Phone,
			Status:         Models.ProfessionalActive,
		}
		if err := Models.DB.Create(&professional).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		user.ProfessionalID = &professional.ID
	}

	if _, err := user.SaveUser(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if user.ProfessionalID != nil {
		Models.DB.Model(&Models.Professional{}).
			Where("id = ?", *user.ProfessionalID).
			Update("user_id", user.ID)
	}

	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditCreate, "User",
		strconv.FormatUint(uint64(user.ID), 10), user.Username, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, userPayload(user))
}

type UpdateUserInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := Models.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Middleware.InvalidateUserCache(user.ID)
	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "User",
		strconv.FormatUint(uint64(user.ID), 10), user.Username, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, userPayload(user))
}

func DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := Models.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Middleware.InvalidateUserCache(user.ID)
	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditDelete, "User",
		strconv.FormatUint(uint64(user.ID), 10), user.Username, c.ClientIP(), c.Request.UserAgent())

	c.Status(http.StatusNoContent)
}

func ToggleUserActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.IsActive = !user.IsActive
	if err := Models.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Middleware.InvalidateUserCache(user.ID)
	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditStatusChange, "User",
		strconv.FormatUint(uint64(user.ID), 10), user.Username, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"is_active": user.IsActive,
	})
}

func ChangeUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role != Models.RoleAdmin && input.Role != Models.RoleProfessional && input.Role != Models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Role = input.Role
	if err := Models.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Middleware.InvalidateUserCache(user.ID)
	Models.LogAudit(Models.DB, currentUserID(c), Models.AuditUpdate, "User",
		strconv.FormatUint(uint64(user.ID), 10), "role changed to "+input.Role, c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func SetUserPassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must have at least 6 characters"})
		return
	}

	var user Models.User
	if err := Models.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = input.Password
	if err := user.BeforeSave(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Model(&Models.User{}).Where("id = ?", user.ID).Update("password", user.Password).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"message":  "Password updated successfully",
	})
}
