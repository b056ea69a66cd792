package Routes

import (
	"OdontAll/Controllers"
	"OdontAll/Middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/auth/login/", Controllers.Login)
		public.POST("/auth/refresh/", Controllers.RefreshToken)
	}

	// Authorized routes
	authorized := router.Group("/api")
	authorized.Use(Middleware.JwtAuthMiddleware())
	{
		authorized.GET("/auth/me/", Controllers.CurrentUser)

		// Professional roster
		authorized.GET("/professionals/", Controllers.FetchProfessionals)
		authorized.GET("/professionals/active_professionals/", Controllers.ActiveProfessionals)
		authorized.GET("/professionals/:id/", Controllers.GetProfessional)
		authorized.GET("/professionals/:id/settlement_history/", Controllers.ProfessionalSettlementHistory)
		authorized.POST("/professionals/", Controllers.CreateProfessional)
		authorized.PUT("/professionals/:id/", Controllers.UpdateProfessional)
		authorized.DELETE("/professionals/:id/", Controllers.DeleteProfessional)

		// Service catalog
		authorized.GET("/services/", Controllers.FetchServices)
		authorized.GET("/services/active_services/", Controllers.ActiveServices)
		authorized.GET("/services/:id/", Controllers.GetService)
		authorized.POST("/services/", Controllers.CreateService)
		authorized.PUT("/services/:id/", Controllers.UpdateService)
		authorized.DELETE("/services/:id/", Controllers.DeleteService)

		// Attention log
		authorized.GET("/attentions/", Controllers.FetchAttentions)
		authorized.GET("/attentions/professional_attentions/", Controllers.ProfessionalAttentions)
		authorized.GET("/attentions/date_range/", Controllers.AttentionsByDateRange)
		authorized.GET("/attentions/:id/", Controllers.GetAttention)
		authorized.POST("/attentions/", Controllers.CreateAttention)
		authorized.PUT("/attentions/:id/", Controllers.UpdateAttention)
		authorized.DELETE("/attentions/:id/", Controllers.DeleteAttention)

		// Discounts and retentions
		authorized.GET("/discounts/", Controllers.FetchDiscounts)
		authorized.GET("/discounts/active_discounts/", Controllers.ActiveDiscounts)
		authorized.GET("/discounts/by_category/", Controllers.DiscountsByCategory)
		authorized.GET("/discounts/:id/", Controllers.GetDiscount)
		authorized.POST("/discounts/", Controllers.CreateDiscount)
		authorized.PUT("/discounts/:id/", Controllers.UpdateDiscount)
		authorized.DELETE("/discounts/:id/", Controllers.DeleteDiscount)

		// Settlements
		authorized.GET("/settlements/", Controllers.FetchSettlements)
		authorized.GET("/settlements/report/", Controllers.SettlementReport)
		authorized.GET("/settlements/export_excel/", Controllers.ExportSettlementsExcel)
		authorized.GET("/settlements/:id/", Controllers.GetSettlement)
		authorized.GET("/settlements/:id/export_pdf/", Controllers.ExportSettlementPDF)
		authorized.POST("/settlements/", Controllers.CreateSettlement)
		authorized.PUT("/settlements/:id/", Controllers.UpdateSettlement)
		authorized.DELETE("/settlements/:id/", Controllers.DeleteSettlement)
		authorized.POST("/settlements/:id/calculate/", Controllers.CalculateSettlement)
		authorized.POST("/settlements/:id/approve/", Controllers.ApproveSettlement)
		authorized.POST("/settlements/:id/mark_as_paid/", Controllers.MarkSettlementAsPaid)
		authorized.POST("/settlements/:id/cancel/", Controllers.CancelSettlement)
		authorized.POST("/settlements/generate_for_period/", Controllers.GenerateSettlementsForPeriod)
	}

	// Admin-only routes
	admin := router.Group("/api")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.RequireAdmin())
	{
		// User management
		admin.GET("/users/", Controllers.FetchUsers)
		admin.GET("/users/:id/", Controllers.GetUser)
		admin.POST("/users/", Controllers.CreateUser)
		admin.PUT("/users/:id/", Controllers.UpdateUser)
		admin.DELETE("/users/:id/", Controllers.DeleteUser)
		admin.POST("/users/:id/toggle_active/", Controllers.ToggleUserActive)
		admin.POST("/users/:id/change_role/", Controllers.ChangeUserRole)
		admin.POST("/users/:id/set_password/", Controllers.SetUserPassword)

		// Insurance discount table
		admin.GET("/insurance-discounts/", Controllers.FetchInsuranceDiscounts)
		admin.GET("/insurance-discounts/active_discounts/", Controllers.ActiveInsuranceDiscounts)
		admin.GET("/insurance-discounts/:id/", Controllers.GetInsuranceDiscount)
		admin.POST("/insurance-discounts/", Controllers.CreateInsuranceDiscount)
		admin.PUT("/insurance-discounts/:id/", Controllers.UpdateInsuranceDiscount)
		admin.DELETE("/insurance-discounts/:id/", Controllers.DeleteInsuranceDiscount)

		// Audit trail
		admin.GET("/audit-logs/", Controllers.FetchAuditLogs)
		admin.GET("/audit-logs/summary/", Controllers.AuditSummary)
	}
}
