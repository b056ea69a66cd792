package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupControllerDB(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	Models.Migrate(db)
	Models.DB = db
}

// fakeAuth stands in for the JWT middleware so handlers see an identity.
func fakeAuth(userID uint, role, professionalID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Set("professionalID", professionalID)
		c.Next()
	}
}

func settlementRouter(userID uint, role, professionalID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	group.Use(fakeAuth(userID, role, professionalID))
	group.GET("/settlements/", FetchSettlements)
	group.GET("/settlements/:id/", GetSettlement)
	group.POST("/settlements/", CreateSettlement)
	group.POST("/settlements/:id/calculate/", CalculateSettlement)
	group.POST("/settlements/:id/approve/", ApproveSettlement)
	group.POST("/settlements/:id/mark_as_paid/", MarkSettlementAsPaid)
	group.POST("/settlements/:id/cancel/", CancelSettlement)
	return router
}

func seedControllerFixtures(t *testing.T) (Models.Professional, Models.Service) {
	professional := Models.Professional{
		FirstName:                   "Ana",
		LastName:                    "Suarez",
		Status:                      Models.ProfessionalActive,
		DefaultCommissionPercentage: 30,
	}
	if err := Models.DB.Create(&professional).Error; err != nil {
		t.Fatalf("create professional: %v", err)
	}
	service := Models.Service{Name: "Cleaning", Code: "CLN", IsActive: true}
	if err := Models.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return professional, service
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSettlementLifecycleOverHTTP(t *testing.T) {
	setupControllerDB(t)
	professional, service := seedControllerFixtures(t)
	router := settlementRouter(1, "admin", "")

	attention := Models.Attention{
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
		PatientName:    "Carlos Perez",
		Date:           "2026-01-15",
		AmountCharged:  100000,
		Status:         Models.AttentionCompleted,
	}
	if err := Models.DB.Create(&attention).Error; err != nil {
		t.Fatalf("create attention: %v", err)
	}

	resp := postJSON(t, router, "/api/settlements/", gin.H{
		"professional_id": professional.ID,
		"period_start":    "2026-01-01",
		"period_end":      "2026-01-31",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: want 201 got %d body=%s", resp.Code, resp.Body.String())
	}
	var created Models.Settlement
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Status != Models.SettlementDraft {
		t.Fatalf("new settlement not draft: %s", created.Status)
	}

	// approving a draft must fail before calculation
	resp = postJSON(t, router, "/api/settlements/"+created.ID+"/approve/", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("approve draft: want 400 got %d", resp.Code)
	}

	resp = postJSON(t, router, "/api/settlements/"+created.ID+"/calculate/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("calculate: want 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var calculated Models.Settlement
	if err := json.Unmarshal(resp.Body.Bytes(), &calculated); err != nil {
		t.Fatalf("decode calculated: %v", err)
	}
	if calculated.TotalCommission != 30000 || calculated.NetAmount != 30000 {
		t.Fatalf("calculated totals wrong: commission=%v net=%v", calculated.TotalCommission, calculated.NetAmount)
	}

	resp = postJSON(t, router, "/api/settlements/"+created.ID+"/approve/", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("approve: want 200 got %d", resp.Code)
	}

	// empty payment reference is rejected
	resp = postJSON(t, router, "/api/settlements/"+created.ID+"/mark_as_paid/", gin.H{"payment_reference": "  "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("pay with blank reference: want 400 got %d", resp.Code)
	}

	resp = postJSON(t, router, "/api/settlements/"+created.ID+"/mark_as_paid/", gin.H{"payment_reference": "TRF-2041"})
	if resp.Code != http.StatusOK {
		t.Fatalf("pay: want 200 got %d body=%s", resp.Code, resp.Body.String())
	}
	var paid Models.Settlement
	if err := json.Unmarshal(resp.Body.Bytes(), &paid); err != nil {
		t.Fatalf("decode paid: %v", err)
	}
	if paid.Status != Models.SettlementPaid || paid.PaymentDate == nil {
		t.Fatalf("payment not recorded: status=%s date=%v", paid.Status, paid.PaymentDate)
	}

	// paid settlements cannot be cancelled
	resp = postJSON(t, router, "/api/settlements/"+created.ID+"/cancel/", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("cancel paid: want 400 got %d", resp.Code)
	}
}

func TestDuplicateSettlementRejected(t *testing.T) {
	setupControllerDB(t)
	professional, _ := seedControllerFixtures(t)
	router := settlementRouter(1, "admin", "")

	payload := gin.H{
		"professional_id": professional.ID,
		"period_start":    "2026-02-01",
		"period_end":      "2026-02-28",
	}
	if resp := postJSON(t, router, "/api/settlements/", payload); resp.Code != http.StatusCreated {
		t.Fatalf("first create: want 201 got %d", resp.Code)
	}
	if resp := postJSON(t, router, "/api/settlements/", payload); resp.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create: want 400 got %d", resp.Code)
	}
}

func TestSettlementScopeHidesOthers(t *testing.T) {
	setupControllerDB(t)
	professional, _ := seedControllerFixtures(t)
	other := Models.Professional{
		FirstName: "Bruno",
		LastName:  "Diaz",
		Status:    Models.ProfessionalActive,
	}
	if err := Models.DB.Create(&other).Error; err != nil {
		t.Fatalf("create other professional: %v", err)
	}

	for _, id := range []string{professional.ID, other.ID} {
		settlement := Models.Settlement{
			ProfessionalID: id,
			PeriodStart:    "2026-03-01",
			PeriodEnd:      "2026-03-31",
			Status:         Models.SettlementDraft,
		}
		if err := Models.DB.Create(&settlement).Error; err != nil {
			t.Fatalf("create settlement: %v", err)
		}
	}

	router := settlementRouter(2, "professional", professional.ID)
	req := httptest.NewRequest(http.MethodGet, "/api/settlements/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: want 200 got %d", resp.Code)
	}

	var envelope struct {
		Count   int64               `json:"count"`
		Results []Models.Settlement `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Count != 1 || len(envelope.Results) != 1 {
		t.Fatalf("professional must only see own settlements: count=%d len=%d", envelope.Count, len(envelope.Results))
	}
	if envelope.Results[0].ProfessionalID != professional.ID {
		t.Fatalf("scoped list returned foreign settlement")
	}

	// direct fetch of a foreign settlement is a 404, not a 403
	var foreign Models.Settlement
	if err := Models.DB.First(&foreign, "professional_id = ?", other.ID).Error; err != nil {
		t.Fatalf("load foreign settlement: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/settlements/"+foreign.ID+"/", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("foreign settlement fetch: want 404 got %d", resp.Code)
	}
}
