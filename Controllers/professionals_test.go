package Controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func professionalRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	group.Use(fakeAuth(1, role, ""))
	group.GET("/professionals/", FetchProfessionals)
	group.GET("/professionals/:id/", GetProfessional)
	group.POST("/professionals/", CreateProfessional)
	return router
}

func TestProfessionalCreateThenGetRoundTrip(t *testing.T) {
	setupControllerDB(t)
	router := professionalRouter("admin")

	license := "MAT-4471"
	resp := postJSON(t, router, "/api/professionals/", gin.H{
		"first_name":                    "Ana",
		"last_name":                     "Suarez",
		"license_number":                license,
		"specialization":                "Orthodontics",
		"default_commission_percentage": 35,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: want 201 got %d body=%s", resp.Code, resp.Body.String())
	}
	var created Models.Professional
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("create did not assign an id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/professionals/"+created.ID+"/", nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)
	if getResp.Code != http.StatusOK {
		t.Fatalf("get: want 200 got %d", getResp.Code)
	}
	var fetched Models.Professional
	if err := json.Unmarshal(getResp.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode fetched: %v", err)
	}

	if fetched.FirstName != "Ana" || fetched.LastName != "Suarez" {
		t.Fatalf("round trip lost name: %+v", fetched)
	}
	if fetched.LicenseNumber == nil || *fetched.LicenseNumber != license {
		t.Fatalf("round trip lost license: %+v", fetched.LicenseNumber)
	}
	if fetched.DefaultCommissionPercentage != 35 {
		t.Fatalf("round trip lost commission: %v", fetched.DefaultCommissionPercentage)
	}
	if fetched.Status != Models.ProfessionalActive {
		t.Fatalf("default status not applied: %s", fetched.Status)
	}
}

func TestFetchProfessionalsEnvelope(t *testing.T) {
	setupControllerDB(t)
	router := professionalRouter("admin")

	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		professional := Models.Professional{FirstName: name, LastName: "Test", Status: Models.ProfessionalActive}
		if err := Models.DB.Create(&professional).Error; err != nil {
			t.Fatalf("create professional: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/professionals/?page=1&page_size=2", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: want 200 got %d", resp.Code)
	}

	var envelope struct {
		Count   int64                 `json:"count"`
		Results []Models.Professional `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Count != 3 {
		t.Fatalf("count must reflect the full set: got %d", envelope.Count)
	}
	if len(envelope.Results) != 2 {
		t.Fatalf("page_size not applied: got %d results", len(envelope.Results))
	}
}
