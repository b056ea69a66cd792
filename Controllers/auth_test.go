package Controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"OdontAll/Models"

	"github.com/gin-gonic/gin"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/auth/login/", Login)
	router.POST("/api/auth/refresh/", RefreshToken)
	return router
}

func seedUser(t *testing.T, username, password string, active bool) Models.User {
	user := Models.User{
		Username: username,
		Password: password,
		Role:     Models.RoleAdmin,
		IsActive: active,
	}
	// SaveUser runs the bcrypt hook
	saved, err := user.SaveUser()
	if err != nil {
		t.Fatalf("save user: %v", err)
	}
	return *saved
}

func TestLoginIssuesTokens(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")
	setupControllerDB(t)
	seedUser(t, "admin", "s3cretpass", true)
	router := authRouter()

	resp := postJSON(t, router, "/api/auth/login/", gin.H{"username": "admin", "password": "s3cretpass"})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: want 200 got %d body=%s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Access == "" || payload.Refresh == "" {
		t.Fatalf("tokens missing: %+v", payload)
	}
	if payload.User.Username != "admin" || payload.User.Role != Models.RoleAdmin {
		t.Fatalf("user payload wrong: %+v", payload.User)
	}

	// the refresh token mints a fresh access token
	resp = postJSON(t, router, "/api/auth/refresh/", gin.H{"refresh": payload.Refresh})
	if resp.Code != http.StatusOK {
		t.Fatalf("refresh: want 200 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	setupControllerDB(t)
	seedUser(t, "admin", "s3cretpass", true)
	router := authRouter()

	wrongPassword := postJSON(t, router, "/api/auth/login/", gin.H{"username": "admin", "password": "nope"})
	unknownUser := postJSON(t, router, "/api/auth/login/", gin.H{"username": "ghost", "password": "nope"})

	if wrongPassword.Code != http.StatusUnauthorized || unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("want 401/401 got %d/%d", wrongPassword.Code, unknownUser.Code)
	}
	// identical bodies so a caller cannot probe for usernames
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Fatalf("credential errors differ: %s vs %s", wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	setupControllerDB(t)
	seedUser(t, "former", "s3cretpass", false)
	router := authRouter()

	resp := postJSON(t, router, "/api/auth/login/", gin.H{"username": "former", "password": "s3cretpass"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("disabled account: want 403 got %d", resp.Code)
	}
}
