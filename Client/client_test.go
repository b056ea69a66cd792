package Client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func loginHandler(username, password string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != username || creds["password"] != password {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access":  "token-123",
			"refresh": "refresh-456",
			"user": map[string]interface{}{
				"id":       1,
				"username": username,
				"role":     "admin",
			},
		})
	}
}

func TestLoginSuccessSetsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	server := httptest.NewServer(mux)
	defer server.Close()

	store := &MemoryStore{}
	client := New(server.URL, store)

	session, err := client.Login("admin", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.AccessToken != "token-123" || session.User.Username != "admin" {
		t.Fatalf("session not populated: %+v", session)
	}
	if client.Session() == nil {
		t.Fatalf("client session not set")
	}

	persisted, err := store.Load()
	if err != nil || persisted == nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if persisted.AccessToken != "token-123" {
		t.Fatalf("persisted token wrong: %s", persisted.AccessToken)
	}
}

func TestLoginFailureLeavesClientLoggedOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, &MemoryStore{})
	_, err := client.Login("admin", "wrong")
	if err == nil {
		t.Fatalf("expected login failure")
	}
	if !IsValidation(err) {
		var apiErr *APIError
		if ok := asAPIError(err, &apiErr); !ok || apiErr.StatusCode != 401 {
			t.Fatalf("expected APIError, got %v", err)
		}
	}
	if client.Session() != nil {
		t.Fatalf("failed login must not set a session")
	}
}

func asAPIError(err error, target **APIError) bool {
	apiErr, ok := err.(*APIError)
	if ok {
		*target = apiErr
	}
	return ok
}

func TestLogoutClearsStore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	server := httptest.NewServer(mux)
	defer server.Close()

	store := &MemoryStore{}
	client := New(server.URL, store)
	if _, err := client.Login("admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := client.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if client.Session() != nil {
		t.Fatalf("session survived logout")
	}
	if persisted, _ := store.Load(); persisted != nil {
		t.Fatalf("persisted session survived logout")
	}
}

func TestRestoreFailSafe(t *testing.T) {
	dir := t.TempDir()
	store := &FileStore{Path: filepath.Join(dir, "session.json")}

	// no file at all
	client := New("http://unused", store)
	session, err := client.Restore()
	if err != nil || session != nil {
		t.Fatalf("missing file: want nil/nil got %v/%v", session, err)
	}

	// corrupt file
	if err := os.WriteFile(store.Path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	session, err = client.Restore()
	if err != nil || session != nil {
		t.Fatalf("corrupt file: want nil/nil got %v/%v", session, err)
	}

	// valid file round trip
	saved := &Session{AccessToken: "tok", User: &UserInfo{ID: 7, Username: "ana"}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	session, err = client.Restore()
	if err != nil || session == nil {
		t.Fatalf("restore: %v", err)
	}
	if session.AccessToken != "tok" || session.User.Username != "ana" {
		t.Fatalf("restored session wrong: %+v", session)
	}
}

func TestUnauthorizedClearsSessionOnce(t *testing.T) {
	var invalidations int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	mux.HandleFunc("/api/services/active_services/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := &MemoryStore{}
	client := New(server.URL, store)
	client.OnSessionInvalidated = func() { invalidations++ }
	if _, err := client.Login("admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := client.ActiveServices(); err != ErrSessionExpired {
		t.Fatalf("want ErrSessionExpired got %v", err)
	}
	if client.Session() != nil {
		t.Fatalf("session survived 401")
	}
	if persisted, _ := store.Load(); persisted != nil {
		t.Fatalf("persisted session survived 401")
	}

	// a second call is rejected locally without re-firing the callback
	if _, err := client.ActiveServices(); err != ErrNotAuthenticated {
		t.Fatalf("want ErrNotAuthenticated got %v", err)
	}
	if invalidations != 1 {
		t.Fatalf("callback fired %d times, want 1", invalidations)
	}
}

func TestListNormalization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	mux.HandleFunc("/api/services/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"results": []map[string]interface{}{
				{"id": "a", "name": "Cleaning", "code": "CLN"},
				{"id": "b", "name": "Extraction", "code": "EXT"},
			},
		})
	})
	mux.HandleFunc("/api/services/active_services/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "a", "name": "Cleaning", "code": "CLN"},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil)
	if _, err := client.Login("admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	services, count, err := client.ListServices(ServiceFilter{})
	if err != nil {
		t.Fatalf("enveloped list: %v", err)
	}
	if count != 2 || len(services) != 2 || services[1].Code != "EXT" {
		t.Fatalf("envelope decode wrong: count=%d len=%d", count, len(services))
	}

	active, err := client.ActiveServices()
	if err != nil {
		t.Fatalf("bare list: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Cleaning" {
		t.Fatalf("bare array decode wrong: %+v", active)
	}
}

func TestGetRequestsCarryCacheBuster(t *testing.T) {
	var sawBuster bool
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	mux.HandleFunc("/api/discounts/active_discounts/", func(w http.ResponseWriter, r *http.Request) {
		sawBuster = r.URL.Query().Get("_t") != ""
		json.NewEncoder(w).Encode([]Discount{})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil)
	if _, err := client.Login("admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := client.ActiveDiscounts(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !sawBuster {
		t.Fatalf("GET went out without the _t cache buster")
	}
}

func TestServerAmountsPassThroughUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	mux.HandleFunc("/api/settlements/s1/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":               "s1",
			"total_commission": 90000.0,
			"total_discounts":  10000.0,
			"net_amount":       80000.0,
			"status":           "calculated",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil)
	if _, err := client.Login("admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	settlement, err := client.GetSettlement("s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settlement.TotalCommission != 90000 || settlement.TotalDiscounts != 10000 || settlement.NetAmount != 80000 {
		t.Fatalf("amounts altered in transit: %+v", settlement)
	}
}

func TestMarkAsPaidRejectsEmptyReferenceLocally(t *testing.T) {
	var requests int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", loginHandler("admin", "secret"))
	mux.HandleFunc("/api/settlements/", func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, nil)
	if _, err := client.Login("admin", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err := client.MarkSettlementAsPaid("s1", "   ")
	if err == nil || !IsValidation(err) {
		t.Fatalf("want local validation error, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("empty reference reached the network (%d requests)", requests)
	}
}
