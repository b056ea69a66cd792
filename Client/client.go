package Client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Client is the typed gateway to an OdontAll server. It owns the session:
// login stores it, a 401 from any call clears it exactly once and fires the
// invalidation callback. Requests are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore

	mu          sync.Mutex
	session     *Session
	invalidated bool

	// OnSessionInvalidated runs once when the server rejects the current
	// token. Set it before making calls.
	OnSessionInvalidated func()
}

func New(baseURL string, store SessionStore) *Client {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

type loginResponse struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    *UserInfo `json:"user"`
}

// Login authenticates and persists the session. On failure the client stays
// logged out and the previous persisted session, if any, is untouched.
func (c *Client) Login(username, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.baseURL+"/api/auth/login/", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	}

	var payload loginResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	session := &Session{
		AccessToken:  payload.Access,
		RefreshToken: payload.Refresh,
		User:         payload.User,
	}

	c.mu.Lock()
	c.session = session
	c.invalidated = false
	c.mu.Unlock()

	if err := c.store.Save(session); err != nil {
		return session, fmt.Errorf("session active but not persisted: %w", err)
	}
	return session, nil
}

// Logout clears the session locally. There is no server-side call to make;
// tokens simply expire.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.session = nil
	c.invalidated = false
	c.mu.Unlock()
	return c.store.Clear()
}

// Restore loads a persisted session, if one exists. It does not validate the
// token against the server; the first authenticated call will do that, and a
// stale token is handled like any other 401.
func (c *Client) Restore() (*Session, error) {
	session, err := c.store.Load()
	if err != nil || session == nil {
		return nil, err
	}
	c.mu.Lock()
	c.session = session
	c.invalidated = false
	c.mu.Unlock()
	return session, nil
}

// invalidateSession clears state on the first 401 and swallows the rest.
func (c *Client) invalidateSession() {
	c.mu.Lock()
	if c.invalidated || c.session == nil {
		c.mu.Unlock()
		return
	}
	c.invalidated = true
	c.session = nil
	callback := c.OnSessionInvalidated
	c.mu.Unlock()

	c.store.Clear()
	if callback != nil {
		callback()
	}
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

// do performs one authenticated request. GETs carry a _t timestamp so
// intermediaries never serve a cached list.
func (c *Client) do(method, path string, query url.Values, body interface{}) ([]byte, error) {
	token := c.token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	endpoint := c.baseURL + path
	if method == http.MethodGet {
		if query == nil {
			query = url.Values{}
		}
		query.Set("_t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession()
		return nil, ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	}
	return data, nil
}

func (c *Client) get(path string, query url.Values) ([]byte, error) {
	return c.do(http.MethodGet, path, query, nil)
}

func (c *Client) post(path string, body interface{}) ([]byte, error) {
	return c.do(http.MethodPost, path, nil, body)
}

func (c *Client) put(path string, body interface{}) ([]byte, error) {
	return c.do(http.MethodPut, path, nil, body)
}

func (c *Client) delete(path string) error {
	_, err := c.do(http.MethodDelete, path, nil, nil)
	return err
}

// serverMessage pulls the error string out of a gin.H{"error": ...} body,
// falling back to the raw body.
func serverMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(data)
}

// decodeList accepts both list shapes the server produces: collection
// endpoints wrap results in {"count": N, "results": [...]}, named actions
// return a bare array.
func decodeList[T any](data []byte) ([]T, int64, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, err
		}
		return items, int64(len(items)), nil
	}

	var envelope struct {
		Count   int64           `json:"count"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, 0, err
	}
	var items []T
	if len(envelope.Results) > 0 {
		if err := json.Unmarshal(envelope.Results, &items); err != nil {
			return nil, 0, err
		}
	}
	return items, envelope.Count, nil
}

func decodeOne[T any](data []byte) (*T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
