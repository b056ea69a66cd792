package Client

import "net/url"

// WhoAmI fetches the identity behind the current token and refreshes the
// cached session user.
func (c *Client) WhoAmI() (*UserInfo, error) {
	data, err := c.get("/api/auth/me/", nil)
	if err != nil {
		return nil, err
	}
	user, err := decodeOne[UserInfo](data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.session != nil {
		c.session.User = user
	}
	session := c.session
	c.mu.Unlock()
	if session != nil {
		c.store.Save(session)
	}
	return user, nil
}

type UserFilter struct {
	Role     string
	Search   string
	Page     int
	PageSize int
}

func (f UserFilter) values() url.Values {
	query := url.Values{}
	setIfPresent(query, "role", f.Role)
	setIfPresent(query, "search", f.Search)
	setPage(query, f.Page, f.PageSize)
	return query
}

func (c *Client) ListUsers(filter UserFilter) ([]UserInfo, int64, error) {
	data, err := c.get("/api/users/", filter.values())
	if err != nil {
		return nil, 0, err
	}
	return decodeList[UserInfo](data)
}

func (c *Client) GetUser(id string) (*UserInfo, error) {
	data, err := c.get("/api/users/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[UserInfo](data)
}

type UserInput struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

func (c *Client) CreateUser(input UserInput) (*UserInfo, error) {
	data, err := c.post("/api/users/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[UserInfo](data)
}

func (c *Client) UpdateUser(id string, input UserInput) (*UserInfo, error) {
	data, err := c.put("/api/users/"+id+"/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[UserInfo](data)
}

func (c *Client) DeleteUser(id string) error {
	return c.delete("/api/users/" + id + "/")
}

func (c *Client) ToggleUserActive(id string) error {
	_, err := c.post("/api/users/"+id+"/toggle_active/", nil)
	return err
}

func (c *Client) ChangeUserRole(id, role string) error {
	_, err := c.post("/api/users/"+id+"/change_role/", map[string]string{"role": role})
	return err
}

func (c *Client) SetUserPassword(id, password string) error {
	_, err := c.post("/api/users/"+id+"/set_password/", map[string]string{"password": password})
	return err
}
