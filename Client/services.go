package Client

import (
	"net/url"
	"strconv"
	"time"
)

type Service struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	BasePrice            float64   `json:"base_price"`
	CommissionPercentage float64   `json:"commission_percentage"`
	Code                 string    `json:"code"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type ServiceFilter struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
}

func (f ServiceFilter) values() url.Values {
	query := url.Values{}
	setIfPresent(query, "search", f.Search)
	if f.Active != nil {
		query.Set("is_active", strconv.FormatBool(*f.Active))
	}
	setPage(query, f.Page, f.PageSize)
	return query
}

func (c *Client) ListServices(filter ServiceFilter) ([]Service, int64, error) {
	data, err := c.get("/api/services/", filter.values())
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Service](data)
}

func (c *Client) GetService(id string) (*Service, error) {
	data, err := c.get("/api/services/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Service](data)
}

func (c *Client) ActiveServices() ([]Service, error) {
	data, err := c.get("/api/services/active_services/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Service](data)
	return items, err
}

type ServiceInput struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	BasePrice            *float64 `json:"base_price,omitempty"`
	CommissionPercentage *float64 `json:"commission_percentage,omitempty"`
	Code                 string   `json:"code"`
	IsActive             *bool    `json:"is_active,omitempty"`
}

func (c *Client) CreateService(input ServiceInput) (*Service, error) {
	data, err := c.post("/api/services/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Service](data)
}

func (c *Client) UpdateService(id string, input ServiceInput) (*Service, error) {
	data, err := c.put("/api/services/"+id+"/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Service](data)
}

func (c *Client) DeleteService(id string) error {
	return c.delete("/api/services/" + id + "/")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
