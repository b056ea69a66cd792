package Client

import (
	"net/url"
	"time"
)

type Professional struct {
	ID                          string    `json:"id"`
	UserID                      *uint     `json:"user_id"`
	FirstName                   string    `json:"first_name"`
	LastName                    string    `json:"last_name"`
	LicenseNumber               *string   `json:"license_number"`
	Specialization              string    `json:"specialization"`
	Phone                       string    `json:"phone"`
	Address                     string    `json:"address"`
	Status                      string    `json:"status"`
	DefaultCommissionPercentage float64   `json:"default_commission_percentage"`
	BankAccount                 string    `json:"bank_account"`
	BankName                    string    `json:"bank_name"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

func (p *Professional) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ProfessionalFilter narrows ListProfessionals. Zero values mean no filter.
type ProfessionalFilter struct {
	Status         string
	Specialization string
	Search         string
	Page           int
	PageSize       int
}

func (f ProfessionalFilter) values() url.Values {
	query := url.Values{}
	setIfPresent(query, "status", f.Status)
	setIfPresent(query, "specialization", f.Specialization)
	setIfPresent(query, "search", f.Search)
	setPage(query, f.Page, f.PageSize)
	return query
}

func (c *Client) ListProfessionals(filter ProfessionalFilter) ([]Professional, int64, error) {
	data, err := c.get("/api/professionals/", filter.values())
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Professional](data)
}

func (c *Client) GetProfessional(id string) (*Professional, error) {
	data, err := c.get("/api/professionals/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Professional](data)
}

// ActiveProfessionals returns the roster usable in pickers. Professionals see
// only themselves; the server decides.
func (c *Client) ActiveProfessionals() ([]Professional, error) {
	data, err := c.get("/api/professionals/active_professionals/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Professional](data)
	return items, err
}

type ProfessionalInput struct {
	FirstName                   string   `json:"first_name"`
	LastName                    string   `json:"last_name"`
	LicenseNumber               *string  `json:"license_number,omitempty"`
	Specialization              string   `json:"specialization,omitempty"`
	Phone                       string   `json:"phone,omitempty"`
	Address                     string   `json:"address,omitempty"`
	Status                      string   `json:"status,omitempty"`
	DefaultCommissionPercentage *float64 `json:"default_commission_percentage,omitempty"`
	BankAccount                 string   `json:"bank_account,omitempty"`
	BankName                    string   `json:"bank_name,omitempty"`
}

func (c *Client) CreateProfessional(input ProfessionalInput) (*Professional, error) {
	data, err := c.post("/api/professionals/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Professional](data)
}

func (c *Client) UpdateProfessional(id string, input ProfessionalInput) (*Professional, error) {
	data, err := c.put("/api/professionals/"+id+"/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Professional](data)
}

func (c *Client) DeleteProfessional(id string) error {
	return c.delete("/api/professionals/" + id + "/")
}

func (c *Client) ProfessionalSettlementHistory(id string) ([]Settlement, error) {
	data, err := c.get("/api/professionals/"+id+"/settlement_history/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Settlement](data)
	return items, err
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

func setPage(query url.Values, page, pageSize int) {
	if page > 0 {
		query.Set("page", itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", itoa(pageSize))
	}
}
