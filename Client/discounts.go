package Client

import (
	"net/url"
	"time"
)

type Discount struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DiscountType string    `json:"discount_type"`
	Category     string    `json:"category"`
	Value        float64   `json:"value"`
	IsActive     bool      `json:"is_active"`
	IsMandatory  bool      `json:"is_mandatory"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DiscountFilter struct {
	Category string
	Page     int
	PageSize int
}

func (f DiscountFilter) values() url.Values {
	query := url.Values{}
	setIfPresent(query, "category", f.Category)
	setPage(query, f.Page, f.PageSize)
	return query
}

func (c *Client) ListDiscounts(filter DiscountFilter) ([]Discount, int64, error) {
	data, err := c.get("/api/discounts/", filter.values())
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Discount](data)
}

func (c *Client) GetDiscount(id string) (*Discount, error) {
	data, err := c.get("/api/discounts/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Discount](data)
}

func (c *Client) ActiveDiscounts() ([]Discount, error) {
	data, err := c.get("/api/discounts/active_discounts/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Discount](data)
	return items, err
}

func (c *Client) DiscountsByCategory(category string) ([]Discount, error) {
	query := url.Values{}
	query.Set("category", category)
	data, err := c.get("/api/discounts/by_category/", query)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Discount](data)
	return items, err
}

type DiscountInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	DiscountType string   `json:"discount_type"`
	Category     string   `json:"category"`
	Value        float64  `json:"value"`
	IsActive     *bool    `json:"is_active,omitempty"`
	IsMandatory  *bool    `json:"is_mandatory,omitempty"`
}

func (c *Client) CreateDiscount(input DiscountInput) (*Discount, error) {
	data, err := c.post("/api/discounts/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Discount](data)
}

func (c *Client) UpdateDiscount(id string, input DiscountInput) (*Discount, error) {
	data, err := c.put("/api/discounts/"+id+"/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Discount](data)
}

func (c *Client) DeleteDiscount(id string) error {
	return c.delete("/api/discounts/" + id + "/")
}

type InsuranceDiscount struct {
	ID            string    `json:"id"`
	InsuranceName string    `json:"insurance_name"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Client) ListInsuranceDiscounts(page, pageSize int) ([]InsuranceDiscount, int64, error) {
	query := url.Values{}
	setPage(query, page, pageSize)
	data, err := c.get("/api/insurance-discounts/", query)
	if err != nil {
		return nil, 0, err
	}
	return decodeList[InsuranceDiscount](data)
}

func (c *Client) GetInsuranceDiscount(id string) (*InsuranceDiscount, error) {
	data, err := c.get("/api/insurance-discounts/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[InsuranceDiscount](data)
}

func (c *Client) ActiveInsuranceDiscounts() ([]InsuranceDiscount, error) {
	data, err := c.get("/api/insurance-discounts/active_discounts/", nil)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[InsuranceDiscount](data)
	return items, err
}

type InsuranceDiscountInput struct {
	InsuranceName string  `json:"insurance_name"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	Description   string  `json:"description,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (c *Client) CreateInsuranceDiscount(input InsuranceDiscountInput) (*InsuranceDiscount, error) {
	data, err := c.post("/api/insurance-discounts/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[InsuranceDiscount](data)
}

func (c *Client) UpdateInsuranceDiscount(id string, input InsuranceDiscountInput) (*InsuranceDiscount, error) {
	data, err := c.put("/api/insurance-discounts/"+id+"/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[InsuranceDiscount](data)
}

func (c *Client) DeleteInsuranceDiscount(id string) error {
	return c.delete("/api/insurance-discounts/" + id + "/")
}
