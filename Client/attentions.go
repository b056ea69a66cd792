package Client

import (
	"net/url"
	"time"
)

type Attention struct {
	ID                          string        `json:"id"`
	ProfessionalID              string        `json:"professional_id"`
	Professional                *Professional `json:"professional,omitempty"`
	ServiceID                   string        `json:"service_id"`
	Service                     *Service      `json:"service,omitempty"`
	PatientName                 string        `json:"patient_name"`
	PatientID                   string        `json:"patient_id"`
	HealthInsurance             string        `json:"health_insurance"`
	Date                        string        `json:"date"`
	AmountCharged               float64       `json:"amount_charged"`
	InsuranceDiscountPercentage float64       `json:"insurance_discount_percentage"`
	CommissionPercentage        *float64      `json:"commission_percentage"`
	Notes                       string        `json:"notes"`
	Status                      string        `json:"status"`
	CreatedAt                   time.Time     `json:"created_at"`
	UpdatedAt                   time.Time     `json:"updated_at"`
}

type AttentionFilter struct {
	ProfessionalID string
	ServiceID      string
	Status         string
	StartDate      string
	EndDate        string
	Search         string
	Page           int
	PageSize       int
}

func (f AttentionFilter) values() url.Values {
	query := url.Values{}
	setIfPresent(query, "professional_id", f.ProfessionalID)
	setIfPresent(query, "service_id", f.ServiceID)
	setIfPresent(query, "status", f.Status)
	setIfPresent(query, "start_date", f.StartDate)
	setIfPresent(query, "end_date", f.EndDate)
	setIfPresent(query, "search", f.Search)
	setPage(query, f.Page, f.PageSize)
	return query
}

func (c *Client) ListAttentions(filter AttentionFilter) ([]Attention, int64, error) {
	data, err := c.get("/api/attentions/", filter.values())
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Attention](data)
}

func (c *Client) GetAttention(id string) (*Attention, error) {
	data, err := c.get("/api/attentions/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Attention](data)
}

type AttentionInput struct {
	ProfessionalID              string   `json:"professional_id"`
	ServiceID                   string   `json:"service_id"`
	PatientName                 string   `json:"patient_name"`
	PatientID                   string   `json:"patient_id,omitempty"`
	HealthInsurance             string   `json:"health_insurance,omitempty"`
	Date                        string   `json:"date"`
	AmountCharged               float64  `json:"amount_charged"`
	InsuranceDiscountPercentage float64  `json:"insurance_discount_percentage,omitempty"`
	CommissionPercentage        *float64 `json:"commission_percentage,omitempty"`
	Notes                       string   `json:"notes,omitempty"`
	Status                      string   `json:"status,omitempty"`
}

func (c *Client) CreateAttention(input AttentionInput) (*Attention, error) {
	data, err := c.post("/api/attentions/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Attention](data)
}

func (c *Client) UpdateAttention(id string, input AttentionInput) (*Attention, error) {
	data, err := c.put("/api/attentions/"+id+"/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Attention](data)
}

func (c *Client) DeleteAttention(id string) error {
	return c.delete("/api/attentions/" + id + "/")
}

func (c *Client) ProfessionalAttentions(professionalID string) ([]Attention, error) {
	query := url.Values{}
	setIfPresent(query, "professional_id", professionalID)
	data, err := c.get("/api/attentions/professional_attentions/", query)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Attention](data)
	return items, err
}

func (c *Client) AttentionsByDateRange(startDate, endDate string) ([]Attention, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	data, err := c.get("/api/attentions/date_range/", query)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeList[Attention](data)
	return items, err
}
