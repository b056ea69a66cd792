package Client

import (
	"net/url"
	"strings"
	"time"
)

type Settlement struct {
	ID               string               `json:"id"`
	ProfessionalID   string               `json:"professional_id"`
	Professional     *Professional        `json:"professional,omitempty"`
	PeriodStart      string               `json:"period_start"`
	PeriodEnd        string               `json:"period_end"`
	TotalAttended    float64              `json:"total_attended"`
	TotalCommission  float64              `json:"total_commission"`
	TotalDiscounts   float64              `json:"total_discounts"`
	TotalRetentions  float64              `json:"total_retentions"`
	NetAmount        float64              `json:"net_amount"`
	Status           string               `json:"status"`
	PaymentReference string               `json:"payment_reference"`
	PaymentDate      *time.Time           `json:"payment_date"`
	Notes            string               `json:"notes"`
	CreatedByID      *uint                `json:"created_by_id"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	LineItems        []SettlementLineItem `json:"line_items,omitempty"`
	DiscountsApplied []SettlementDiscount `json:"discounts_applied,omitempty"`
}

type SettlementLineItem struct {
	ID                   string  `json:"id"`
	SettlementID         string  `json:"settlement_id"`
	AttentionID          *string `json:"attention_id"`
	ServiceName          string  `json:"service_name"`
	ServiceCode          string  `json:"service_code"`
	PatientName          string  `json:"patient_name"`
	AttendanceDate       string  `json:"attendance_date"`
	AmountCharged        float64 `json:"amount_charged"`
	CommissionPercentage float64 `json:"commission_percentage"`
	CommissionAmount     float64 `json:"commission_amount"`
}

type SettlementDiscount struct {
	ID             string  `json:"id"`
	SettlementID   string  `json:"settlement_id"`
	DiscountID     string  `json:"discount_id"`
	DiscountName   string  `json:"discount_name"`
	DiscountType   string  `json:"discount_type"`
	Category       string  `json:"category"`
	DiscountValue  float64 `json:"discount_value"`
	DiscountAmount float64 `json:"discount_amount"`
}

type SettlementFilter struct {
	ProfessionalID string
	Status         string
	StartDate      string
	EndDate        string
	Page           int
	PageSize       int
}

func (f SettlementFilter) values() url.Values {
	query := url.Values{}
	setIfPresent(query, "professional_id", f.ProfessionalID)
	setIfPresent(query, "status", f.Status)
	setIfPresent(query, "start_date", f.StartDate)
	setIfPresent(query, "end_date", f.EndDate)
	setPage(query, f.Page, f.PageSize)
	return query
}

func (c *Client) ListSettlements(filter SettlementFilter) ([]Settlement, int64, error) {
	data, err := c.get("/api/settlements/", filter.values())
	if err != nil {
		return nil, 0, err
	}
	return decodeList[Settlement](data)
}

func (c *Client) GetSettlement(id string) (*Settlement, error) {
	data, err := c.get("/api/settlements/"+id+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

type SettlementInput struct {
	ProfessionalID string `json:"professional_id"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	Notes          string `json:"notes,omitempty"`
}

func (c *Client) CreateSettlement(input SettlementInput) (*Settlement, error) {
	data, err := c.post("/api/settlements/", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

// UpdateSettlement changes notes only. Totals and status belong to the
// lifecycle endpoints.
func (c *Client) UpdateSettlement(id, notes string) (*Settlement, error) {
	data, err := c.put("/api/settlements/"+id+"/", map[string]string{"notes": notes})
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

func (c *Client) DeleteSettlement(id string) error {
	return c.delete("/api/settlements/" + id + "/")
}

// CalculateSettlement asks the server to (re)build line items and totals.
// The returned settlement carries the server-computed amounts; they are never
// recomputed locally.
func (c *Client) CalculateSettlement(id string) (*Settlement, error) {
	data, err := c.post("/api/settlements/"+id+"/calculate/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

func (c *Client) ApproveSettlement(id string) (*Settlement, error) {
	data, err := c.post("/api/settlements/"+id+"/approve/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

// MarkSettlementAsPaid records the payment. An empty reference is rejected
// here, before any request goes out; the server enforces the same rule.
func (c *Client) MarkSettlementAsPaid(id, paymentReference string) (*Settlement, error) {
	if strings.TrimSpace(paymentReference) == "" {
		return nil, &APIError{StatusCode: 400, Message: "A payment reference is required"}
	}
	data, err := c.post("/api/settlements/"+id+"/mark_as_paid/", map[string]string{
		"payment_reference": paymentReference,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

func (c *Client) CancelSettlement(id string) (*Settlement, error) {
	data, err := c.post("/api/settlements/"+id+"/cancel/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Settlement](data)
}

type GenerateResult struct {
	CreatedCount int          `json:"created_count"`
	Settlements  []Settlement `json:"settlements"`
}

func (c *Client) GenerateSettlementsForPeriod(periodStart, periodEnd string) (*GenerateResult, error) {
	data, err := c.post("/api/settlements/generate_for_period/", map[string]string{
		"period_start": periodStart,
		"period_end":   periodEnd,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[GenerateResult](data)
}

type StatusBucket struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type SettlementReport struct {
	TotalSettlements int                     `json:"total_settlements"`
	TotalAmount      float64                 `json:"total_amount"`
	ByStatus         map[string]StatusBucket `json:"by_status"`
	Settlements      []Settlement            `json:"settlements"`
}

func (c *Client) GetSettlementReport(filter SettlementFilter) (*SettlementReport, error) {
	data, err := c.get("/api/settlements/report/", filter.values())
	if err != nil {
		return nil, err
	}
	return decodeOne[SettlementReport](data)
}

// DownloadSettlementPDF returns the rendered statement bytes.
func (c *Client) DownloadSettlementPDF(id string) ([]byte, error) {
	return c.get("/api/settlements/"+id+"/export_pdf/", nil)
}

func (c *Client) DownloadSettlementsExcel() ([]byte, error) {
	return c.get("/api/settlements/export_excel/", nil)
}
