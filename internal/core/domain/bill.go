package domain

import (
	"math"
	"strings"
	"time"
)

// Bill is a generated invoice line as returned by the history endpoints.
type Bill struct {
	ID            IntID     `json:"bill_id"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"client_email"`
	ClientPhone   string    `json:"client_phone"`
	ItemID        IntID     `json:"item_id"`
	ItemName      string    `json:"item_name"`
	ItemRate      Number    `json:"item_rate"`
	Quantity      Number    `json:"quantity"`
	CGST          Number    `json:"cgst"`
	SGST          Number    `json:"sgst"`
	TotalAmount   Number    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Matches reports whether the bill's client or item name contains query,
// ignoring case. An empty query matches everything.
func (b Bill) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.ClientName), q) ||
		strings.Contains(strings.ToLower(b.ItemName), q)
}

// BillDraft is the bill creation form as submitted to POST /bills/create.
type BillDraft struct {
	ClientName    string `json:"client_name"    form:"client_name"    validate:"required"`
	ClientEmail   string `json:"client_email"   form:"client_email"   validate:"omitempty,email"`
	ClientPhone   string `json:"client_phone"   form:"client_phone"`
	ItemID        int64  `json:"item_id"        form:"item_id"        validate:"required,gt=0"`
	ItemName      string `json:"item_name"      form:"item_name"`
	ItemRate      Number `json:"item_rate"      form:"item_rate"      validate:"gte=0"`
	Quantity      Number `json:"quantity"       form:"quantity"       validate:"gt=0"`
	CGST          Number `json:"cgst"           form:"cgst"           validate:"gte=0"`
	SGST          Number `json:"sgst"           form:"sgst"           validate:"gte=0"`
	TotalAmount   string `json:"total_amount"   form:"-"`
	PaymentMethod string `json:"payment_method" form:"payment_method" validate:"required"`
}

// Total is quantity*rate plus the combined CGST and SGST percentage,
// rounded to two decimals.
func (d BillDraft) Total() Number {
	base := float64(d.Quantity) * float64(d.ItemRate)
	total := base + base*(float64(d.CGST)+float64(d.SGST))/100
	return Number(math.Round(total*100) / 100)
}

// WithProduct fills the item fields from p.
func (d BillDraft) WithProduct(p Product) BillDraft {
	d.ItemID = int64(p.ID)
	d.ItemName = p.Name
	d.ItemRate = p.Rate
	return d
}

// WithClient fills the client contact fields from a suggestion.
func (d BillDraft) WithClient(c Client) BillDraft {
	d.ClientName = c.Name
	d.ClientEmail = c.Email
	d.ClientPhone = c.ContactNumber
	return d
}

// Finalize stamps the computed total the way the form sends it.
func (d BillDraft) Finalize() BillDraft {
	d.TotalAmount = d.Total().Fixed2()
	return d
}

// ClientBills is the payload of GET /bills/my-bills.
type ClientBills struct {
	Client string `json:"client"`
	Bills  []Bill `json:"bills"`
}
