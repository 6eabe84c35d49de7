package domain

// Product is a stock item as the backend reports it.
type Product struct {
	ID       IntID  `json:"item_id"`
	Code     string `json:"item_code"`
	Name     string `json:"item_name"`
	Quantity Number `json:"item_quantity"`
	Rate     Number `json:"item_rate"`
}

// ProductFields is the editable part of a product, used both for create
// and update payloads.
type ProductFields struct {
	Code     string `json:"item_code"     form:"item_code"     validate:"required"`
	Name     string `json:"item_name"     form:"item_name"     validate:"required"`
	Quantity Number `json:"item_quantity" form:"item_quantity" validate:"gte=0"`
	Rate     Number `json:"item_rate"     form:"item_rate"     validate:"gte=0"`
}

// Apply returns p with every editable field replaced by f.
func (p Product) Apply(f ProductFields) Product {
	p.Code = f.Code
	p.Name = f.Name
	p.Quantity = f.Quantity
	p.Rate = f.Rate
	return p
}

// Fields returns the editable part of p.
func (p Product) Fields() ProductFields {
	return ProductFields{Code: p.Code, Name: p.Name, Quantity: p.Quantity, Rate: p.Rate}
}
