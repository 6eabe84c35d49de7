package domain

// Client is a customer account as listed by the backend.
type Client struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	ContactNumber  string `json:"contactNumber"`
}

// ClientFields is the admin-editable part of a client.
type ClientFields struct {
	CompanyName    string `json:"companyName"    form:"companyName"`
	CompanyAddress string `json:"companyAddress" form:"companyAddress"`
	ContactNumber  string `json:"contactNumber"  form:"contactNumber"`
}

// Apply returns c with the editable fields replaced by f.
func (c Client) Apply(f ClientFields) Client {
	c.CompanyName = f.CompanyName
	c.CompanyAddress = f.CompanyAddress
	c.ContactNumber = f.ContactNumber
	return c
}

// Fields returns the editable part of c.
func (c Client) Fields() ClientFields {
	return ClientFields{CompanyName: c.CompanyName, CompanyAddress: c.CompanyAddress, ContactNumber: c.ContactNumber}
}
