package view

import "github.com/shreebalaji/traders-console/internal/core/domain"

// Texts shown for empty, failed and completed states.
const (
	MsgNoProducts     = "No products available"
	MsgNoClients      = "No clients found"
	MsgNoBills        = "No bills found"
	MsgNoPurchases    = "No purchase history yet."
	MsgNoSuggestions  = "No client found"
	MsgFetchProducts  = "Failed to fetch products"
	MsgFetchClients   = "Failed to fetch clients"
	MsgFetchHistory   = "Failed to fetch bill history"
	MsgLoadMyBills    = "Failed to load bill history"
	MsgUpdateProduct  = "Failed to update product"
	MsgAddProduct     = "Failed to add product"
	MsgUpdateClient   = "Failed to update client"
	MsgBillCreated    = "Bill generated successfully!"
	MsgBillFailed     = "Failed to generate bill"
	MsgLoginFailed    = "Login failed. Please try again."
	MsgSignupFailed   = "Signup failed. Please try again."
	MsgLogoutFailed   = "Logout failed. Please try again."
	DefaultClientName = "Client"
)

// ActionError is a failed user action. Message is what the user sees; Err
// is the cause, kept for logs.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ActionError) Unwrap() error { return e.Err }

// failed wraps err with a static message.
func failed(msg string, err error) *ActionError {
	return &ActionError{Message: msg, Err: err}
}

// failedWithRemote prefers the backend's own message over fallback.
func failedWithRemote(fallback string, err error) *ActionError {
	return &ActionError{Message: domain.MessageOr(err, fallback), Err: err}
}
