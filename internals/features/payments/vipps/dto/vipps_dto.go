package dto

// InitiateRequest is posted by the confirmation page to start a Vipps flow.
type InitiateRequest struct {
	Amount     int    `json:"amount" validate:"required,gt=0"`
	MemberType string `json:"memberType"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	OrderID    string `json:"orderId"`
}

// CallbackRequest mirrors the provider's transaction callback. Observed and
// logged only, nothing is persisted.
type CallbackRequest struct {
	OrderID         string `json:"orderId"`
	TransactionInfo struct {
		Status string `json:"status"`
		Amount int    `json:"amount"`
	} `json:"transactionInfo"`
}
