package payment

import "time"

type ChargeParams struct {
	Amount         int
	Currency       string
	Source         string
	Description    string
	IdempotencyKey string
}

type Charge struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Paid     bool   `json:"paid"`
}

type Refund struct {
	ID     string
	Status string
}

type Verification struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	Amount    int        `json:"amount"`
	Currency  string     `json:"currency"`
	PaidAt    *time.Time `json:"paid_at"`
}

// Succeeded reports whether Paystack settled the transaction.
func (v *Verification) Succeeded() bool {
	return v != nil && v.Status == "success"
}
