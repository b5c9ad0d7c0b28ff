package model

type Payment struct {
	ID            int64   `json:"id"`
	TransactionID int64   `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Date          string  `json:"date"` // YYYY-MM-DD
}

func (Payment) TableName() string { return "payments" }

// PaymentRecord is one row of a customer's payment history.
type PaymentRecord struct {
	ID            int64   `json:"id"`
	TransactionID int64   `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Date          string  `json:"date"`
}

type RecordPaymentRequest struct {
	Amount float64
	Method string
	Date   string
}

func (p RecordPaymentRequest) Validate() error {
	if p.Amount <= 0 {
		return invalid("amount must be positive")
	}
	if p.Method == "" {
		return invalid("method is required")
	}
	if p.Date == "" {
		return invalid("date is required")
	}
	return nil
}
