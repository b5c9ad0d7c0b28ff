package model

type CreditItem struct {
	ID            int64   `json:"id"`
	TransactionID int64   `json:"transaction_id"`
	ProductID     int64   `json:"product_id"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	TotalPrice    float64 `json:"total_price"` // snapshot, qty * unit price at entry time
}

func (CreditItem) TableName() string { return "credit_items" }

// CreditItemInput is one cart line of an AddCredit request.
type CreditItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// AddCreditRequest is the input for lending items to a customer.
type AddCreditRequest struct {
	CustomerID  int64
	LendingDate string // YYYY-MM-DD
	Items       []CreditItemInput
}

func (p AddCreditRequest) Validate() error {
	if p.CustomerID == 0 {
		return invalid("customer_id is required")
	}
	if p.LendingDate == "" {
		return invalid("lending_date is required")
	}
	if len(p.Items) == 0 {
		return invalid("at least one item is required")
	}
	for _, it := range p.Items {
		if it.ProductID == 0 {
			return invalid("product_id is required")
		}
		if it.Quantity <= 0 {
			return invalid("quantity must be positive")
		}
		if it.UnitPrice < 0 {
			return invalid("unit_price cannot be negative")
		}
	}
	return nil
}
