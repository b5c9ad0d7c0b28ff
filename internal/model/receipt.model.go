package model

// ReceiptLine is one itemized row on a receipt or invoice: the product
// name, the snapshotted pricing and the transaction's lending date.
type ReceiptLine struct {
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
	Date       string  `json:"date"`
}

// PaymentReceiptHeader identifies a payment together with its owning
// transaction and customer, as printed at the top of a payment receipt.
type PaymentReceiptHeader struct {
	PaymentID     int64             `json:"payment_id"`
	TransactionID int64             `json:"transaction_id"`
	CustomerName  string            `json:"customer_name"`
	Status        TransactionStatus `json:"status"`
	Amount        float64           `json:"amount"`
	Method        string            `json:"method"`
	Date          string            `json:"date"`
}
