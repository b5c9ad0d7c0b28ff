package model

import (
	"time"
)

// DateLayout is the storage format for all ledger dates. Dates live in
// the database as plain text, not a native date type.
const DateLayout = "2006-01-02"

// TransactionStatus is the derived lifecycle state of a credit
// transaction. It is a cache over the item and payment sums and is
// rewritten on every recalculation.
type TransactionStatus string

const (
	StatusUnpaid        TransactionStatus = "Unpaid"
	StatusPartiallyPaid TransactionStatus = "Partially Paid"
	StatusPaid          TransactionStatus = "Paid"
)

// Open reports whether the transaction can still absorb new credit.
func (s TransactionStatus) Open() bool { return s != StatusPaid }

type CreditTransaction struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customer_id"`
	Date       string            `json:"date"` // YYYY-MM-DD lending date
	Status     TransactionStatus `json:"status"`
}

func (CreditTransaction) TableName() string { return "credit_transactions" }

// TransactionHeader carries the customer-facing identity of a
// transaction, as printed on invoices.
type TransactionHeader struct {
	TransactionID int64             `json:"transaction_id"`
	CustomerName  string            `json:"customer_name"`
	Date          string            `json:"date"`
	Status        TransactionStatus `json:"status"`
}

// AccountFilter narrows the grouped-accounts listing.
type AccountFilter struct {
	CustomerName *string
	Status       *TransactionStatus
	From         *string // YYYY-MM-DD inclusive
	To           *string // YYYY-MM-DD inclusive
}

func (f AccountFilter) Validate() error {
	for _, d := range []*string{f.From, f.To} {
		if d == nil {
			continue
		}
		if _, err := time.Parse(DateLayout, *d); err != nil {
			return invalid("date filter must be YYYY-MM-DD")
		}
	}
	return nil
}

// AccountView is one row of the grouped-accounts report. Balance is
// recomputed from the item/payment sums at query time, independent of
// the stored status column.
type AccountView struct {
	TransactionID int64             `json:"transaction_id"`
	CustomerID    int64             `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	Date          string            `json:"date"`
	Status        TransactionStatus `json:"status"`
	TotalAmount   float64           `json:"total_amount"`
	TotalPaid     float64           `json:"total_paid"`
	Balance       float64           `json:"balance"`
}

// CustomerBalance is one row of the top-owed dashboard.
type CustomerBalance struct {
	CustomerID int64   `json:"customer_id"`
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
}

// OutstandingCredit is one open transaction of a customer.
type OutstandingCredit struct {
	TransactionID int64   `json:"transaction_id"`
	Date          string  `json:"date"`
	TotalCredit   float64 `json:"total_credit"`
	TotalPaid     float64 `json:"total_paid"`
	Balance       float64 `json:"balance"`
}
