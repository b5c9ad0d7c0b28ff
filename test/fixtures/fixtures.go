package fixtures

import (
	"github.com/dukani/credit-ledger/internal/model"
)

var (
	TestCustomerWanjiku = model.Customer{
		ID:    1,
		Name:  "Wanjiku Kamau",
		Phone: "0712345678",
	}

	TestCustomerOtieno = model.Customer{
		ID:    2,
		Name:  "Otieno Odhiambo",
		Phone: "0723456789",
	}

	TestProductUnga = model.Product{
		ID:    1,
		Name:  "Unga 2kg",
		Price: 180,
	}

	TestProductSukari = model.Product{
		ID:    2,
		Name:  "Sukari 1kg",
		Price: 210,
	}
)

func NewAddCreditRequest(customerID int64, date string, items ...model.CreditItemInput) model.AddCreditRequest {
	return model.AddCreditRequest{
		CustomerID:  customerID,
		LendingDate: date,
		Items:       items,
	}
}

func NewRecordPaymentRequest(amount float64, method, date string) model.RecordPaymentRequest {
	return model.RecordPaymentRequest{
		Amount: amount,
		Method: method,
		Date:   date,
	}
}

func Item(productID int64, quantity int, unitPrice float64) model.CreditItemInput {
	return model.CreditItemInput{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

var (
	ValidDates = []string{
		"2026-01-01",
		"2026-08-31",
		"2025-12-31",
	}

	InvalidDates = []string{
		"",
		"31-08-2026",
		"2026/08/31",
		"tomorrow",
	}
)

func AccountFilterByStatus(status model.TransactionStatus) model.AccountFilter {
	return model.AccountFilter{Status: &status}
}

func AccountFilterByCustomer(name string) model.AccountFilter {
	return model.AccountFilter{CustomerName: &name}
}

func AccountFilterByRange(from, to string) model.AccountFilter {
	return model.AccountFilter{From: &from, To: &to}
}
