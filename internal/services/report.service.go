package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/xuri/excelize/v2"
)

type AccountReader interface {
	GroupedAccounts(ctx context.Context, f model.AccountFilter) ([]*model.AccountView, error)
	TopOwedCustomers(ctx context.Context, limit int) ([]*model.CustomerBalance, error)
	OutstandingByCustomer(ctx context.Context, customerID int64) ([]*model.OutstandingCredit, error)
}

type PaymentReader interface {
	HistoryByCustomer(ctx context.Context, customerID int64) ([]*model.PaymentRecord, error)
}

// ReportService answers the read-only ledger questions. Balances are
// recomputed from the stored sums at query time so a stale status
// column never leaks into a report.
type ReportService struct {
	accounts AccountReader
	payments PaymentReader
	customer CustomerReader
}

func NewReportService(accounts AccountReader, payments PaymentReader, customer CustomerReader) *ReportService {
	return &ReportService{
		accounts: accounts,
		payments: payments,
		customer: customer,
	}
}

func (s *ReportService) GroupedAccounts(ctx context.Context, f model.AccountFilter) ([]*model.AccountView, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.accounts.GroupedAccounts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("grouped accounts: %w", err)
	}

	for _, row := range rows {
		row.TotalAmount = round2(row.TotalAmount)
		row.TotalPaid = round2(row.TotalPaid)
		row.Balance = round2(row.TotalAmount - row.TotalPaid)
	}
	return rows, nil
}

func (s *ReportService) TopOwedCustomers(ctx context.Context, limit int) ([]*model.CustomerBalance, error) {
	rows, err := s.accounts.TopOwedCustomers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top owed: %w", err)
	}
	for _, row := range rows {
		row.Balance = round2(row.Balance)
	}
	return rows, nil
}

func (s *ReportService) CustomerOutstanding(ctx context.Context, customerID int64) ([]*model.OutstandingCredit, error) {
	if _, err := s.customer.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.accounts.OutstandingByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("outstanding: %w", err)
	}
	for _, row := range rows {
		row.TotalCredit = round2(row.TotalCredit)
		row.TotalPaid = round2(row.TotalPaid)
		row.Balance = round2(row.TotalCredit - row.TotalPaid)
	}
	return rows, nil
}

func (s *ReportService) PaymentHistory(ctx context.Context, customerID int64) ([]*model.PaymentRecord, error) {
	if _, err := s.customer.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.payments.HistoryByCustomer(ctx, customerID)
}

var accountExportHeader = []string{"Transaction ID", "Customer", "Date", "Status", "Total", "Paid", "Balance"}

// ExportAccountsXLSX renders the grouped accounts as a spreadsheet with
// a single "Accounts" sheet.
func (s *ReportService) ExportAccountsXLSX(ctx context.Context, f model.AccountFilter) ([]byte, error) {
	rows, err := s.GroupedAccounts(ctx, f)
	if err != nil {
		return nil, err
	}

	const sheet = "Accounts"
	wb := excelize.NewFile()
	defer wb.Close()

	index, err := wb.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range accountExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := wb.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.TransactionID,
			row.CustomerName,
			row.Date,
			string(row.Status),
			row.TotalAmount,
			row.TotalPaid,
			row.Balance,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName builds the attachment name for an accounts export,
// e.g. "accounts-2026-08-31.xlsx".
func ExportFileName(date string) string {
	if date == "" {
		return "accounts.xlsx"
	}
	return "accounts-" + date + ".xlsx"
}

// ParseLimit reads a positive list limit from its query form, falling
// back to def for anything unusable.
func ParseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
