package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/repository"
	"github.com/dukani/credit-ledger/pkg/prom"
	"github.com/jung-kurt/gofpdf"
)

type ReceiptTransactionReader interface {
	GetHeader(ctx context.Context, id int64) (*model.TransactionHeader, error)
}

type ReceiptItemReader interface {
	ListWithProducts(ctx context.Context, transactionID int64) ([]*model.ReceiptLine, error)
	SumByTransaction(ctx context.Context, transactionID int64) (float64, error)
}

type ReceiptPaymentReader interface {
	GetReceiptHeader(ctx context.Context, paymentID int64) (*model.PaymentReceiptHeader, error)
	SumByTransaction(ctx context.Context, transactionID int64) (float64, error)
}

// ReceiptService renders payment receipts and transaction invoices as
// PDF documents. A missing id yields an empty document and no error;
// the caller decides how to present the absence.
type ReceiptService struct {
	txRepo      ReceiptTransactionReader
	itemRepo    ReceiptItemReader
	paymentRepo ReceiptPaymentReader
}

func NewReceiptService(txRepo ReceiptTransactionReader, itemRepo ReceiptItemReader, paymentRepo ReceiptPaymentReader) *ReceiptService {
	return &ReceiptService{
		txRepo:      txRepo,
		itemRepo:    itemRepo,
		paymentRepo: paymentRepo,
	}
}

// formatMoney renders an amount as "Kshs 1,234.56".
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "Kshs " + b.String() + "." + frac
	if neg {
		out = "Kshs -" + b.String() + "." + frac
	}
	return out
}

// PaymentReceiptPDF renders the receipt for a single payment: the
// payment header, the owning transaction's itemized table and the
// current totals.
func (s *ReceiptService) PaymentReceiptPDF(ctx context.Context, paymentID int64) ([]byte, error) {
	header, err := s.paymentRepo.GetReceiptHeader(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return []byte{}, nil
		}
		return nil, err
	}

	lines, err := s.itemRepo.ListWithProducts(ctx, header.TransactionID)
	if err != nil {
		return nil, err
	}
	totalCredit, err := s.itemRepo.SumByTransaction(ctx, header.TransactionID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.paymentRepo.SumByTransaction(ctx, header.TransactionID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, header.CustomerName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Payment Receipt No. %d", header.PaymentID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 6, fmt.Sprintf("Transaction ID: %d", header.TransactionID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", header.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Payment Method: %s", header.Method), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Payment Date: %s", header.Date), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Amount Paid: %s", formatMoney(header.Amount)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeItemTable(pdf, lines, round2(totalCredit), round2(totalPaid))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	prom.IncReceiptRendered("payment")
	return buf.Bytes(), nil
}

// TransactionReceiptPDF renders the invoice for a whole transaction.
func (s *ReceiptService) TransactionReceiptPDF(ctx context.Context, transactionID int64) ([]byte, error) {
	header, err := s.txRepo.GetHeader(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return []byte{}, nil
		}
		return nil, err
	}

	lines, err := s.itemRepo.ListWithProducts(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	totalCredit, err := s.itemRepo.SumByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.paymentRepo.SumByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, header.CustomerName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Credit Invoice No. %d", header.TransactionID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", header.Date), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", header.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeItemTable(pdf, lines, round2(totalCredit), round2(totalPaid))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}

	prom.IncReceiptRendered("transaction")
	return buf.Bytes(), nil
}

var itemColumnWidths = []float64{80, 18, 30, 30, 32}
var itemColumnTitles = []string{"Product", "Qty", "Unit Price", "Total", "Date Purchased"}

func writeItemTable(pdf *gofpdf.Fpdf, lines []*model.ReceiptLine, totalCredit, totalPaid float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range itemColumnTitles {
		pdf.CellFormat(itemColumnWidths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range lines {
		pdf.CellFormat(itemColumnWidths[0], 7, line.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(itemColumnWidths[1], 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(itemColumnWidths[2], 7, formatMoney(line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(itemColumnWidths[3], 7, formatMoney(line.TotalPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(itemColumnWidths[4], 7, line.Date, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	labelWidth := itemColumnWidths[0] + itemColumnWidths[1] + itemColumnWidths[2]
	valueWidth := itemColumnWidths[3] + itemColumnWidths[4]

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, 7, "Total Transaction", "1", 0, "R", false, 0, "")
	pdf.CellFormat(valueWidth, 7, formatMoney(totalCredit), "1", 1, "R", false, 0, "")
	pdf.CellFormat(labelWidth, 7, "Total Paid", "1", 0, "R", false, 0, "")
	pdf.CellFormat(valueWidth, 7, formatMoney(totalPaid), "1", 1, "R", false, 0, "")
}
