package handlers

import (
	"context"
	"fmt"

	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

type ReceiptService interface {
	PaymentReceiptPDF(ctx context.Context, paymentID int64) ([]byte, error)
	TransactionReceiptPDF(ctx context.Context, transactionID int64) ([]byte, error)
}

type ReceiptHandler struct {
	svc ReceiptService
}

func RegisterReceiptRoutes(g *xhttp.Group, h *ReceiptHandler) {
	g.GET("/transactions/{id}/receipt", h.TransactionReceipt)
	g.GET("/payments/{id}/receipt", h.PaymentReceipt)
}

func NewReceiptHandler(svc ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		svc: svc,
	}
}

func (h *ReceiptHandler) TransactionReceipt(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	data, err := h.svc.TransactionReceiptPDF(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if len(data) == 0 {
		writeError(ctx, xhttp.StatusNotFound, "transaction not found")
		return
	}

	writePDF(ctx, fmt.Sprintf("invoice-%d.pdf", id), data)
}

func (h *ReceiptHandler) PaymentReceipt(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid payment id")
		return
	}

	data, err := h.svc.PaymentReceiptPDF(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if len(data) == 0 {
		writeError(ctx, xhttp.StatusNotFound, "payment not found")
		return
	}

	writePDF(ctx, fmt.Sprintf("receipt-%d.pdf", id), data)
}

func writePDF(ctx *xhttp.RequestCtx, name string, data []byte) {
	ctx.Response.Header.Set("Content-Type", "application/pdf")
	ctx.Response.Header.Set("Content-Disposition", `inline; filename="`+name+`"`)
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(data)
}
