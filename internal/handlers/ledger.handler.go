package handlers

import (
	"context"

	"github.com/dukani/credit-ledger/internal/model"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

type LedgerService interface {
	AddCredit(ctx context.Context, p model.AddCreditRequest) (*model.CreditTransaction, error)
	RecalcBalance(ctx context.Context, transactionID int64) (float64, error)
	RecordPayment(ctx context.Context, transactionID int64, p model.RecordPaymentRequest) (*model.Payment, error)
	DeletePayment(ctx context.Context, paymentID int64) (int64, error)
	UpdateItem(ctx context.Context, itemID int64, quantity int, unitPrice float64) (int64, error)
	DeleteItem(ctx context.Context, itemID int64) (int64, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
	MarkFullyPaid(ctx context.Context, transactionID int64) (*model.Payment, error)
}

type LedgerHandler struct {
	svc LedgerService
}

func RegisterLedgerRoutes(g *xhttp.Group, h *LedgerHandler) {
	g.POST("/credits", h.AddCredit)
	g.POST("/transactions/{id}/payments", h.RecordPayment)
	g.POST("/transactions/{id}/recalc", h.Recalc)
	g.POST("/transactions/{id}/mark-paid", h.MarkFullyPaid)
	g.DELETE("/transactions/{id}", h.DeleteTransaction)
	g.DELETE("/payments/{id}", h.DeletePayment)
	g.PUT("/items/{id}", h.UpdateItem)
	g.DELETE("/items/{id}", h.DeleteItem)
}

func NewLedgerHandler(svc LedgerService) *LedgerHandler {
	return &LedgerHandler{
		svc: svc,
	}
}

type addCreditRequest struct {
	CustomerID  int64                   `json:"customer_id"`
	LendingDate string                  `json:"lending_date"`
	Items       []model.CreditItemInput `json:"items"`
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Date   string  `json:"date"`
}

type updateItemRequest struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (h *LedgerHandler) AddCredit(ctx *xhttp.RequestCtx) {
	var req addCreditRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	txn, err := h.svc.AddCredit(ctx, model.AddCreditRequest{
		CustomerID:  req.CustomerID,
		LendingDate: req.LendingDate,
		Items:       req.Items,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, txn)
}

func (h *LedgerHandler) RecordPayment(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	var req recordPaymentRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	payment, err := h.svc.RecordPayment(ctx, id, model.RecordPaymentRequest{
		Amount: req.Amount,
		Method: req.Method,
		Date:   req.Date,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, payment)
}

func (h *LedgerHandler) Recalc(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	balance, err := h.svc.RecalcBalance(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]float64{"balance": balance})
}

func (h *LedgerHandler) MarkFullyPaid(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	payment, err := h.svc.MarkFullyPaid(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if payment == nil {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "already settled"})
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, payment)
}

func (h *LedgerHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.svc.DeleteTransaction(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

func (h *LedgerHandler) DeletePayment(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid payment id")
		return
	}

	transactionID, err := h.svc.DeletePayment(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]int64{"transaction_id": transactionID})
}

func (h *LedgerHandler) UpdateItem(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid item id")
		return
	}

	var req updateItemRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	transactionID, err := h.svc.UpdateItem(ctx, id, req.Quantity, req.UnitPrice)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]int64{"transaction_id": transactionID})
}

func (h *LedgerHandler) DeleteItem(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid item id")
		return
	}

	transactionID, err := h.svc.DeleteItem(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]int64{"transaction_id": transactionID})
}
