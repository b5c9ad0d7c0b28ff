package handlers

import (
	"context"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/services"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

type ReportService interface {
	GroupedAccounts(ctx context.Context, f model.AccountFilter) ([]*model.AccountView, error)
	TopOwedCustomers(ctx context.Context, limit int) ([]*model.CustomerBalance, error)
	CustomerOutstanding(ctx context.Context, customerID int64) ([]*model.OutstandingCredit, error)
	PaymentHistory(ctx context.Context, customerID int64) ([]*model.PaymentRecord, error)
	ExportAccountsXLSX(ctx context.Context, f model.AccountFilter) ([]byte, error)
}

type ReportHandler struct {
	svc ReportService
}

func RegisterReportRoutes(g *xhttp.Group, h *ReportHandler) {
	g.GET("/accounts", h.ListAccounts)
	g.GET("/accounts/export", h.ExportAccounts)
	g.GET("/reports/top-owed", h.TopOwed)
	g.GET("/customers/{id}/outstanding", h.CustomerOutstanding)
	g.GET("/customers/{id}/payments", h.PaymentHistory)
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

func accountFilter(ctx *xhttp.RequestCtx) model.AccountFilter {
	var f model.AccountFilter
	if v := query(ctx, "customer"); v != "" {
		f.CustomerName = &v
	}
	if v := query(ctx, "status"); v != "" {
		status := model.TransactionStatus(v)
		f.Status = &status
	}
	if v := query(ctx, "from"); v != "" {
		f.From = &v
	}
	if v := query(ctx, "to"); v != "" {
		f.To = &v
	}
	return f
}

func (h *ReportHandler) ListAccounts(ctx *xhttp.RequestCtx) {
	rows, err := h.svc.GroupedAccounts(ctx, accountFilter(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rows)
}

func (h *ReportHandler) ExportAccounts(ctx *xhttp.RequestCtx) {
	data, err := h.svc.ExportAccountsXLSX(ctx, accountFilter(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	name := services.ExportFileName(query(ctx, "to"))
	ctx.Response.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(data)
}

func (h *ReportHandler) TopOwed(ctx *xhttp.RequestCtx) {
	limit := services.ParseLimit(query(ctx, "limit"), 5)
	rows, err := h.svc.TopOwedCustomers(ctx, limit)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rows)
}

func (h *ReportHandler) CustomerOutstanding(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	rows, err := h.svc.CustomerOutstanding(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rows)
}

func (h *ReportHandler) PaymentHistory(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	rows, err := h.svc.PaymentHistory(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rows)
}
