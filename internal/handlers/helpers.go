package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/dukani/credit-ledger/internal/model"
	"github.com/dukani/credit-ledger/internal/services"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
	"github.com/dukani/credit-ledger/pkg/logger"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps service sentinel errors onto status codes.
// Anything not recognized as a caller mistake is a store or internal
// failure and surfaces as 500 without leaking the cause.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCustomerInUse), errors.Is(err, services.ErrProductInUse):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidUnitPrice):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	default:
		logger.Error("request failed", "err", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
	}
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// pathInt64 reads a numeric path segment such as {id}.
func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, ok := ctx.UserValue(name).(string)
	if !ok {
		return 0, errors.New("missing path parameter " + name)
	}
	return strconv.ParseInt(v, 10, 64)
}
