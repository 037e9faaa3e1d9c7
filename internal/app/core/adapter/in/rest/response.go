package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusCode(err), errorResponse{Error: err.Error()})
}

// statusCode 將 domain 錯誤對應為 HTTP 狀態碼
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDestination),
		errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrNotSavingsAccount),
		errors.Is(err, domain.ErrNotCheckingAccount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrServiceClosed),
		errors.Is(err, domain.ErrLedgerStopped):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
