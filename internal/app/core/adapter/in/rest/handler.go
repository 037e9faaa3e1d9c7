package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
)

// Handler HTTP 處理器，只負責解析請求與輸出回應
type Handler struct {
	bank *usecase.BankService
}

func NewHandler(bank *usecase.BankService) *Handler {
	return &Handler{bank: bank}
}

type createAccountRequest struct {
	AccountID      string          `json:"account_id"`
	Kind           string          `json:"kind"` // savings | checking
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Customer       domain.Customer `json:"customer"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TransactionFee decimal.Decimal `json:"transaction_fee"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type postingResponse struct {
	Balance      decimal.Decimal      `json:"balance"`
	Transactions []domain.Transaction `json:"transactions"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (h *Handler) addCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := decode(r, &c); err != nil {
		writeErr(w, err)
		return
	}
	if err := h.bank.AddCustomer(r.Context(), c); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.bank.Customers(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}

	var (
		account domain.Account
		err     error
	)
	switch strings.ToLower(req.Kind) {
	case "savings":
		account, err = h.bank.CreateSavingsAccount(r.Context(), req.AccountID, req.InitialBalance, req.Customer, req.InterestRate)
	case "checking":
		account, err = h.bank.CreateCheckingAccount(r.Context(), req.AccountID, req.InitialBalance, req.Customer, req.TransactionFee)
	default:
		writeErr(w, fmt.Errorf("%w: invalid account kind %q", errBadRequest, req.Kind))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.bank.Accounts(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// getAccount 帳戶資訊與該帳戶的帳本紀錄
func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	info, err := h.bank.AccountInfo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	p, err := h.bank.Deposit(r.Context(), id, req.Amount)
	writePosting(w, p, id, err)
}

func (h *Handler) withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	p, err := h.bank.Withdraw(r.Context(), id, req.Amount)
	writePosting(w, p, id, err)
}

func (h *Handler) calculateInterest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.bank.CalculateInterest(r.Context(), id)
	writePosting(w, p, id, err)
}

func (h *Handler) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	p, err := h.bank.Transfer(r.Context(), req.From, req.To, req.Amount)
	writePosting(w, p, req.From, err)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	trans, err := h.bank.Transactions(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trans)
}

// writePosting 回傳 accountID 在本次異動後的餘額與新增的交易
func writePosting(w http.ResponseWriter, p *domain.Posting, accountID string, err error) {
	if err != nil {
		writeErr(w, err)
		return
	}
	balance, _ := p.BalanceOf(accountID)
	writeJSON(w, http.StatusOK, postingResponse{
		Balance:      balance,
		Transactions: p.Transactions,
	})
}
