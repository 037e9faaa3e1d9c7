package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

// TimestampLayout 交易時間顯示格式 (Mon Jan _2 15:04:05 2006)
const TimestampLayout = time.ANSIC

// Op 操作名稱，用來挑選失敗訊息
type Op string

const (
	OpOpen     Op = "open"
	OpDeposit  Op = "deposit"
	OpWithdraw Op = "withdraw"
	OpTransfer Op = "transfer"
	OpInterest Op = "interest"
)

// Printer 將操作結果輸出成給人看的文字，格式不保證穩定
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) CustomerAdded(c domain.Customer) {
	fmt.Fprintf(p.w, "Customer added: %s\n", c.Name)
}

func (p *Printer) AccountCreated(a domain.Account) {
	fmt.Fprintf(p.w, "%s Account created: %s\n", a.Kind, a.ID)
}

// Posting 逐筆輸出一次操作產生的交易
func (p *Printer) Posting(posting *domain.Posting) {
	for _, tr := range posting.Transactions {
		switch tr.Kind {
		case domain.TransactionKindDeposit:
			fmt.Fprintf(p.w, "Deposited %s into account: %s. New balance: %s\n", tr.Amount, tr.AccountID, tr.BalanceAfter)
		case domain.TransactionKindWithdrawal:
			fmt.Fprintf(p.w, "Withdrew %s from account %s. New balance: %s\n", tr.Amount, tr.AccountID, tr.BalanceAfter)
		case domain.TransactionKindFee:
			fmt.Fprintf(p.w, "Transaction fee of %s deducted for account %s. New balance: %s\n", tr.Amount, tr.AccountID, tr.BalanceAfter)
		case domain.TransactionKindInterest:
			fmt.Fprintf(p.w, "Interest of %s earned for account %s. New balance: %s\n", tr.Amount, tr.AccountID, tr.BalanceAfter)
		case domain.TransactionKindTransfer:
			fmt.Fprintf(p.w, "Transferred %s from account %s to account %s.\n", tr.Amount, tr.AccountID, tr.Counterparty)
		}
	}
}

// Failure 輸出失敗原因，程式繼續執行
func (p *Printer) Failure(op Op, accountID string, err error) {
	fmt.Fprintln(p.w, FailureMessage(op, accountID, err))
}

// FailureMessage 依操作與錯誤種類組出訊息
func FailureMessage(op Op, accountID string, err error) string {
	switch op {
	case OpDeposit:
		if errors.Is(err, domain.ErrInvalidAmount) {
			return "Deposit amount must be greater than zero."
		}
	case OpWithdraw:
		if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrInsufficientFunds) {
			return "Insufficient funds or invalid amount for withdrawal!"
		}
	case OpTransfer:
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return "One or both accounts not found."
		case errors.Is(err, domain.ErrInvalidAmount):
			return "Transfer amount must be greater than zero."
		case errors.Is(err, domain.ErrInsufficientFunds):
			return "Insufficient funds for transfer."
		case errors.Is(err, domain.ErrInvalidDestination):
			return "Invalid destination account."
		}
	case OpInterest:
		if errors.Is(err, domain.ErrNotSavingsAccount) {
			return fmt.Sprintf("Account %s is not a savings account.", accountID)
		}
	}

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return fmt.Sprintf("Account %s not found.", accountID)
	case errors.Is(err, domain.ErrInvalidTransaction):
		return "Invalid transaction details."
	}
	return fmt.Sprintf("Operation failed: %v", err)
}

// AccountInfo 共用的帳戶資訊輸出，種類差異只在 Fields
func (p *Printer) AccountInfo(info *domain.AccountInfo) {
	a := info.Account
	var head strings.Builder
	fmt.Fprintf(&head, "%s Account ID: %s, Balance: $%s", a.Kind, a.ID, a.Balance)
	for _, f := range a.Fields() {
		fmt.Fprintf(&head, ", %s: %s", f.Name, f.Value)
	}
	fmt.Fprintln(p.w, head.String())
	fmt.Fprintf(p.w, "Customer: %s (ID: %s)\n", a.Customer.Name, a.Customer.CustomerID)
	p.transactions("Recent Transactions:", info.Transactions)
}

// BankTransactions 輸出全行交易
func (p *Printer) BankTransactions(trans []domain.Transaction) {
	p.transactions("Recent Bank Transactions:", trans)
}

func (p *Printer) transactions(title string, trans []domain.Transaction) {
	fmt.Fprintln(p.w, title)
	for _, tr := range trans {
		fmt.Fprintf(p.w, "%s of $%s at %s\n", tr.Type, tr.Amount, tr.Timestamp.Format(TimestampLayout))
	}
}
