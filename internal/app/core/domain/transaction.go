package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind 交易類型
type TransactionKind uint8

const (
	// 存款
	TransactionKindDeposit TransactionKind = 1
	// 提款
	TransactionKindWithdrawal TransactionKind = 2
	// 手續費
	TransactionKindFee TransactionKind = 3
	// 利息
	TransactionKindInterest TransactionKind = 4
	// 轉帳 (來源端的 "Transfer to" 紀錄)
	TransactionKindTransfer TransactionKind = 5
)

// Label 回傳交易在帳本上顯示的文字
// 轉帳會帶上目標帳號，例如 "Transfer to A002"
func (k TransactionKind) Label(counterparty string) string {
	switch k {
	case TransactionKindDeposit:
		return "Deposit"
	case TransactionKindWithdrawal:
		return "Withdrawal"
	case TransactionKindFee:
		return "Transaction Fee"
	case TransactionKindInterest:
		return "Interest"
	case TransactionKindTransfer:
		if counterparty == "" {
			return ""
		}
		return "Transfer to " + counterparty
	}
	return ""
}

// Transaction 一筆帳本紀錄，建立後不可修改
type Transaction struct {
	// Sequence: 全局唯一的順序號 (由帳本分配，1, 2, 3...)
	Sequence uint64 `json:"sequence"`
	// TransactionID: 外部追蹤號 (由 IDGenerator 產生)
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Kind          TransactionKind `json:"kind"`
	// Type: 顯示用標籤 ("Deposit", "Transfer to A002" ...)
	Type string `json:"type"`
	// Counterparty: 轉帳對方帳號，其餘類型為空
	Counterparty string          `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	// BalanceAfter: 此筆交易完成後的帳戶餘額
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

// NewTransaction 建立一筆交易紀錄
//
// 參數:
//
//	id: 交易 ID
//	account: 交易完成後的帳戶狀態 (取 ID 與餘額)
//	kind: 交易類型
//	counterparty: 轉帳對方帳號 (非轉帳為空)
//	amount: 金額，必須為正數
//	now: 建立時間
//
// 回傳:
//
//	*Transaction: 交易紀錄
//	error: ErrInvalidTransaction (標籤為空或金額非正數)
func NewTransaction(id string, account *Account, kind TransactionKind, counterparty string, amount decimal.Decimal, now time.Time) (*Transaction, error) {
	label := kind.Label(counterparty)
	if label == "" || !amount.IsPositive() {
		return nil, ErrInvalidTransaction
	}
	return &Transaction{
		TransactionID: id,
		AccountID:     account.ID,
		Kind:          kind,
		Type:          label,
		Counterparty:  counterparty,
		Amount:        amount,
		BalanceAfter:  account.Balance,
		Timestamp:     now,
	}, nil
}

// Posting 一次服務操作所產生的交易，依發生順序排列
type Posting struct {
	Transactions []Transaction
}

// BalanceOf 回傳該次操作後指定帳戶的最終餘額
func (p *Posting) BalanceOf(accountID string) (decimal.Decimal, bool) {
	for i := len(p.Transactions) - 1; i >= 0; i-- {
		if p.Transactions[i].AccountID == accountID {
			return p.Transactions[i].BalanceAfter, true
		}
	}
	return decimal.Zero, false
}
