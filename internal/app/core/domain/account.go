package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind 帳戶種類
type AccountKind uint8

const (
	AccountKindSavings  AccountKind = 1
	AccountKindChecking AccountKind = 2
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindSavings:
		return "Savings"
	case AccountKindChecking:
		return "Checking"
	}
	return "Unknown"
}

var hundred = decimal.NewFromInt(100)

// Field 帳戶種類專屬欄位 (顯示用)
type Field struct {
	Name  string
	Value string
}

// Account 帳戶
// 以 Kind 區分儲蓄與支票帳戶，種類專屬欄位只在對應種類有意義。
// 這裡只維護餘額，交易紀錄由帳本持有。
type Account struct {
	ID       string          `json:"account_id"`
	Kind     AccountKind     `json:"kind"`
	Balance  decimal.Decimal `json:"balance"`
	Customer Customer        `json:"customer"`
	// InterestRate: 年利率百分比 (Savings)
	InterestRate decimal.Decimal `json:"interest_rate"`
	// TransactionFee: 每次提款手續費 (Checking)
	TransactionFee decimal.Decimal `json:"transaction_fee"`
}

// NewSavingsAccount 建立儲蓄帳戶
func NewSavingsAccount(id string, balance decimal.Decimal, customer Customer, interestRate decimal.Decimal) *Account {
	return &Account{
		ID:           id,
		Kind:         AccountKindSavings,
		Balance:      balance,
		Customer:     customer,
		InterestRate: interestRate,
	}
}

// NewCheckingAccount 建立支票帳戶
func NewCheckingAccount(id string, balance decimal.Decimal, customer Customer, transactionFee decimal.Decimal) *Account {
	return &Account{
		ID:             id,
		Kind:           AccountKindChecking,
		Balance:        balance,
		Customer:       customer,
		TransactionFee: transactionFee,
	}
}

// Deposit 存款
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw 提款，餘額不可因提款本身變成負數
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// DeductFee 扣除支票帳戶手續費，回傳扣除金額
// 手續費不檢查下限，餘額可能因此變成負數
func (a *Account) DeductFee() (decimal.Decimal, error) {
	if a.Kind != AccountKindChecking {
		return decimal.Zero, ErrNotCheckingAccount
	}
	a.Balance = a.Balance.Sub(a.TransactionFee)
	return a.TransactionFee, nil
}

// AccrueInterest 計算利息並加入餘額，回傳利息金額
// interest = Balance * InterestRate / 100
func (a *Account) AccrueInterest() (decimal.Decimal, error) {
	if a.Kind != AccountKindSavings {
		return decimal.Zero, ErrNotSavingsAccount
	}
	interest := a.Balance.Mul(a.InterestRate).Div(hundred)
	a.Balance = a.Balance.Add(interest)
	return interest, nil
}

// Fields 回傳種類專屬欄位，供共用的帳戶資訊輸出使用
func (a *Account) Fields() []Field {
	switch a.Kind {
	case AccountKindSavings:
		return []Field{{Name: "Interest Rate", Value: a.InterestRate.String() + "%"}}
	case AccountKindChecking:
		return []Field{{Name: "Transaction Fee", Value: "$" + a.TransactionFee.String()}}
	}
	return nil
}

// AccountInfo 帳戶資訊快照與其帳本紀錄 (依寫入順序)
type AccountInfo struct {
	Account      Account       `json:"account"`
	Transactions []Transaction `json:"transactions"`
}
