package domain

import "errors"

var (
	// ErrInvalidAmount 金額必須為正數
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds 餘額不足
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAccountNotFound 找不到帳戶
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidDestination 轉帳未指定目標帳戶
	ErrInvalidDestination = errors.New("invalid destination account")

	// ErrInvalidTransaction 交易紀錄欄位不合法 (類型為空或金額非正數)
	ErrInvalidTransaction = errors.New("invalid transaction details")

	// ErrNotSavingsAccount 只有儲蓄帳戶可以計息
	ErrNotSavingsAccount = errors.New("account is not a savings account")

	// ErrNotCheckingAccount 只有支票帳戶有手續費
	ErrNotCheckingAccount = errors.New("account is not a checking account")

	// ErrJournalWriteFailed 寫入 Journal 失敗
	ErrJournalWriteFailed = errors.New("journal write failed")

	// ErrLedgerStopped 帳本核心已停止
	ErrLedgerStopped = errors.New("ledger stopped")

	// ErrServiceClosed 服務已關閉
	ErrServiceClosed = errors.New("bank service closed")
)
