package usecase

import (
	"context"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

// Ledger 是全行唯一的 append-only 帳本
// 帳戶不再各自保存交易紀錄，查詢帳戶紀錄時由帳本依帳號過濾
type Ledger interface {
	// Append 以單一批次寫入交易並分配 Sequence，全部成功或全部失敗
	Append(ctx context.Context, trans ...*domain.Transaction) error
	// Transactions 依寫入順序回傳所有交易
	Transactions(ctx context.Context) ([]domain.Transaction, error)
	// AccountTransactions 依寫入順序回傳指定帳戶的交易
	AccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// IDGenerator 產生交易 ID，由帳戶與服務共用同一個實例
type IDGenerator interface {
	NewID() string
}
