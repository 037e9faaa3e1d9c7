package memory

import (
	"context"
	"sync"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/pkg/journal"
)

// MutexLedger 是一個使用 RWMutex 保護的帳本
// 寫入互斥，查詢可並行
type MutexLedger struct {
	mu    sync.RWMutex
	state *ledgerState
}

// NewMutexLedger 建立一個新的 MutexLedger 實例
//
// 參數:
//
//	j: 匯出用 Journal，nil 表示不匯出
//
// 回傳:
//
//	*MutexLedger: MutexLedger 實例
func NewMutexLedger(j *journal.Journal) *MutexLedger {
	return &MutexLedger{
		state: newLedgerState(j),
	}
}

// Append 以單一批次寫入交易 (Level 1: Mutex Lock)
//
// 參數:
//
//	ctx: 上下文
//	trans: 交易，成功後 Sequence 會被填入
//
// 回傳:
//
//	error: ErrJournalWriteFailed
func (m *MutexLedger) Append(ctx context.Context, trans ...*domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.append(trans)
}

// Transactions 依寫入順序回傳所有交易
func (m *MutexLedger) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.all(), nil
}

// AccountTransactions 依寫入順序回傳指定帳戶的交易
func (m *MutexLedger) AccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.forAccount(accountID), nil
}

var _ usecase.Ledger = (*MutexLedger)(nil)
