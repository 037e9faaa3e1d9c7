package memory

import (
	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/pkg/journal"
)

// ledgerState 帳本的記憶體狀態，本身不做同步，由外層 (Mutex / Run Loop) 保護
//
// 結構:
//
//	trans: 依寫入順序的所有交易
//	byAccount: 帳號 -> trans 索引
//	seq: 最後分配的 Sequence
//	journal: 匯出用 Journal (可為 nil)
type ledgerState struct {
	trans     []domain.Transaction
	byAccount map[string][]int
	seq       uint64
	journal   *journal.Journal
}

func newLedgerState(j *journal.Journal) *ledgerState {
	return &ledgerState{
		trans:     make([]domain.Transaction, 0, 64),
		byAccount: make(map[string][]int),
		journal:   j,
	}
}

// append 分配 Sequence，先寫 Journal 再寫入記憶體
// Journal 失敗時還原 Sequence，整批不寫入
func (s *ledgerState) append(trans []*domain.Transaction) error {
	if len(trans) == 0 {
		return nil
	}

	next := s.seq
	for _, tran := range trans {
		next++
		tran.Sequence = next
	}

	// 1. 寫入 Journal (Critical Path)
	if s.journal != nil {
		batch := make([]any, len(trans))
		for i, tran := range trans {
			batch[i] = tran
		}
		if err := s.journal.WriteBatch(batch); err != nil {
			for _, tran := range trans {
				tran.Sequence = 0
			}
			return domain.ErrJournalWriteFailed
		}
	}

	// 2. 寫入記憶體
	for _, tran := range trans {
		s.byAccount[tran.AccountID] = append(s.byAccount[tran.AccountID], len(s.trans))
		s.trans = append(s.trans, *tran)
	}
	s.seq = next
	return nil
}

func (s *ledgerState) all() []domain.Transaction {
	out := make([]domain.Transaction, len(s.trans))
	copy(out, s.trans)
	return out
}

func (s *ledgerState) forAccount(accountID string) []domain.Transaction {
	idx := s.byAccount[accountID]
	out := make([]domain.Transaction, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.trans[i])
	}
	return out
}
