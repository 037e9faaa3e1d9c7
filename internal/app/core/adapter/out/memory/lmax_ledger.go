package memory

import (
	"context"
	"sync"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/pkg/journal"
)

// ledgerRequest 帳本請求包裝channel，讓呼叫端可以等待結果
type ledgerRequest struct {
	fn     func(state *ledgerState) error
	Result chan error // 呼叫端等這個 channel
}

// LMAXLedger 單一 goroutine 持有帳本狀態，所有讀寫都經由輸送帶排隊執行
// 使用前必須呼叫 Start
type LMAXLedger struct {
	state *ledgerState
	// 輸送帶 負責接收請求
	requestChan chan *ledgerRequest
	// Pool 減少 GC 壓力
	requestPool sync.Pool
	// done 在 Run Loop 結束後關閉
	done chan struct{}
	once sync.Once
}

// NewLMAXLedger 建立一個新的 LMAXLedger 實例
//
// 參數:
//
//	j: 匯出用 Journal，nil 表示不匯出
//	buffer: 輸送帶容量
//
// 回傳:
//
//	*LMAXLedger: LMAXLedger 實例
func NewLMAXLedger(j *journal.Journal, buffer int) *LMAXLedger {
	if buffer <= 0 {
		buffer = 1000
	}
	return &LMAXLedger{
		state:       newLedgerState(j),
		requestChan: make(chan *ledgerRequest, buffer),
		requestPool: sync.Pool{
			New: func() interface{} {
				return &ledgerRequest{
					Result: make(chan error, 1),
				}
			},
		},
		done: make(chan struct{}),
	}
}

// Start 啟動核心引擎 (非同步)，ctx 取消後處理完剩餘請求再停止
func (l *LMAXLedger) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

// Done 回傳 Run Loop 結束訊號
func (l *LMAXLedger) Done() <-chan struct{} {
	return l.done
}

func (l *LMAXLedger) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			// 收到關閉信號，把剩下的請求處理完
			l.drain()
			return
		case req := <-l.requestChan:
			req.Result <- req.fn(l.state)
		}
	}
}

func (l *LMAXLedger) drain() {
	for {
		select {
		case req := <-l.requestChan:
			req.Result <- req.fn(l.state)
		default:
			return
		}
	}
}

// submit 放入輸送帶並等待結果
// PostRequest(等待) -> Channel -> Run Loop (核心) -> Journal -> State Update -> Result Channel -> PostRequest(收到結果)
func (l *LMAXLedger) submit(ctx context.Context, fn func(state *ledgerState) error) error {
	req := l.requestPool.Get().(*ledgerRequest)
	req.fn = fn
	// 清空 Channel (理論上應該是空的)
	select {
	case <-req.Result:
	default:
	}

	select {
	case l.requestChan <- req:
	case <-ctx.Done():
		l.requestPool.Put(req)
		return ctx.Err()
	case <-l.done:
		l.requestPool.Put(req)
		return domain.ErrLedgerStopped
	}

	// 已進入輸送帶的請求一定會被執行，不因 ctx 取消而放棄等待，
	// 否則呼叫端會以為失敗但帳本其實已寫入
	select {
	case err := <-req.Result:
		req.fn = nil
		l.requestPool.Put(req)
		return err
	case <-l.done:
		// Run Loop 已結束，請求可能留在輸送帶中，不放回 Pool
		select {
		case err := <-req.Result:
			return err
		default:
			return domain.ErrLedgerStopped
		}
	}
}

// Append 以單一批次寫入交易
func (l *LMAXLedger) Append(ctx context.Context, trans ...*domain.Transaction) error {
	return l.submit(ctx, func(state *ledgerState) error {
		return state.append(trans)
	})
}

// Transactions 依寫入順序回傳所有交易
func (l *LMAXLedger) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := l.submit(ctx, func(state *ledgerState) error {
		out = state.all()
		return nil
	})
	return out, err
}

// AccountTransactions 依寫入順序回傳指定帳戶的交易
func (l *LMAXLedger) AccountTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := l.submit(ctx, func(state *ledgerState) error {
		out = state.forAccount(accountID)
		return nil
	})
	return out, err
}

var _ usecase.Ledger = (*LMAXLedger)(nil)
