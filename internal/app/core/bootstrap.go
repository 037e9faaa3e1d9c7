package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/idgen"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/journal"
)

// Bank 組裝完成的銀行核心，Close 時釋放 Journal 與帳本引擎
type Bank struct {
	Service *usecase.BankService

	journal *journal.Journal
	cancel  context.CancelFunc
	lmax    *memory.LMAXLedger
}

// NewBank 依設定建立 Journal、帳本、ID 產生器與 BankService
//
// 參數:
//
//	cfg: 程式設定
//	logger: 結構化 Logger
//	opts: 額外的 BankService 選項 (例如固定時鐘)
//
// 回傳:
//
//	*Bank: 銀行核心
//	error: 初始化錯誤 (如 Journal 開啟失敗)
func NewBank(cfg config.Config, logger *slog.Logger, opts ...usecase.Option) (*Bank, error) {
	b := &Bank{}

	// 1. Journal (可選)
	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		b.journal = j
	}

	// 2. 帳本引擎
	var ledger usecase.Ledger
	switch cfg.Ledger.Engine {
	case config.EngineMutex:
		ledger = memory.NewMutexLedger(b.journal)
	case config.EngineLMAX:
		ctx, cancel := context.WithCancel(context.Background())
		b.lmax = memory.NewLMAXLedger(b.journal, cfg.Ledger.Buffer)
		b.lmax.Start(ctx)
		b.cancel = cancel
		ledger = b.lmax
	default:
		b.Close()
		return nil, fmt.Errorf("invalid ledger engine %q", cfg.Ledger.Engine)
	}

	// 3. 交易 ID
	ids, err := idgen.New(cfg.Ledger.IDGenerator, cfg.Ledger.NodeID)
	if err != nil {
		b.Close()
		return nil, err
	}

	opts = append([]usecase.Option{usecase.WithLogger(logger)}, opts...)
	b.Service = usecase.NewBankService(ledger, ids, opts...)
	logger.Info("bank initialised",
		"engine", cfg.Ledger.Engine,
		"id_generator", cfg.Ledger.IDGenerator,
		"journal", cfg.Journal.Path,
	)
	return b, nil
}

// Close 關閉服務，停止帳本引擎並關閉 Journal
func (b *Bank) Close() error {
	if b.Service != nil {
		b.Service.Close()
	}
	if b.cancel != nil {
		b.cancel()
		select {
		case <-b.lmax.Done():
		case <-time.After(5 * time.Second):
		}
	}
	if b.journal != nil {
		return b.journal.Close()
	}
	return nil
}
