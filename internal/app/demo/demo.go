// Package demo 固定的示範流程：兩位客戶、兩個帳戶、三筆操作與一份全行報表。
package demo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/console"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/journal"
)

// Config 調整示範用的設定，stdout 只留給示範輸出
//
// 參數:
//
//	cfg: 載入後的設定
//	fromFile: 是否來自設定檔，沒有設定檔時只記錄警告以上
func Config(cfg config.Config, fromFile bool) config.Config {
	if !fromFile {
		cfg.Log.Level = "warn"
	}
	if cfg.Journal.Path == journal.Stdout {
		cfg.Journal.Path = journal.Stderr
	}
	return cfg
}

// Run 執行示範流程，任何單一操作失敗都只輸出訊息並繼續
func Run(ctx context.Context, bank *usecase.BankService, out *console.Printer) {
	// 1. 新增客戶
	customer1 := domain.NewCustomer("Alice", "C001", "alice@example.com")
	customer2 := domain.NewCustomer("Bob", "C002", "bob@example.com")
	for _, c := range []domain.Customer{customer1, customer2} {
		if err := bank.AddCustomer(ctx, c); err != nil {
			out.Failure(console.OpOpen, c.CustomerID, err)
			continue
		}
		out.CustomerAdded(c)
	}

	// 2. 建立帳戶
	if a, err := bank.CreateSavingsAccount(ctx, "A001", decimal.NewFromFloat(1000.0), customer1, decimal.NewFromFloat(2.5)); err != nil {
		out.Failure(console.OpOpen, "A001", err)
	} else {
		out.AccountCreated(a)
	}
	if a, err := bank.CreateCheckingAccount(ctx, "A002", decimal.NewFromFloat(500.0), customer2, decimal.NewFromFloat(1.0)); err != nil {
		out.Failure(console.OpOpen, "A002", err)
	} else {
		out.AccountCreated(a)
	}

	// 3. 執行交易
	report(out, console.OpDeposit, "A001")(bank.Deposit(ctx, "A001", decimal.NewFromFloat(200.0)))
	report(out, console.OpWithdraw, "A002")(bank.Withdraw(ctx, "A002", decimal.NewFromFloat(50.0)))
	report(out, console.OpTransfer, "A001")(bank.Transfer(ctx, "A001", "A002", decimal.NewFromFloat(100.0)))

	// 4. 全行交易紀錄
	trans, err := bank.Transactions(ctx)
	if err != nil {
		out.Failure("report", "", err)
		return
	}
	out.BankTransactions(trans)
}

func report(out *console.Printer, op console.Op, accountID string) func(*domain.Posting, error) {
	return func(p *domain.Posting, err error) {
		if err != nil {
			out.Failure(op, accountID, err)
			return
		}
		out.Posting(p)
	}
}
