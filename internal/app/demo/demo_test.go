package demo

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/JoeShih716/go-mem-bank/internal/app/core"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/console"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/journal"
	"github.com/JoeShih716/go-mem-bank/pkg/logger"
)

const wantOutput = `Customer added: Alice
Customer added: Bob
Savings Account created: A001
Checking Account created: A002
Deposited 200 into account: A001. New balance: 1200
Withdrew 50 from account A002. New balance: 450
Transaction fee of 1 deducted for account A002. New balance: 449
Withdrew 100 from account A001. New balance: 1100
Deposited 100 into account: A002. New balance: 549
Transferred 100 from account A001 to account A002.
Recent Bank Transactions:
Deposit of $200 at Mon Oct 19 09:30:00 2026
Withdrawal of $50 at Mon Oct 19 09:30:00 2026
Transaction Fee of $1 at Mon Oct 19 09:30:00 2026
Withdrawal of $100 at Mon Oct 19 09:30:00 2026
Deposit of $100 at Mon Oct 19 09:30:00 2026
Transfer to A002 of $100 at Mon Oct 19 09:30:00 2026
`

func TestRun(t *testing.T) {
	for _, engine := range []string{config.EngineMutex, config.EngineLMAX} {
		t.Run(engine, func(t *testing.T) {
			cfg := config.Default()
			cfg.Ledger.Engine = engine
			cfg.Ledger.IDGenerator = "sequence"

			fixed := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
			bank, err := core.NewBank(cfg, logger.Discard(), usecase.WithClock(func() time.Time { return fixed }))
			if err != nil {
				t.Fatal(err)
			}
			defer bank.Close()

			var buf bytes.Buffer
			Run(context.Background(), bank.Service, console.NewPrinter(&buf))
			if buf.String() != wantOutput {
				t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), wantOutput)
			}

			ctx := context.Background()
			a1, _ := bank.Service.AccountInfo(ctx, "A001")
			a2, _ := bank.Service.AccountInfo(ctx, "A002")
			if len(a1.Transactions) != 3 || len(a2.Transactions) != 3 {
				t.Fatalf("A001 entries=%d A002 entries=%d want 3/3", len(a1.Transactions), len(a2.Transactions))
			}
		})
	}
}

func TestConfigKeepsStdoutForDemo(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Path = journal.Stdout
	cfg.Log.Level = "debug"

	got := Config(cfg, true)
	if got.Journal.Path != journal.Stderr {
		t.Fatalf("journal path = %q, want %q", got.Journal.Path, journal.Stderr)
	}
	if got.Log.Level != "debug" {
		t.Fatalf("log level from file should be kept, got %q", got.Log.Level)
	}

	if got := Config(config.Default(), false); got.Log.Level != "warn" || got.Journal.Path != "" {
		t.Fatalf("defaults: level=%q journal=%q", got.Log.Level, got.Journal.Path)
	}

	cfg.Journal.Path = "bank.journal"
	if got := Config(cfg, true); got.Journal.Path != "bank.journal" {
		t.Fatalf("file journal path changed to %q", got.Journal.Path)
	}
}
