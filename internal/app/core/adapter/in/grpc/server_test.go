package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/idgen"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
	grpcpkg "github.com/JoeShih716/go-mem-bank/pkg/grpc"
	"github.com/JoeShih716/go-mem-bank/pkg/logger"
)

func newTestClient(t *testing.T) *BankServiceClient {
	t.Helper()

	bank := usecase.NewBankService(
		memory.NewMutexLedger(nil),
		idgen.NewSequenceGenerator("T"),
		usecase.WithLogger(logger.Discard()),
	)
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(logger.Discard())))
	RegisterBankServiceServer(s, NewGrpcServer(bank))
	go func() {
		_ = s.Serve(lis)
	}()

	pool := grpcpkg.NewPool(grpcpkg.WithDialOptions(
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	))
	conn, err := pool.GetConnection("passthrough:///bufnet")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		pool.Close()
		s.Stop()
		bank.Close()
	})
	return NewBankServiceClient(conn)
}

func seed(t *testing.T, ctx context.Context, c *BankServiceClient) {
	t.Helper()
	alice := domain.NewCustomer("Alice", "C001", "alice@example.com")
	bob := domain.NewCustomer("Bob", "C002", "bob@example.com")
	for _, cu := range []domain.Customer{alice, bob} {
		resp, err := c.AddCustomer(ctx, &AddCustomerRequest{Customer: cu})
		if err != nil || !resp.Success {
			t.Fatalf("AddCustomer %s: resp=%+v err=%v", cu.Name, resp, err)
		}
	}
	reqs := []*CreateAccountRequest{
		{AccountId: "A001", Kind: AccountKindSavings, InitialBalance: decimal.NewFromInt(1000), Customer: alice, InterestRate: decimal.NewFromFloat(2.5)},
		{AccountId: "A002", Kind: "checking", InitialBalance: decimal.NewFromInt(500), Customer: bob, TransactionFee: decimal.NewFromInt(1)},
	}
	for _, req := range reqs {
		resp, err := c.CreateAccount(ctx, req)
		if err != nil || !resp.Success {
			t.Fatalf("CreateAccount %s: resp=%+v err=%v", req.AccountId, resp, err)
		}
	}
}

func TestGrpcDemoFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := newTestClient(t)
	seed(t, ctx, c)

	dep, err := c.Deposit(ctx, &DepositRequest{AccountId: "A001", Amount: decimal.NewFromInt(200)})
	if err != nil || !dep.Success {
		t.Fatalf("Deposit: resp=%+v err=%v", dep, err)
	}
	if !dep.CurrentBalance.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("deposit balance = %s, want 1200", dep.CurrentBalance)
	}

	wd, err := c.Withdraw(ctx, &WithdrawRequest{AccountId: "A002", Amount: decimal.NewFromInt(50)})
	if err != nil || !wd.Success {
		t.Fatalf("Withdraw: resp=%+v err=%v", wd, err)
	}
	if !wd.CurrentBalance.Equal(decimal.NewFromInt(449)) || len(wd.Transactions) != 2 {
		t.Errorf("withdraw balance = %s entries = %d, want 449 / 2", wd.CurrentBalance, len(wd.Transactions))
	}

	tr, err := c.Transfer(ctx, &TransferRequest{FromAccountId: "A001", ToAccountId: "A002", Amount: decimal.NewFromInt(100)})
	if err != nil || !tr.Success {
		t.Fatalf("Transfer: resp=%+v err=%v", tr, err)
	}
	if !tr.CurrentBalance.Equal(decimal.NewFromInt(1100)) {
		t.Errorf("transfer balance = %s, want 1100", tr.CurrentBalance)
	}

	info, err := c.GetAccount(ctx, &GetAccountRequest{AccountId: "A002"})
	if err != nil {
		t.Fatal(err)
	}
	if !info.Info.Account.Balance.Equal(decimal.NewFromInt(549)) || len(info.Info.Transactions) != 3 {
		t.Errorf("A002 = %s with %d entries, want 549 / 3", info.Info.Account.Balance, len(info.Info.Transactions))
	}

	list, err := c.ListTransactions(ctx, &ListTransactionsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	wantTypes := []string{"Deposit", "Withdrawal", "Transaction Fee", "Withdrawal", "Deposit", "Transfer to A002"}
	if len(list.Transactions) != len(wantTypes) {
		t.Fatalf("ledger has %d entries, want %d", len(list.Transactions), len(wantTypes))
	}
	for i, tr := range list.Transactions {
		if tr.Type != wantTypes[i] {
			t.Errorf("entry %d type = %q, want %q", i, tr.Type, wantTypes[i])
		}
		if tr.Sequence != uint64(i+1) {
			t.Errorf("entry %d sequence = %d", i, tr.Sequence)
		}
	}
}

func TestGrpcSoftFailures(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := newTestClient(t)
	seed(t, ctx, c)

	tests := []struct {
		name string
		call func() (*PostingResponse, error)
	}{
		{"insufficient funds", func() (*PostingResponse, error) {
			return c.Withdraw(ctx, &WithdrawRequest{AccountId: "A001", Amount: decimal.NewFromInt(5000)})
		}},
		{"negative deposit", func() (*PostingResponse, error) {
			return c.Deposit(ctx, &DepositRequest{AccountId: "A001", Amount: decimal.NewFromInt(-1)})
		}},
		{"unknown account", func() (*PostingResponse, error) {
			return c.Deposit(ctx, &DepositRequest{AccountId: "A999", Amount: decimal.NewFromInt(1)})
		}},
		{"missing destination", func() (*PostingResponse, error) {
			return c.Transfer(ctx, &TransferRequest{FromAccountId: "A001", Amount: decimal.NewFromInt(1)})
		}},
		{"interest on checking", func() (*PostingResponse, error) {
			return c.CalculateInterest(ctx, &InterestRequest{AccountId: "A002"})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call()
			if err != nil {
				t.Fatalf("business errors should not be transport errors: %v", err)
			}
			if resp.Success || resp.Message == "" {
				t.Fatalf("got %+v, want soft failure with message", resp)
			}
		})
	}

	bad, err := c.CreateAccount(ctx, &CreateAccountRequest{AccountId: "A003", Kind: "BROKERAGE"})
	if err != nil || bad.Success {
		t.Fatalf("invalid kind: resp=%+v err=%v", bad, err)
	}

	list, err := c.ListTransactions(ctx, &ListTransactionsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list.Transactions) != 0 {
		t.Fatalf("failed operations left %d ledger entries", len(list.Transactions))
	}
}

func TestGrpcGetAccountNotFound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c := newTestClient(t)

	_, err := c.GetAccount(ctx, &GetAccountRequest{AccountId: "missing"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %v, want NotFound", status.Code(err))
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{domain.ErrAccountNotFound, codes.NotFound},
		{domain.ErrInvalidAmount, codes.InvalidArgument},
		{domain.ErrInvalidDestination, codes.InvalidArgument},
		{domain.ErrInsufficientFunds, codes.FailedPrecondition},
		{domain.ErrNotSavingsAccount, codes.FailedPrecondition},
		{domain.ErrServiceClosed, codes.Unavailable},
		{domain.ErrJournalWriteFailed, codes.Internal},
	}
	for _, tt := range tests {
		if got := status.Code(toStatus(tt.err)); got != tt.want {
			t.Errorf("toStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
