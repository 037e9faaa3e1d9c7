package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	grpc_adapter "github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/console"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	grpcpkg "github.com/JoeShih716/go-mem-bank/pkg/grpc"
)

func main() {
	target := flag.String("target", "localhost:50051", "gRPC server address")
	bench := flag.Int("bench", 0, "number of concurrent deposits to fire (0: replay the demonstration)")
	concurrency := flag.Int("concurrency", 100, "max in-flight requests in bench mode")
	flag.Parse()

	pool := grpcpkg.NewPool()
	defer pool.Close()
	conn, err := pool.GetConnection(*target)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	c := grpc_adapter.NewBankServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	if *bench > 0 {
		runBench(ctx, c, *bench, *concurrency)
		return
	}
	replay(ctx, c, console.NewPrinter(os.Stdout))
}

// replay 透過 gRPC 重播示範流程
func replay(ctx context.Context, c *grpc_adapter.BankServiceClient, out *console.Printer) {
	alice := domain.NewCustomer("Alice", "C001", "alice@example.com")
	bob := domain.NewCustomer("Bob", "C002", "bob@example.com")
	for _, cu := range []domain.Customer{alice, bob} {
		resp, err := c.AddCustomer(ctx, &grpc_adapter.AddCustomerRequest{Customer: cu})
		if err != nil {
			log.Fatalf("AddCustomer: %v", err)
		}
		if !resp.Success {
			fmt.Println("Operation failed:", resp.Message)
			continue
		}
		out.CustomerAdded(cu)
	}

	for _, req := range []*grpc_adapter.CreateAccountRequest{
		{AccountId: "A001", Kind: grpc_adapter.AccountKindSavings, InitialBalance: decimal.NewFromInt(1000), Customer: alice, InterestRate: decimal.NewFromFloat(2.5)},
		{AccountId: "A002", Kind: grpc_adapter.AccountKindChecking, InitialBalance: decimal.NewFromInt(500), Customer: bob, TransactionFee: decimal.NewFromInt(1)},
	} {
		resp, err := c.CreateAccount(ctx, req)
		if err != nil {
			log.Fatalf("CreateAccount: %v", err)
		}
		if !resp.Success {
			fmt.Println("Operation failed:", resp.Message)
			continue
		}
		out.AccountCreated(*resp.Account)
	}

	show(out)(c.Deposit(ctx, &grpc_adapter.DepositRequest{AccountId: "A001", Amount: decimal.NewFromInt(200)}))
	show(out)(c.Withdraw(ctx, &grpc_adapter.WithdrawRequest{AccountId: "A002", Amount: decimal.NewFromInt(50)}))
	show(out)(c.Transfer(ctx, &grpc_adapter.TransferRequest{FromAccountId: "A001", ToAccountId: "A002", Amount: decimal.NewFromInt(100)}))

	list, err := c.ListTransactions(ctx, &grpc_adapter.ListTransactionsRequest{})
	if err != nil {
		log.Fatalf("ListTransactions: %v", err)
	}
	out.BankTransactions(list.Transactions)

	// 個別帳戶資訊
	for _, id := range []string{"A001", "A002"} {
		info, err := c.GetAccount(ctx, &grpc_adapter.GetAccountRequest{AccountId: id})
		if err != nil {
			log.Printf("GetAccount %s: %v", id, err)
			continue
		}
		out.AccountInfo(&info.Info)
	}
}

func show(out *console.Printer) func(*grpc_adapter.PostingResponse, error) {
	return func(resp *grpc_adapter.PostingResponse, err error) {
		if err != nil {
			log.Printf("rpc failed: %v", err)
			return
		}
		if !resp.Success {
			fmt.Println("Operation failed:", resp.Message)
			return
		}
		out.Posting(&domain.Posting{Transactions: resp.Transactions})
	}
}

// runBench 對同一個新開的帳戶併發存款並計算 TPS
func runBench(ctx context.Context, c *grpc_adapter.BankServiceClient, total, concurrency int) {
	customer := domain.NewCustomer("bench", uuid.NewString(), "")
	accountID := "BENCH-" + uuid.NewString()
	resp, err := c.CreateAccount(ctx, &grpc_adapter.CreateAccountRequest{
		AccountId: accountID,
		Kind:      grpc_adapter.AccountKindSavings,
		Customer:  customer,
	})
	if err != nil || !resp.Success {
		log.Fatalf("create bench account: resp=%+v err=%v", resp, err)
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	wg.Add(total)
	sem := make(chan struct{}, concurrency)
	amount := decimal.NewFromInt(10)

	startTime := time.Now()
	for i := 0; i < total; i++ {
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			resp, err := c.Deposit(ctx, &grpc_adapter.DepositRequest{AccountId: accountID, Amount: amount})
			if err != nil || !resp.Success {
				failed.Add(1)
				if idx%10000 == 0 {
					log.Printf("Deposit %d failed: resp=%+v err=%v", idx, resp, err)
				}
			}
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("Completed %d requests (%d failed) in %v\n", total, failed.Load(), elapsed)
	fmt.Printf("TPS: %.2f\n", float64(total)/elapsed.Seconds())

	info, err := c.GetAccount(ctx, &grpc_adapter.GetAccountRequest{AccountId: accountID})
	if err != nil {
		log.Fatalf("GetAccount: %v", err)
	}
	fmt.Printf("Final balance of %s: %s (%d entries)\n", accountID, info.Info.Account.Balance, len(info.Info.Transactions))
}
