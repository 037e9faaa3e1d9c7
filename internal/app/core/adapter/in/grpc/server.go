package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/usecase"
)

type GrpcServer struct {
	bank *usecase.BankService
}

var _ BankServiceServer = (*GrpcServer)(nil)

func NewGrpcServer(bank *usecase.BankService) *GrpcServer {
	return &GrpcServer{
		bank: bank,
	}
}

func (s *GrpcServer) AddCustomer(ctx context.Context, req *AddCustomerRequest) (*StatusResponse, error) {
	if err := s.bank.AddCustomer(ctx, req.Customer); err != nil {
		return &StatusResponse{Success: false, Message: err.Error()}, nil
	}
	return &StatusResponse{Success: true}, nil
}

func (s *GrpcServer) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*CreateAccountResponse, error) {
	var (
		account domain.Account
		err     error
	)
	switch strings.ToUpper(req.Kind) {
	case AccountKindSavings:
		account, err = s.bank.CreateSavingsAccount(ctx, req.AccountId, req.InitialBalance, req.Customer, req.InterestRate)
	case AccountKindChecking:
		account, err = s.bank.CreateCheckingAccount(ctx, req.AccountId, req.InitialBalance, req.Customer, req.TransactionFee)
	default:
		return &CreateAccountResponse{
			Success: false,
			Message: "invalid account kind: " + req.Kind,
		}, nil
	}
	if err != nil {
		return &CreateAccountResponse{Success: false, Message: err.Error()}, nil
	}
	return &CreateAccountResponse{Success: true, Account: &account}, nil
}

func (s *GrpcServer) Deposit(ctx context.Context, req *DepositRequest) (*PostingResponse, error) {
	p, err := s.bank.Deposit(ctx, req.AccountId, req.Amount)
	return postingResponse(p, req.AccountId, err), nil
}

func (s *GrpcServer) Withdraw(ctx context.Context, req *WithdrawRequest) (*PostingResponse, error) {
	p, err := s.bank.Withdraw(ctx, req.AccountId, req.Amount)
	return postingResponse(p, req.AccountId, err), nil
}

func (s *GrpcServer) Transfer(ctx context.Context, req *TransferRequest) (*PostingResponse, error) {
	p, err := s.bank.Transfer(ctx, req.FromAccountId, req.ToAccountId, req.Amount)
	return postingResponse(p, req.FromAccountId, err), nil
}

func (s *GrpcServer) CalculateInterest(ctx context.Context, req *InterestRequest) (*PostingResponse, error) {
	p, err := s.bank.CalculateInterest(ctx, req.AccountId)
	return postingResponse(p, req.AccountId, err), nil
}

func (s *GrpcServer) GetAccount(ctx context.Context, req *GetAccountRequest) (*GetAccountResponse, error) {
	info, err := s.bank.AccountInfo(ctx, req.AccountId)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetAccountResponse{Info: *info}, nil
}

func (s *GrpcServer) ListTransactions(ctx context.Context, _ *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	trans, err := s.bank.Transactions(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListTransactionsResponse{Transactions: trans}, nil
}

// postingResponse 業務錯誤一律回傳 Success=false (Soft Failure)
func postingResponse(p *domain.Posting, accountID string, err error) *PostingResponse {
	if err != nil {
		return &PostingResponse{Success: false, Message: err.Error()}
	}
	balance, ok := p.BalanceOf(accountID)
	if !ok {
		balance = decimal.Zero
	}
	return &PostingResponse{
		Success:        true,
		CurrentBalance: balance,
		Transactions:   p.Transactions,
	}
}

// toStatus 將 domain 錯誤對應為 gRPC status
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDestination),
		errors.Is(err, domain.ErrInvalidTransaction):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrNotSavingsAccount),
		errors.Is(err, domain.ErrNotCheckingAccount):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrServiceClosed),
		errors.Is(err, domain.ErrLedgerStopped):
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// LoggingInterceptor 記錄每個 RPC 的方法、耗時與狀態碼
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"elapsed", time.Since(start),
		)
		return resp, err
	}
}
