package grpc

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	grpcpkg "github.com/JoeShih716/go-mem-bank/pkg/grpc"
)

// ServiceName gRPC 服務全名
const ServiceName = "bank.v1.BankService"

// 帳戶種類 (wire 格式)
const (
	AccountKindSavings  = "SAVINGS"
	AccountKindChecking = "CHECKING"
)

// --- 訊息 (以 JSON Codec 傳輸) ---

type AddCustomerRequest struct {
	Customer domain.Customer `json:"customer"`
}

// StatusResponse 軟性失敗: 業務錯誤以 Success=false 回傳
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type CreateAccountRequest struct {
	AccountId      string          `json:"account_id"`
	Kind           string          `json:"kind"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Customer       domain.Customer `json:"customer"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TransactionFee decimal.Decimal `json:"transaction_fee"`
}

type CreateAccountResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Account *domain.Account `json:"account,omitempty"`
}

type DepositRequest struct {
	AccountId string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type WithdrawRequest struct {
	AccountId string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromAccountId string          `json:"from_account_id"`
	ToAccountId   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type InterestRequest struct {
	AccountId string `json:"account_id"`
}

// PostingResponse 異動類操作的回應
// 轉帳/提款回傳來源帳戶餘額，存款/計息回傳該帳戶餘額
type PostingResponse struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message,omitempty"`
	CurrentBalance decimal.Decimal      `json:"current_balance"`
	Transactions   []domain.Transaction `json:"transactions,omitempty"`
}

type GetAccountRequest struct {
	AccountId string `json:"account_id"`
}

type GetAccountResponse struct {
	Info domain.AccountInfo `json:"info"`
}

type ListTransactionsRequest struct{}

type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// BankServiceServer 服務端介面
type BankServiceServer interface {
	AddCustomer(context.Context, *AddCustomerRequest) (*StatusResponse, error)
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	Deposit(context.Context, *DepositRequest) (*PostingResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*PostingResponse, error)
	Transfer(context.Context, *TransferRequest) (*PostingResponse, error)
	CalculateInterest(context.Context, *InterestRequest) (*PostingResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryHandler 將型別化的方法包成 grpc.MethodHandler，並支援 Server Interceptor
func unaryHandler[Req, Resp any](method string, call func(BankServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BankServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BankServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BankServiceDesc 手寫的服務描述，取代 protoc 產生的程式碼
var BankServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BankServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddCustomer", Handler: unaryHandler("AddCustomer", BankServiceServer.AddCustomer)},
		{MethodName: "CreateAccount", Handler: unaryHandler("CreateAccount", BankServiceServer.CreateAccount)},
		{MethodName: "Deposit", Handler: unaryHandler("Deposit", BankServiceServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler("Withdraw", BankServiceServer.Withdraw)},
		{MethodName: "Transfer", Handler: unaryHandler("Transfer", BankServiceServer.Transfer)},
		{MethodName: "CalculateInterest", Handler: unaryHandler("CalculateInterest", BankServiceServer.CalculateInterest)},
		{MethodName: "GetAccount", Handler: unaryHandler("GetAccount", BankServiceServer.GetAccount)},
		{MethodName: "ListTransactions", Handler: unaryHandler("ListTransactions", BankServiceServer.ListTransactions)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bank/v1/bank.json",
}

// RegisterBankServiceServer 註冊服務
func RegisterBankServiceServer(s grpc.ServiceRegistrar, srv BankServiceServer) {
	s.RegisterService(&BankServiceDesc, srv)
}

// BankServiceClient 客戶端 Stub
type BankServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBankServiceClient(cc grpc.ClientConnInterface) *BankServiceClient {
	return &BankServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(grpcpkg.CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BankServiceClient) AddCustomer(ctx context.Context, in *AddCustomerRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "AddCustomer", in, opts...)
}

func (c *BankServiceClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	return invoke[CreateAccountResponse](ctx, c.cc, "CreateAccount", in, opts...)
}

func (c *BankServiceClient) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*PostingResponse, error) {
	return invoke[PostingResponse](ctx, c.cc, "Deposit", in, opts...)
}

func (c *BankServiceClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*PostingResponse, error) {
	return invoke[PostingResponse](ctx, c.cc, "Withdraw", in, opts...)
}

func (c *BankServiceClient) Transfer(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*PostingResponse, error) {
	return invoke[PostingResponse](ctx, c.cc, "Transfer", in, opts...)
}

func (c *BankServiceClient) CalculateInterest(ctx context.Context, in *InterestRequest, opts ...grpc.CallOption) (*PostingResponse, error) {
	return invoke[PostingResponse](ctx, c.cc, "CalculateInterest", in, opts...)
}

func (c *BankServiceClient) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error) {
	return invoke[GetAccountResponse](ctx, c.cc, "GetAccount", in, opts...)
}

func (c *BankServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsResponse](ctx, c.cc, "ListTransactions", in, opts...)
}
