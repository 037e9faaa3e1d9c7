package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
)

// Option 定義 BankService 的配置選項函數
type Option func(*BankService)

// WithClock 設定交易時間來源 (測試用固定時間)
func WithClock(now func() time.Time) Option {
	return func(s *BankService) {
		s.now = now
	}
}

// WithLogger 設定結構化 Logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *BankService) {
		s.logger = logger
	}
}

// BankService 是聚合根，管理客戶、帳戶與全行帳本
//
// 結構:
//
//	mu: 單一臨界區，所有操作 (含跨帳戶轉帳) 都在鎖內完成
//	customers: 客戶目錄 (不檢查重複)
//	accounts: 帳戶目錄，依建立順序線性搜尋，重複 ID 以先建立者為準
//	ledger: 全行唯一帳本
//	ids: 交易 ID 產生器
type BankService struct {
	mu        sync.Mutex
	customers []domain.Customer
	accounts  []*domain.Account
	ledger    Ledger
	ids       IDGenerator
	now       func() time.Time
	logger    *slog.Logger
	closed    bool
}

func NewBankService(ledger Ledger, ids IDGenerator, opts ...Option) *BankService {
	s := &BankService{
		ledger: ledger,
		ids:    ids,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddCustomer 新增客戶
func (s *BankService) AddCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrServiceClosed
	}
	s.customers = append(s.customers, customer)
	s.logger.Info("customer added", "customer_id", customer.CustomerID, "name", customer.Name)
	return nil
}

// Customers 回傳客戶目錄快照
func (s *BankService) Customers(ctx context.Context) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}
	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

// CreateSavingsAccount 建立儲蓄帳戶
//
// 參數:
//
//	ctx: 上下文
//	accountID: 帳號 (不檢查重複)
//	initialBalance: 初始餘額
//	customer: 持有人
//	interestRate: 利率百分比，不可為負
//
// 回傳:
//
//	domain.Account: 帳戶快照
//	error: ErrInvalidAmount / ErrServiceClosed
func (s *BankService) CreateSavingsAccount(ctx context.Context, accountID string, initialBalance decimal.Decimal, customer domain.Customer, interestRate decimal.Decimal) (domain.Account, error) {
	if interestRate.IsNegative() {
		return domain.Account{}, s.reject("create_savings_account", accountID, fmt.Errorf("interest rate %s: %w", interestRate, domain.ErrInvalidAmount))
	}
	return s.openAccount(domain.NewSavingsAccount(accountID, initialBalance, customer, interestRate))
}

// CreateCheckingAccount 建立支票帳戶，手續費不可為負
func (s *BankService) CreateCheckingAccount(ctx context.Context, accountID string, initialBalance decimal.Decimal, customer domain.Customer, transactionFee decimal.Decimal) (domain.Account, error) {
	if transactionFee.IsNegative() {
		return domain.Account{}, s.reject("create_checking_account", accountID, fmt.Errorf("transaction fee %s: %w", transactionFee, domain.ErrInvalidAmount))
	}
	return s.openAccount(domain.NewCheckingAccount(accountID, initialBalance, customer, transactionFee))
}

func (s *BankService) openAccount(account *domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Account{}, domain.ErrServiceClosed
	}
	s.accounts = append(s.accounts, account)
	s.logger.Info("account created", "account_id", account.ID, "kind", account.Kind.String(), "balance", account.Balance.String())
	return *account, nil
}

// FindAccountByID 依帳號取得帳戶快照
func (s *BankService) FindAccountByID(ctx context.Context, accountID string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Account{}, domain.ErrServiceClosed
	}
	account := s.findAccount(accountID)
	if account == nil {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return *account, nil
}

// Accounts 依建立順序回傳所有帳戶快照
func (s *BankService) Accounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	return out, nil
}

// Deposit 存款
func (s *BankService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}

	account := s.findAccount(accountID)
	if account == nil {
		return nil, s.reject("deposit", accountID, domain.ErrAccountNotFound)
	}

	p := s.begin()
	if err := s.deposit(p, p.stage(account), amount); err != nil {
		return nil, s.reject("deposit", accountID, err)
	}
	return s.commit(ctx, "deposit", p)
}

// Withdraw 提款，支票帳戶成功後再扣手續費
func (s *BankService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}

	account := s.findAccount(accountID)
	if account == nil {
		return nil, s.reject("withdraw", accountID, domain.ErrAccountNotFound)
	}

	p := s.begin()
	if err := s.withdraw(p, p.stage(account), amount); err != nil {
		return nil, s.reject("withdraw", accountID, err)
	}
	return s.commit(ctx, "withdraw", p)
}

// Transfer 轉帳
// 保留原本「先提款、再存款、最後記錄 Transfer to」的順序，
// 但三個步驟屬於同一個帳本批次，在同一把鎖內完成，任一步失敗不會留下部分結果。
// 來源為支票帳戶時，提款步驟一樣會扣手續費。
// 來源與目標相同時照常執行，兩邊共用同一份暫存帳戶。
//
// 參數:
//
//	ctx: 上下文
//	fromID: 來源帳號
//	toID: 目標帳號 (不可為空)
//	amount: 金額
//
// 回傳:
//
//	*domain.Posting: 本次產生的交易
//	error: ErrAccountNotFound / ErrInvalidDestination / ErrInvalidAmount / ErrInsufficientFunds
func (s *BankService) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}

	if toID == "" {
		return nil, s.reject("transfer", fromID, domain.ErrInvalidDestination, "to", toID)
	}
	from := s.findAccount(fromID)
	to := s.findAccount(toID)
	if from == nil || to == nil {
		return nil, s.reject("transfer", fromID, domain.ErrAccountNotFound, "to", toID)
	}

	p := s.begin()
	src := p.stage(from)
	if err := s.withdraw(p, src, amount); err != nil {
		return nil, s.reject("transfer", fromID, err, "to", toID)
	}
	if err := s.deposit(p, p.stage(to), amount); err != nil {
		return nil, s.reject("transfer", fromID, err, "to", toID)
	}
	if err := s.record(p, src, domain.TransactionKindTransfer, to.ID, amount); err != nil {
		return nil, s.reject("transfer", fromID, err, "to", toID)
	}
	return s.commit(ctx, "transfer", p)
}

// CalculateInterest 儲蓄帳戶計息，只在外部明確呼叫時執行
func (s *BankService) CalculateInterest(ctx context.Context, accountID string) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}

	account := s.findAccount(accountID)
	if account == nil {
		return nil, s.reject("calculate_interest", accountID, domain.ErrAccountNotFound)
	}

	p := s.begin()
	staged := p.stage(account)
	interest, err := staged.AccrueInterest()
	if err != nil {
		return nil, s.reject("calculate_interest", accountID, err)
	}
	if err := s.record(p, staged, domain.TransactionKindInterest, "", interest); err != nil {
		return nil, s.reject("calculate_interest", accountID, err)
	}
	return s.commit(ctx, "calculate_interest", p)
}

// AccountInfo 取得帳戶資訊與其帳本紀錄
func (s *BankService) AccountInfo(ctx context.Context, accountID string) (*domain.AccountInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}

	account := s.findAccount(accountID)
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	trans, err := s.ledger.AccountTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &domain.AccountInfo{Account: *account, Transactions: trans}, nil
}

// Transactions 依寫入順序回傳全行交易
func (s *BankService) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrServiceClosed
	}
	return s.ledger.Transactions(ctx)
}

// Close 釋放所有帳戶與客戶，之後的操作回傳 ErrServiceClosed
func (s *BankService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = nil
	s.customers = nil
	s.closed = true
}

// findAccount 線性搜尋，呼叫端需持有鎖
func (s *BankService) findAccount(accountID string) *domain.Account {
	for _, a := range s.accounts {
		if a.ID == accountID {
			return a
		}
	}
	return nil
}

func (s *BankService) deposit(p *posting, account *domain.Account, amount decimal.Decimal) error {
	if err := account.Deposit(amount); err != nil {
		return err
	}
	return s.record(p, account, domain.TransactionKindDeposit, "", amount)
}

func (s *BankService) withdraw(p *posting, account *domain.Account, amount decimal.Decimal) error {
	if err := account.Withdraw(amount); err != nil {
		return err
	}
	if err := s.record(p, account, domain.TransactionKindWithdrawal, "", amount); err != nil {
		return err
	}
	if account.Kind != domain.AccountKindChecking || account.TransactionFee.IsZero() {
		return nil
	}
	fee, err := account.DeductFee()
	if err != nil {
		return err
	}
	return s.record(p, account, domain.TransactionKindFee, "", fee)
}

// record 建立一筆交易放入待寫入批次，欄位不合法時回傳 ErrInvalidTransaction
func (s *BankService) record(p *posting, account *domain.Account, kind domain.TransactionKind, counterparty string, amount decimal.Decimal) error {
	tran, err := domain.NewTransaction(s.ids.NewID(), account, kind, counterparty, amount, p.now)
	if err != nil {
		return err
	}
	p.trans = append(p.trans, tran)
	return nil
}

func (s *BankService) begin() *posting {
	return &posting{
		staged: make(map[*domain.Account]*domain.Account, 2),
		now:    s.now(),
	}
}

// commit 先寫帳本，成功後才把暫存的餘額寫回帳戶
func (s *BankService) commit(ctx context.Context, op string, p *posting) (*domain.Posting, error) {
	if err := s.ledger.Append(ctx, p.trans...); err != nil {
		s.logger.Error("ledger append failed", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for account, staged := range p.staged {
		*account = *staged
	}

	out := &domain.Posting{Transactions: make([]domain.Transaction, 0, len(p.trans))}
	for _, tran := range p.trans {
		out.Transactions = append(out.Transactions, *tran)
		s.logger.Info("transaction posted",
			"op", op,
			"seq", tran.Sequence,
			"transaction_id", tran.TransactionID,
			"account_id", tran.AccountID,
			"type", tran.Type,
			"amount", tran.Amount.String(),
			"balance", tran.BalanceAfter.String(),
		)
	}
	return out, nil
}

func (s *BankService) reject(op, accountID string, err error, attrs ...any) error {
	args := append([]any{"op", op, "account_id", accountID, "error", err}, attrs...)
	s.logger.Warn("operation rejected", args...)
	return fmt.Errorf("%s %s: %w", op, accountID, err)
}

// posting 一次操作的暫存狀態
// 帳戶先複製一份修改，帳本寫入成功後才覆蓋回去
type posting struct {
	staged map[*domain.Account]*domain.Account
	trans  []*domain.Transaction
	now    time.Time
}

func (p *posting) stage(account *domain.Account) *domain.Account {
	if staged, ok := p.staged[account]; ok {
		return staged
	}
	cp := *account
	p.staged[account] = &cp
	return &cp
}
