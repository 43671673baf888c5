package mocks

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// Snapshotter is implemented by the in-memory repositories so that
// MockTxManager can undo a rolled back unit of work.
type Snapshotter interface {
	Snapshot() (restore func())
}

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.LoanAccount

	CreateFunc           func(ctx context.Context, tx usecase.Tx, account *domain.LoanAccount) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.LoanAccount, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.LoanAccount, error)
	UpdateBalancesFunc   func(ctx context.Context, tx usecase.Tx, account *domain.LoanAccount) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]domain.LoanAccount),
	}
}

func (m *MockAccountRepository) Snapshot() func() {
	m.mu.RLock()
	saved := cloneMap(m.accounts)
	m.mu.RUnlock()
	return func() {
		m.mu.Lock()
		m.accounts = saved
		m.mu.Unlock()
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.LoanAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.OwnerID == account.OwnerID {
			return domain.ErrAccountExists
		}
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return &acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.LoanAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.OwnerID == ownerID {
			return &acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.LoanAccount, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByOwnerForUpdate(ctx context.Context, tx usecase.Tx, ownerID string) (*domain.LoanAccount, error) {
	return m.GetByOwner(ctx, ownerID)
}

func (m *MockAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Tx, account *domain.LoanAccount) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	stored.CurrentBalance = account.CurrentBalance
	stored.TotalBonuses = account.TotalBonuses
	stored.TotalWithdrawals = account.TotalWithdrawals
	stored.Version = account.Version
	stored.UpdatedAt = account.UpdatedAt
	m.accounts[account.ID] = stored
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.LoanAccount, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, &acc)
	}
	slices.SortFunc(accounts, func(a, b *domain.LoanAccount) int { return strings.Compare(a.ID, b.ID) })
	return page(accounts, limit, offset), nil
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	entries []domain.Transaction

	CreateFunc       func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	ListFunc         func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	SumByAccountFunc func(ctx context.Context, tx usecase.Tx, accountID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Snapshot() func() {
	m.mu.RLock()
	saved := slices.Clone(m.entries)
	m.mu.RUnlock()
	return func() {
		m.mu.Lock()
		m.entries = saved
		m.mu.Unlock()
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *transaction)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, e := range m.entries {
		if e.AccountID != filter.AccountID {
			continue
		}
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.From != nil && e.EffectiveDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.EffectiveDate.After(*filter.To) {
			continue
		}
		out = append(out, &e)
	}
	slices.SortFunc(out, func(a, b *domain.Transaction) int {
		first, second := b.CreatedAt.Compare(a.CreatedAt), b.EffectiveDate.Compare(a.EffectiveDate)
		if filter.Order == domain.OrderByEffectiveDate {
			first, second = second, first
		}
		if first != 0 {
			return first
		}
		if second != 0 {
			return second
		}
		return strings.Compare(b.ID, a.ID)
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (m *MockTransactionRepository) SumByAccount(ctx context.Context, tx usecase.Tx, accountID string) (decimal.Decimal, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, e := range m.entries {
		if e.AccountID == accountID {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

// Entries returns every stored entry of the account in insertion order.
func (m *MockTransactionRepository) Entries(accountID string) []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, e := range m.entries {
		if e.AccountID == accountID {
			out = append(out, &e)
		}
	}
	return out
}

// MockDepositRepository is an in-memory DepositRepository.
type MockDepositRepository struct {
	mu       sync.RWMutex
	deposits map[string]domain.YieldDeposit

	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.YieldDeposit, error)
	ListActiveAfterFunc  func(ctx context.Context, afterID string, limit int) ([]*domain.YieldDeposit, error)
	UpdatePrincipalFunc  func(ctx context.Context, tx usecase.Tx, deposit *domain.YieldDeposit) error
	RecordPayoutFunc     func(ctx context.Context, tx usecase.Tx, deposit *domain.YieldDeposit) error
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{
		deposits: make(map[string]domain.YieldDeposit),
	}
}

func (m *MockDepositRepository) Snapshot() func() {
	m.mu.RLock()
	saved := cloneMap(m.deposits)
	m.mu.RUnlock()
	return func() {
		m.mu.Lock()
		m.deposits = saved
		m.mu.Unlock()
	}
}

func (m *MockDepositRepository) Create(ctx context.Context, tx usecase.Tx, deposit *domain.YieldDeposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[deposit.ID] = *deposit
	return nil
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.YieldDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.deposits[id]; ok {
		return &d, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.YieldDeposit, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDepositRepository) ListByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.YieldDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldDeposit
	for _, d := range m.deposits {
		if d.OwnerID != ownerID || (activeOnly && !d.IsActive()) {
			continue
		}
		out = append(out, &d)
	}
	// Map order is random; callers must sort.
	return out, nil
}

func (m *MockDepositRepository) ListActiveByOwnerForUpdate(ctx context.Context, tx usecase.Tx, ownerID string) ([]*domain.YieldDeposit, error) {
	return m.ListByOwner(ctx, ownerID, true)
}

func (m *MockDepositRepository) ListActiveAfter(ctx context.Context, afterID string, limit int) ([]*domain.YieldDeposit, error) {
	if m.ListActiveAfterFunc != nil {
		return m.ListActiveAfterFunc(ctx, afterID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldDeposit
	for _, d := range m.deposits {
		if d.IsActive() && d.ID > afterID {
			out = append(out, &d)
		}
	}
	slices.SortFunc(out, func(a, b *domain.YieldDeposit) int { return strings.Compare(a.ID, b.ID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockDepositRepository) ApplyPatch(ctx context.Context, tx usecase.Tx, deposit *domain.YieldDeposit) error {
	return m.update(deposit.ID, func(stored *domain.YieldDeposit) {
		stored.Status = deposit.Status
		stored.Notes = deposit.Notes
		stored.PrincipalAmount = deposit.PrincipalAmount
		stored.UpdatedAt = deposit.UpdatedAt
	})
}

func (m *MockDepositRepository) RecordPayout(ctx context.Context, tx usecase.Tx, deposit *domain.YieldDeposit) error {
	if m.RecordPayoutFunc != nil {
		return m.RecordPayoutFunc(ctx, tx, deposit)
	}
	return m.update(deposit.ID, func(stored *domain.YieldDeposit) {
		stored.LastPayoutDate = deposit.LastPayoutDate
		stored.TotalPaidOut = deposit.TotalPaidOut
		stored.UpdatedAt = deposit.UpdatedAt
	})
}

func (m *MockDepositRepository) UpdatePrincipal(ctx context.Context, tx usecase.Tx, deposit *domain.YieldDeposit) error {
	if m.UpdatePrincipalFunc != nil {
		return m.UpdatePrincipalFunc(ctx, tx, deposit)
	}
	return m.update(deposit.ID, func(stored *domain.YieldDeposit) {
		stored.PrincipalAmount = deposit.PrincipalAmount
		stored.Status = deposit.Status
		stored.UpdatedAt = deposit.UpdatedAt
	})
}

func (m *MockDepositRepository) update(id string, apply func(stored *domain.YieldDeposit)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	apply(&stored)
	m.deposits[id] = stored
	return nil
}

// MockPayoutRepository is an in-memory PayoutRepository that enforces the
// one-payout-per-date rule like the unique index does.
type MockPayoutRepository struct {
	mu      sync.RWMutex
	payouts []domain.YieldPayout

	CreateFunc        func(ctx context.Context, tx usecase.Tx, payout *domain.YieldPayout) error
	ExistsForDateFunc func(ctx context.Context, tx usecase.Tx, depositID string, payoutDate time.Time) (bool, error)
}

func NewMockPayoutRepository() *MockPayoutRepository {
	return &MockPayoutRepository{}
}

func (m *MockPayoutRepository) Snapshot() func() {
	m.mu.RLock()
	saved := slices.Clone(m.payouts)
	m.mu.RUnlock()
	return func() {
		m.mu.Lock()
		m.payouts = saved
		m.mu.Unlock()
	}
}

func (m *MockPayoutRepository) Create(ctx context.Context, tx usecase.Tx, payout *domain.YieldPayout) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, payout)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payouts {
		if p.DepositID == payout.DepositID && p.PayoutDate.Equal(payout.PayoutDate) {
			return domain.ErrDuplicatePayout
		}
	}
	m.payouts = append(m.payouts, *payout)
	return nil
}

func (m *MockPayoutRepository) ExistsForDate(ctx context.Context, tx usecase.Tx, depositID string, payoutDate time.Time) (bool, error) {
	if m.ExistsForDateFunc != nil {
		return m.ExistsForDateFunc(ctx, tx, depositID, payoutDate)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payouts {
		if p.DepositID == depositID && p.PayoutDate.Equal(payoutDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPayoutRepository) ListByDeposit(ctx context.Context, depositID string) ([]*domain.YieldPayout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.YieldPayout
	for _, p := range m.payouts {
		if p.DepositID == depositID {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *domain.YieldPayout) int { return b.PayoutDate.Compare(a.PayoutDate) })
	return out, nil
}

// MockWithdrawalRepository is an in-memory WithdrawalRepository.
type MockWithdrawalRepository struct {
	mu       sync.RWMutex
	requests map[string]domain.WithdrawalRequest
}

func NewMockWithdrawalRepository() *MockWithdrawalRepository {
	return &MockWithdrawalRepository{
		requests: make(map[string]domain.WithdrawalRequest),
	}
}

func (m *MockWithdrawalRepository) Snapshot() func() {
	m.mu.RLock()
	saved := cloneMap(m.requests)
	m.mu.RUnlock()
	return func() {
		m.mu.Lock()
		m.requests = saved
		m.mu.Unlock()
	}
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, tx usecase.Tx, request *domain.WithdrawalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[request.ID] = *request
	return nil
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.requests[id]; ok {
		return &r, nil
	}
	return nil, domain.ErrWithdrawalNotFound
}

func (m *MockWithdrawalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.WithdrawalRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *MockWithdrawalRepository) UpdateStatus(ctx context.Context, tx usecase.Tx, request *domain.WithdrawalRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.requests[request.ID]
	if !ok {
		return domain.ErrWithdrawalNotFound
	}
	stored.Status = request.Status
	stored.Notes = request.Notes
	stored.ReviewedBy = request.ReviewedBy
	stored.ReviewedAt = request.ReviewedAt
	stored.UpdatedAt = request.UpdatedAt
	m.requests[request.ID] = stored
	return nil
}

func (m *MockWithdrawalRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.WithdrawalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.WithdrawalRequest
	for _, r := range m.requests {
		if r.AccountID == accountID {
			out = append(out, &r)
		}
	}
	slices.SortFunc(out, func(a, b *domain.WithdrawalRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return page(out, limit, offset), nil
}

// MockOutboxRepository is an in-memory OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Snapshot() func() {
	m.mu.RLock()
	saved := slices.Clone(m.events)
	m.mu.RUnlock()
	return func() {
		m.mu.Lock()
		m.events = saved
		m.mu.Unlock()
	}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published {
			continue
		}
		out = append(out, &e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events[i].Published = true
			m.events[i].PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = slices.DeleteFunc(m.events, func(e domain.OutboxEvent) bool {
		return e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before)
	})
	return nil
}

// EventTypes returns the type of every stored event in insertion order.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.EventType)
	}
	return types
}

// MockTxManager begins units of work over the in-memory repositories. Each
// Begin snapshots the tracked repositories; a Rollback that was not preceded
// by a successful Commit restores them.
type MockTxManager struct {
	mu      sync.Mutex
	tracked []Snapshotter

	BeginFunc  func(ctx context.Context) (usecase.Tx, error)
	CommitFunc func(ctx context.Context) error

	Begun      int
	Committed  int
	RolledBack int
}

func NewMockTxManager(tracked ...Snapshotter) *MockTxManager {
	return &MockTxManager{tracked: tracked}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Begun++
	restores := make([]func(), 0, len(m.tracked))
	for _, s := range m.tracked {
		restores = append(restores, s.Snapshot())
	}
	return &MockTx{manager: m, restores: restores}, nil
}

// MockTx is a unit of work started by MockTxManager.
type MockTx struct {
	manager  *MockTxManager
	restores []func()
	done     bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.manager.CommitFunc != nil {
		if err := t.manager.CommitFunc(ctx); err != nil {
			return err
		}
	}
	t.manager.mu.Lock()
	defer t.manager.mu.Unlock()
	t.done = true
	t.manager.Committed++
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	t.manager.mu.Lock()
	defer t.manager.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	for i := len(t.restores) - 1; i >= 0; i-- {
		t.restores[i]()
	}
	t.manager.RolledBack++
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator. Generated ids
// sort in generation order.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%04d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Stored returns the value held for key.
func (m *MockIdempotencyStore) Stored(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
