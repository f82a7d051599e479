package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/cache"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	portsrepo "github.com/SscSPs/spendwise_client/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/spendwise_client/internal/core/ports/services"
	"github.com/SscSPs/spendwise_client/internal/utils/pagination"
)

// DefaultRecentLimit is the number of transactions shown on the dashboard.
const DefaultRecentLimit = 5

type recentKeyVars struct {
	Limit int `json:"limit"`
}

// viewVars identifies a transaction view for paging purposes.
type viewVars struct {
	Filters domain.TransactionFilter `json:"filters"`
	Sort    domain.TransactionSort   `json:"sort"`
	Limit   int                      `json:"limit"`
}

// transactionService implements the TransactionSvcFacade interface. It owns one paged view.
type transactionService struct {
	BaseService
	remote         portsrepo.TransactionRemoteFacade
	store          *cache.Store
	mutations      *MutationRunner
	filters        *FilterComposer
	pager          *pagination.Controller[domain.Transaction]
	pageSize       int
	localFiltering bool

	mu   sync.Mutex
	sort domain.TransactionSort
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithPageSize sets the page limit of the view.
func WithPageSize(n int) TransactionServiceOption {
	return func(s *transactionService) {
		s.pageSize = n
	}
}

// WithLocalFiltering evaluates filters on the client over unfiltered pages instead of sending them to
// the remote service.
func WithLocalFiltering(enabled bool) TransactionServiceOption {
	return func(s *transactionService) {
		s.localFiltering = enabled
	}
}

// NewTransactionService creates the transaction service.
func NewTransactionService(remote portsrepo.TransactionRemoteFacade, store *cache.Store, mutations *MutationRunner, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		remote:    remote,
		store:     store,
		mutations: mutations,
		filters:   NewFilterComposer(),
		pageSize:  pagination.DefaultLimit,
		sort:      domain.DefaultTransactionSort,
	}
	for _, option := range options {
		option(svc)
	}
	svc.pager = pagination.NewController[domain.Transaction](svc.pageSize)
	store.OnPurge(svc.resetView)
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) View(ctx context.Context) (*domain.TransactionView, error) {
	if s.pager.Snapshot().Page == 0 {
		return s.restart(ctx)
	}
	s.rederive(ctx)
	return s.render(false), nil
}

// rederive rebuilds the accumulated pages from their cached queries, so values revalidated in the
// background since a page was applied reach the view. If any page is no longer cached the view stays as it is.
func (s *transactionService) rederive(ctx context.Context) {
	snap := s.pager.Snapshot()
	pages := make([][]domain.Transaction, 0, snap.Page)
	hasNext := snap.HasNextPage
	for p := 1; p <= snap.Page; p++ {
		key, err := cache.NewKey(domain.QueryTransactions, s.query(pagination.Request{Page: p, Limit: snap.Limit, Generation: snap.Generation}))
		if err != nil {
			return
		}
		cached, ok := cache.Peek[*domain.TransactionPage](s.store, key)
		if !ok || cached == nil {
			return
		}
		pages = append(pages, cached.Nodes())
		hasNext = cached.PageInfo.HasNextPage
	}
	if err := s.pager.Refresh(snap.Generation, pages, hasNext); err != nil {
		s.LogDebug(ctx, "Transaction view changed while re-reading cached pages", slog.String("error", err.Error()))
	}
}

// resetView runs when the query cache is purged (login, logout). Filters, sort and pages of the previous
// session are dropped; the next View loads page 1 with a fresh fingerprint.
func (s *transactionService) resetView() {
	s.filters.Clear()
	s.mu.Lock()
	s.sort = domain.DefaultTransactionSort
	s.mu.Unlock()
	s.pager.Reset("")
}

func (s *transactionService) UpdateFilters(ctx context.Context, patch domain.FilterPatch) (*domain.TransactionView, error) {
	if err := s.ValidateInput(patch); err != nil {
		return nil, err
	}
	filter, changed, err := s.filters.Update(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if !changed {
		return s.View(ctx)
	}
	s.LogDebug(ctx, "Transaction filters changed, paging restarts", slog.Bool("empty", filter.IsEmpty()))
	return s.restart(ctx)
}

func (s *transactionService) ClearFilters(ctx context.Context) (*domain.TransactionView, error) {
	if !s.filters.Clear() {
		return s.View(ctx)
	}
	s.LogDebug(ctx, "Transaction filters cleared, paging restarts")
	return s.restart(ctx)
}

func (s *transactionService) SetSort(ctx context.Context, sort domain.TransactionSort) (*domain.TransactionView, error) {
	if err := s.ValidateInput(sort); err != nil {
		return nil, err
	}
	if sort.Field == "" {
		sort.Field = domain.DefaultTransactionSort.Field
	}
	if sort.Order == "" {
		sort.Order = domain.DefaultTransactionSort.Order
	}

	s.mu.Lock()
	changed := s.sort != sort
	s.sort = sort
	s.mu.Unlock()

	if !changed {
		return s.View(ctx)
	}
	return s.restart(ctx)
}

func (s *transactionService) LoadMore(ctx context.Context, pageToken string) (*domain.TransactionView, error) {
	if pageToken != "" {
		token, err := pagination.DecodePageToken(pageToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		snap := s.pager.Snapshot()
		if token.Fingerprint != snap.Fingerprint || token.Generation != snap.Generation || token.Page != snap.Page+1 {
			return nil, fmt.Errorf("page token for page %d of an older view: %w", token.Page, apperrors.ErrSuperseded)
		}
	}

	req, ok := s.pager.Next()
	if !ok {
		return s.View(ctx)
	}
	return s.load(ctx, req)
}

// restart discards the accumulated pages and loads page 1 of the current view.
func (s *transactionService) restart(ctx context.Context) (*domain.TransactionView, error) {
	fp, err := s.fingerprint()
	if err != nil {
		return nil, err
	}
	return s.load(ctx, s.pager.Reset(fp))
}

func (s *transactionService) load(ctx context.Context, req pagination.Request) (*domain.TransactionView, error) {
	query := s.query(req)
	key, err := cache.NewKey(domain.QueryTransactions, query)
	if err != nil {
		return nil, err
	}

	res := cache.Read(ctx, s.store, key, cache.CacheAndNetwork, func(ctx context.Context) (*domain.TransactionPage, error) {
		return s.remote.Transactions(ctx, query)
	})
	if res.Err != nil {
		s.LogError(ctx, res.Err, "Failed to load transactions", slog.Int("page", req.Page))
		return nil, res.Err
	}

	page := domain.TransactionPage{}
	if res.Data != nil {
		page = *res.Data
	}
	if err := s.pager.Apply(req, page.Nodes(), page.PageInfo.HasNextPage); err != nil {
		s.LogDebug(ctx, "Discarded transactions page for a superseded view", slog.Int("page", req.Page))
		return nil, err
	}
	return s.render(res.Loading), nil
}

func (s *transactionService) query(req pagination.Request) domain.TransactionQuery {
	q := domain.TransactionQuery{
		Pagination: domain.PageRequest{Page: req.Page, Limit: req.Limit},
		Sort:       s.currentSort(),
	}
	if f := s.filters.Current(); !s.localFiltering && !f.IsEmpty() {
		q.Filters = &f
	}
	return q
}

func (s *transactionService) fingerprint() (string, error) {
	return pagination.Fingerprint(viewVars{Filters: s.filters.Current(), Sort: s.currentSort(), Limit: s.pageSize})
}

func (s *transactionService) currentSort() domain.TransactionSort {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

func (s *transactionService) render(loading bool) *domain.TransactionView {
	snap := s.pager.Snapshot()
	filters := s.filters.Current()
	items := snap.Items
	if s.localFiltering {
		items = filters.Filter(items)
	}
	view := &domain.TransactionView{
		Items:       items,
		Filters:     filters,
		Sort:        s.currentSort(),
		Page:        snap.Page,
		Limit:       snap.Limit,
		HasNextPage: snap.HasNextPage,
		Loading:     loading,
	}
	if snap.HasNextPage {
		view.NextPageToken = pagination.EncodePageToken(snap.Fingerprint, snap.Generation, snap.Page+1)
	}
	return view
}

func (s *transactionService) RecentTransactions(ctx context.Context, limit int) cache.Result[[]domain.Transaction] {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if err := s.ValidateVar("limit", limit, "max=50"); err != nil {
		return cache.Result[[]domain.Transaction]{Err: err}
	}
	key, err := cache.NewKey(domain.QueryRecentTransactions, recentKeyVars{Limit: limit})
	if err != nil {
		return cache.Result[[]domain.Transaction]{Err: err}
	}
	return cache.Read(ctx, s.store, key, cache.CacheAndNetwork, func(ctx context.Context) ([]domain.Transaction, error) {
		return s.remote.RecentTransactions(ctx, limit)
	})
}

// Categories rarely change, so they are served cache-first. When the remote service has none to offer, either
// an empty answer or a failure with nothing cached, the suggested set is served; after a failure it is marked stale.
func (s *transactionService) Categories(ctx context.Context) cache.Result[[]domain.Category] {
	key, _ := cache.NewKey(domain.QueryCategories, nil)
	res := cache.Read(ctx, s.store, key, cache.CacheFirst, func(ctx context.Context) ([]domain.Category, error) {
		categories, err := s.remote.Categories(ctx)
		if err != nil || len(categories) > 0 {
			return categories, err
		}
		return suggestedCategories(), nil
	})
	if res.Err != nil && len(res.Data) == 0 {
		s.LogError(ctx, res.Err, "Failed to load categories, serving the suggested set")
		return cache.Result[[]domain.Category]{Data: suggestedCategories(), Stale: true}
	}
	return res
}

func suggestedCategories() []domain.Category {
	suggested := make([]domain.Category, len(domain.SuggestedCategories))
	for i, name := range domain.SuggestedCategories {
		suggested[i] = domain.Category{Name: name}
	}
	return suggested
}

func (s *transactionService) CreateTransaction(ctx context.Context, input domain.CreateTransactionInput) (*domain.Transaction, error) {
	if err := s.ValidateInput(input); err != nil {
		s.LogDebug(ctx, "Invalid transaction input", slog.String("error", err.Error()))
		return nil, err
	}

	tx, err := RunMutation(ctx, s.mutations, domain.MutationCreateTransaction, func(ctx context.Context) (*domain.Transaction, error) {
		return s.remote.CreateTransaction(ctx, input)
	})
	s.afterMutation(ctx, err)
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction", slog.String("account_id", input.AccountID))
		return tx, err
	}
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", tx.ID))
	return tx, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, input domain.UpdateTransactionInput) (*domain.Transaction, error) {
	if err := s.ValidateVar("transaction id", transactionID, "required"); err != nil {
		return nil, err
	}
	if err := s.ValidateInput(input); err != nil {
		return nil, err
	}

	tx, err := RunMutation(ctx, s.mutations, domain.MutationUpdateTransaction, func(ctx context.Context) (*domain.Transaction, error) {
		return s.remote.UpdateTransaction(ctx, transactionID, input)
	})
	s.afterMutation(ctx, err)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return tx, err
	}
	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return tx, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.ValidateVar("transaction id", transactionID, "required"); err != nil {
		return err
	}

	err := runMutationNoResult(ctx, s.mutations, domain.MutationDeleteTransaction, func(ctx context.Context) error {
		return s.remote.DeleteTransaction(ctx, transactionID)
	})
	s.afterMutation(ctx, err)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// afterMutation drops the accumulated pages once a mutation committed; the next View reloads page 1
// from the refreshed cache. A mutation that did not commit leaves the view alone.
func (s *transactionService) afterMutation(ctx context.Context, err error) {
	var committed *CommittedError
	if err != nil && !errors.As(err, &committed) {
		return
	}
	fp, fpErr := s.fingerprint()
	if fpErr != nil {
		s.LogError(ctx, fpErr, "Failed to fingerprint transaction view")
		return
	}
	s.pager.Reset(fp)
}
