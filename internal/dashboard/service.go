package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bukabox/M4tracking-sub000/internal/aggregate"
	"github.com/bukabox/M4tracking-sub000/internal/bus"
	"github.com/bukabox/M4tracking-sub000/internal/catalog"
	"github.com/bukabox/M4tracking-sub000/internal/config"
	"github.com/bukabox/M4tracking-sub000/internal/dataset"
	"github.com/bukabox/M4tracking-sub000/internal/metrics"
	"github.com/bukabox/M4tracking-sub000/internal/model"
	"github.com/bukabox/M4tracking-sub000/internal/numeric"
	"github.com/bukabox/M4tracking-sub000/internal/reconcile"
	"github.com/bukabox/M4tracking-sub000/internal/txid"
)

// Service holds the latest collection snapshots and the dashboard data
// computed from them. The four collections arrive independently, so a
// snapshot may combine a newer transaction list with older holdings; that
// inconsistency is tolerated and re-resolved on the next rebuild.
type Service struct {
	cfg     *config.Config
	changes *bus.Bus
	matcher *reconcile.Matcher
	log     zerolog.Logger
	now     func() time.Time

	mu       sync.RWMutex
	cols     dataset.Collections
	quotes   map[string]decimal.Decimal
	snapshot *Snapshot
	stale    bool
}

// NewService creates a dashboard Service.
func NewService(cfg *config.Config, changes *bus.Bus, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		changes: changes,
		matcher: reconcile.NewMatcher(nil),
		log:     log,
		now:     time.Now,
		quotes:  make(map[string]decimal.Decimal),
	}
}

// SetCollections replaces all four collections at once, as after a full
// load from disk, and publishes the corresponding change signals.
func (s *Service) SetCollections(cols dataset.Collections) {
	s.mu.Lock()
	s.cols = cols
	s.stale = true
	s.mu.Unlock()

	s.changes.Publish(bus.TopicTransactions)
	s.changes.Publish(bus.TopicHoldings)
	s.changes.Publish(bus.TopicCatalog)
	s.changes.Publish(bus.TopicCapital)
}

// SetTransactions replaces the transaction collection.
func (s *Service) SetTransactions(txs []model.Transaction) {
	s.mu.Lock()
	s.cols.Transactions = txs
	s.stale = true
	s.mu.Unlock()
	s.changes.Publish(bus.TopicTransactions)
}

// SetHoldings replaces the holdings collection.
func (s *Service) SetHoldings(holdings []model.Holding) {
	s.mu.Lock()
	s.cols.Holdings = holdings
	s.stale = true
	s.mu.Unlock()
	s.changes.Publish(bus.TopicHoldings)
}

// SetCatalog replaces the product catalog.
func (s *Service) SetCatalog(products []model.Product) {
	s.mu.Lock()
	s.cols.Products = products
	s.stale = true
	s.mu.Unlock()
	s.changes.Publish(bus.TopicCatalog)
}

// SetCapital replaces the capital structure.
func (s *Service) SetCapital(items []model.CapitalItem, legacy model.LegacyCapital) {
	s.mu.Lock()
	s.cols.Capital = items
	s.cols.Legacy = legacy
	s.stale = true
	s.mu.Unlock()
	s.changes.Publish(bus.TopicCapital)
}

// SetQuotes replaces the current unit prices, keyed by holding symbol.
func (s *Service) SetQuotes(quotes map[string]decimal.Decimal) {
	s.mu.Lock()
	s.quotes = quotes
	s.stale = true
	s.mu.Unlock()
	s.changes.Publish(bus.TopicQuotes)
}

// Rebuild runs one synchronous compute pass over the current snapshot.
// Every output is a pure function of the inputs; there is no incremental
// state to invalidate.
func (s *Service) Rebuild() {
	s.mu.Lock()
	cols := s.cols
	quotes := s.quotes
	s.mu.Unlock()

	snap := s.compute(cols, quotes)

	s.mu.Lock()
	s.snapshot = snap
	s.stale = false
	s.mu.Unlock()

	s.log.Debug().
		Int("transactions", len(cols.Transactions)).
		Int("holdings", len(cols.Holdings)).
		Int("products", len(cols.Products)).
		Msg("dashboard rebuilt")
}

func (s *Service) compute(cols dataset.Collections, quotes map[string]decimal.Decimal) *Snapshot {
	cat := catalog.NewService(cols.Products)
	sums := aggregate.SumByKind(cols.Transactions)
	summary := metrics.Compute(sums.Income, sums.Expense, cols.Capital, cols.Legacy)
	target := decimal.NewFromFloat(s.cfg.Dashboard.ROITarget)
	conv := numeric.Converter{Rate: decimal.NewFromFloat(s.cfg.Display.ConversionRate)}

	snap := &Snapshot{
		Summary:     makeSummaryView(summary, sums, target, conv, s.cfg.Display.AltCurrency),
		Months:      makeMonthViews(aggregate.GroupByMonth(cols.Transactions)),
		Products:    makeProductViews(aggregate.RevenueByProduct(cols.Transactions, cat, nil)),
		Holdings:    s.makeHoldingViews(cols, quotes),
		LastRebuild: s.now(),
	}

	// Pagination slices from a single date-ordered list; keep it sorted
	// once here rather than per request.
	snap.transactions = append([]model.Transaction(nil), cols.Transactions...)
	sort.SliceStable(snap.transactions, func(i, j int) bool {
		a, b := snap.transactions[i], snap.transactions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return txid.Less(a.ID, b.ID)
	})

	return snap
}

func (s *Service) makeHoldingViews(cols dataset.Collections, quotes map[string]decimal.Decimal) []HoldingView {
	views := make([]HoldingView, 0, len(cols.Holdings))
	for _, h := range cols.Holdings {
		price := quotes[h.Symbol]
		value := h.Value(price)
		view := HoldingView{
			Symbol:       h.Symbol,
			Units:        numeric.FormatUnits(h.Units),
			Invested:     h.Invested.InexactFloat64(),
			InvestedIDR:  numeric.FormatIDR(h.Invested),
			CurrentPrice: price.InexactFloat64(),
			Value:        value.InexactFloat64(),
			ValueIDR:     numeric.FormatIDR(value),
			GainLoss:     value.Sub(h.Invested).InexactFloat64(),
		}
		for _, b := range h.Buys {
			view.Buys = append(view.Buys, BuyView{
				ID:       b.ID,
				Date:     formatDate(b.Date),
				Units:    numeric.FormatUnits(b.Units),
				Invested: b.Invested.InexactFloat64(),
				Price:    b.UnitPrice().InexactFloat64(),
				Note:     s.matcher.DisplayNote(b, cols.Transactions),
			})
		}
		views = append(views, view)
	}
	return views
}

// Snapshot returns the last computed dashboard data, or false when no
// rebuild has completed yet.
func (s *Service) Snapshot() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

// Stale reports whether inputs changed since the last rebuild.
func (s *Service) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// TransactionsPage returns one 1-based page of the date-ordered ledger.
func (s *Service) TransactionsPage(page int) ([]TransactionView, aggregate.PageInfo) {
	snap, ok := s.Snapshot()
	if !ok {
		return nil, aggregate.PageInfo{}
	}
	slice, info := aggregate.Paginate(snap.transactions, page, s.cfg.Dashboard.PageSize)
	views := make([]TransactionView, 0, len(slice))
	for _, tx := range slice {
		views = append(views, makeTransactionView(tx))
	}
	return views, info
}

// Run rebuilds on every change signal and re-resolves quotes on a fixed
// periodic timer until the context is cancelled. Rebuilds are idempotent,
// so a burst of signals collapsing into one extra rebuild is harmless.
func (s *Service) Run(ctx context.Context) {
	signals, cancel := s.changes.Subscribe()
	defer cancel()

	ticker := time.NewTicker(s.cfg.Dashboard.QuoteRefresh())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case topic := <-signals:
			s.log.Debug().Str("topic", string(topic)).Msg("collection changed")
			s.Rebuild()
		case <-ticker.C:
			s.Rebuild()
		}
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
