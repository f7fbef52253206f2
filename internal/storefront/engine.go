// Package storefront reúne carrito, sesión, catálogo, búsqueda y promociones
// en un único objeto con ciclo de vida explícito (Init / Dispose).
package storefront

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"storefront/internal/cache"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/deals"
	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/search"
	"storefront/internal/session"
	"storefront/internal/storage"
)

// Options configura el Engine. Los campos vacíos toman valores por defecto.
type Options struct {
	Catalog    catalog.Data
	Repository repository.KeyValueRepository
	Provider   session.Provider
	Logger     logger.Logger
	Clock      func() time.Time

	QueryCacheTTL  time.Duration
	SearchDebounce time.Duration
	AuthLatency    time.Duration
	DealTick       time.Duration
	StoreTimeout   time.Duration
}

// ConfigOptions traslada la configuración del proceso a Options
func ConfigOptions(cfg *config.Config) Options {
	return Options{
		QueryCacheTTL:  cfg.QueryCacheTTL,
		SearchDebounce: cfg.SearchDebounce,
		AuthLatency:    cfg.AuthLatency,
		DealTick:       cfg.DealTick,
		StoreTimeout:   cfg.StoreTimeout,
	}
}

const defaultQueryCacheTTL = 2 * time.Minute

type lifecycle int32

const (
	stateCreated lifecycle = iota
	stateReady
	stateDisposed
)

type Engine struct {
	state  atomic.Int32
	logger logger.Logger

	cache     *catalog.QueryCache
	catalog   *catalog.Index
	store     *storage.Store
	cart      *cart.Cart
	session   *session.Session
	history   *search.History
	search    *search.Engine
	debouncer *search.Debouncer
	deals     *deals.Scheduler
}

// New valida el catálogo y arma los componentes. No lee el store: eso
// lo hace Init.
func New(opts Options) (*Engine, error) {
	log := logger.OrNoOp(opts.Logger)

	ttl := opts.QueryCacheTTL
	if ttl <= 0 {
		ttl = defaultQueryCacheTTL
	}
	queryCache := cache.New[[]models.Product](ttl, ttl)

	index, err := catalog.NewIndex(opts.Catalog, queryCache, log)
	if err != nil {
		queryCache.Close()
		return nil, fmt.Errorf("build catalog index: %w", err)
	}

	repo := opts.Repository
	if repo == nil {
		repo = repository.NewMemoryRepository()
	}
	store := storage.New(repo, log, opts.StoreTimeout)

	provider := opts.Provider
	if provider == nil {
		provider = session.NewMockProvider(opts.AuthLatency)
	}

	history := search.NewHistory(store)

	schedulerOpts := []deals.Option{deals.WithTick(opts.DealTick), deals.WithLogger(log)}
	if opts.Clock != nil {
		schedulerOpts = append(schedulerOpts, deals.WithClock(opts.Clock))
	}

	return &Engine{
		logger:    log,
		cache:     queryCache,
		catalog:   index,
		store:     store,
		cart:      cart.New(store, log),
		session:   session.New(provider, store, log),
		history:   history,
		search:    search.NewEngine(index, history),
		debouncer: search.NewDebouncer(opts.SearchDebounce),
		deals:     deals.NewScheduler(index.Deals(), schedulerOpts...),
	}, nil
}

// Init rehidrata carrito, sesión e historial desde el store
func (e *Engine) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("init storefront: %w", err)
	}
	if !e.state.CompareAndSwap(int32(stateCreated), int32(stateReady)) {
		panic("storefront: Init called twice or after Dispose")
	}

	e.cart.Hydrate()
	e.session.Restore()
	e.history.Hydrate()

	e.logger.Info("Storefront ready", map[string]interface{}{
		"products":   len(e.catalog.All()),
		"cart_items": e.cart.ItemCount(),
		"logged_in":  e.session.State().IsAuthenticated,
	})
	return nil
}

// Dispose detiene timers y tickers; es idempotente
func (e *Engine) Dispose() {
	if lifecycle(e.state.Swap(int32(stateDisposed))) == stateDisposed {
		return
	}
	e.debouncer.Stop()
	e.deals.Stop()
	e.cache.Close()
	e.logger.Info("Storefront disposed", nil)
}

// mustBeReady: usar el engine fuera de Init/Dispose es un error de programación
func (e *Engine) mustBeReady() {
	switch lifecycle(e.state.Load()) {
	case stateCreated:
		panic("storefront: engine used before Init")
	case stateDisposed:
		panic("storefront: engine used after Dispose")
	}
}

// Carrito

// AddToCart agrega el producto del catálogo; un id desconocido devuelve
// catalog.ErrProductNotFound
func (e *Engine) AddToCart(productID int) (models.CartSnapshot, error) {
	e.mustBeReady()
	p, ok := e.catalog.ByID(productID)
	if !ok {
		return e.cart.Snapshot(), fmt.Errorf("product %d: %w", productID, catalog.ErrProductNotFound)
	}
	return e.cart.Add(p), nil
}

func (e *Engine) AddProductToCart(p models.Product) models.CartSnapshot {
	e.mustBeReady()
	return e.cart.Add(p)
}

func (e *Engine) RemoveFromCart(productID int) models.CartSnapshot {
	e.mustBeReady()
	return e.cart.Remove(productID)
}

func (e *Engine) SetCartQuantity(productID, quantity int) models.CartSnapshot {
	e.mustBeReady()
	return e.cart.SetQuantity(productID, quantity)
}

func (e *Engine) ClearCart() models.CartSnapshot {
	e.mustBeReady()
	return e.cart.Clear()
}

func (e *Engine) Cart() models.CartSnapshot {
	e.mustBeReady()
	return e.cart.Snapshot()
}

// Sesión

func (e *Engine) Login(ctx context.Context, email, password string) session.Result {
	e.mustBeReady()
	return e.session.Login(ctx, email, password)
}

func (e *Engine) Signup(ctx context.Context, req models.SignupRequest) session.Result {
	e.mustBeReady()
	return e.session.Signup(ctx, req)
}

func (e *Engine) Logout(ctx context.Context) {
	e.mustBeReady()
	e.session.Logout(ctx)
}

func (e *Engine) UpdateProfile(update models.ProfileUpdate) (models.User, error) {
	e.mustBeReady()
	return e.session.UpdateProfile(update)
}

func (e *Engine) ClearAuthError() {
	e.mustBeReady()
	e.session.ClearError()
}

func (e *Engine) Session() session.State {
	e.mustBeReady()
	return e.session.State()
}

// Catálogo

func (e *Engine) Query(criteria catalog.FilterCriteria) []models.Product {
	e.mustBeReady()
	return e.catalog.Query(criteria)
}

func (e *Engine) Product(id int) (models.Product, error) {
	e.mustBeReady()
	p, ok := e.catalog.ByID(id)
	if !ok {
		return models.Product{}, fmt.Errorf("product %d: %w", id, catalog.ErrProductNotFound)
	}
	return p, nil
}

// Related devuelve hasta limit productos de la misma categoría que id
func (e *Engine) Related(id, limit int) ([]models.Product, error) {
	p, err := e.Product(id)
	if err != nil {
		return nil, err
	}
	return e.catalog.RelatedTo(p, limit), nil
}

func (e *Engine) Categories() []models.Category {
	e.mustBeReady()
	return e.catalog.Categories()
}

// Búsqueda

func (e *Engine) Suggest(query string) []search.Suggestion {
	e.mustBeReady()
	return e.search.Suggest(query)
}

// SuggestDebounced entrega a fn las sugerencias de la última query recibida
// cuando pasa la ventana de debounce sin nuevas llamadas
func (e *Engine) SuggestDebounced(query string, fn func([]search.Suggestion)) {
	e.mustBeReady()
	e.debouncer.Trigger(func() {
		fn(e.search.Suggest(query))
	})
}

// CancelSuggest descarta una sugerencia pendiente
func (e *Engine) CancelSuggest() {
	e.mustBeReady()
	e.debouncer.Cancel()
}

func (e *Engine) SelectSuggestion(s search.Suggestion) {
	e.mustBeReady()
	e.search.Select(s)
}

// CommitSearch registra un texto enviado sin elegir sugerencia
func (e *Engine) CommitSearch(text string) {
	e.mustBeReady()
	e.search.Commit(text)
}

func (e *Engine) RecentSearches() []string {
	e.mustBeReady()
	return e.history.Entries()
}

func (e *Engine) ClearRecentSearches() {
	e.mustBeReady()
	e.history.Clear()
}

// Promociones

func (e *Engine) Deals() []models.Deal {
	e.mustBeReady()
	return e.deals.Deals()
}

// Deal devuelve la promoción con sus productos resueltos
func (e *Engine) Deal(id int) (models.Deal, []models.Product, error) {
	e.mustBeReady()
	d, ok := e.catalog.DealByID(id)
	if !ok {
		return models.Deal{}, nil, fmt.Errorf("deal %d: %w", id, deals.ErrDealNotFound)
	}
	return d, e.catalog.DealProducts(d), nil
}

// RemainingTime devuelve deals.ErrDealNotFound si el id no existe
func (e *Engine) RemainingTime(dealID int) (string, error) {
	e.mustBeReady()
	label, ok := e.deals.Remaining(dealID)
	if !ok {
		return "", fmt.Errorf("deal %d: %w", dealID, deals.ErrDealNotFound)
	}
	return label, nil
}

// WatchDeals suscribe fn al ticker de promociones; llamar a cancel al terminar
func (e *Engine) WatchDeals(fn func(deals.Update)) (cancel func()) {
	e.mustBeReady()
	return e.deals.Subscribe(fn)
}
