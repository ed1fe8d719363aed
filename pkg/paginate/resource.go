package paginate

import (
	"context"
	"sync"

	"github.com/platinummonkey/backoffice/pkg/async"
	"github.com/platinummonkey/backoffice/pkg/observability"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Options configures a Resource. Zero values select the defaults.
type Options struct {
	InitialPage  int
	InitialLimit int
	// Disabled holds all fetching until SetEnabled(true)
	Disabled bool
	Logger   *observability.Logger
}

// Resource is a paginated collection kept in sync with its fetcher. It is
// safe for concurrent use.
type Resource[T any] struct {
	fetch  Fetcher[T]
	logger *observability.Logger

	mu         sync.Mutex
	ctx        context.Context
	started    bool
	enabled    bool
	page       int
	limit      int
	data       []T
	meta       Meta
	loading    bool
	err        string
	refreshKey string
	seq        uint64

	inflight sync.WaitGroup

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSub     int
}

// New creates a Resource. No fetch happens until Start.
func New[T any](fetch Fetcher[T], opts Options) *Resource[T] {
	page := opts.InitialPage
	if page == 0 {
		page = DefaultPage
	}
	limit := opts.InitialLimit
	if limit == 0 {
		limit = DefaultLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	return &Resource[T]{
		fetch:   fetch,
		logger:  logger,
		ctx:     context.Background(),
		enabled: !opts.Disabled,
		page:    page,
		limit:   limit,
		data:    []T{},
		meta: Meta{
			Page:       page,
			Limit:      limit,
			Total:      0,
			TotalPages: 1,
		},
		subscribers: make(map[int]func()),
	}
}

// Start issues the initial fetch. ctx is passed to every fetch the Resource
// makes from now on.
func (r *Resource[T]) Start(ctx context.Context) {
	r.mu.Lock()
	r.ctx = ctx
	r.started = true
	r.mu.Unlock()

	r.load()
}

// SetPage moves to page and fetches it. Values are not clamped to the known
// page range. Setting the current page is a no-op.
func (r *Resource[T]) SetPage(page int) {
	r.mu.Lock()
	changed := r.page != page
	r.page = page
	r.mu.Unlock()

	if changed {
		r.load()
	}
}

// SetLimit changes the page size and refetches. The page is kept.
func (r *Resource[T]) SetLimit(limit int) {
	r.mu.Lock()
	changed := r.limit != limit
	r.limit = limit
	r.mu.Unlock()

	if changed {
		r.load()
	}
}

// ResetToFirstPage is SetPage(1)
func (r *Resource[T]) ResetToFirstPage() {
	r.SetPage(DefaultPage)
}

// Refetch reloads the current page unconditionally
func (r *Resource[T]) Refetch() {
	r.load()
}

// SetRefreshKey refetches when key differs from the previous key. Callers
// bump it after a successful mutation.
func (r *Resource[T]) SetRefreshKey(key string) {
	r.mu.Lock()
	changed := r.refreshKey != key
	r.refreshKey = key
	r.mu.Unlock()

	if changed {
		r.load()
	}
}

// SetEnabled toggles fetching. Enabling a started Resource fetches the
// current page.
func (r *Resource[T]) SetEnabled(enabled bool) {
	r.mu.Lock()
	changed := r.enabled != enabled
	r.enabled = enabled
	r.mu.Unlock()

	if changed && enabled {
		r.load()
	}
}

// Snapshot returns a copy of the current state
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]T, len(r.data))
	copy(data, r.data)

	return State[T]{
		Page:    r.page,
		Limit:   r.limit,
		Data:    data,
		Meta:    r.meta,
		Loading: r.loading,
		Err:     r.err,
	}
}

// Subscribe registers fn to be called after every state change. fn runs on
// the goroutine that made the change and must not block. The returned func
// removes the subscription.
func (r *Resource[T]) Subscribe(fn func()) (unsubscribe func()) {
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subscribers[id] = fn
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		delete(r.subscribers, id)
		r.subMu.Unlock()
	}
}

// Wait blocks until every issued fetch has completed
func (r *Resource[T]) Wait() {
	r.inflight.Wait()
}

func (r *Resource[T]) notify() {
	r.subMu.Lock()
	fns := make([]func(), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (r *Resource[T]) load() {
	r.mu.Lock()
	if !r.started || !r.enabled {
		r.mu.Unlock()
		return
	}
	r.seq++
	id := r.seq
	page, limit, ctx := r.page, r.limit, r.ctx
	r.loading = true
	r.err = ""
	r.inflight.Add(1)
	r.mu.Unlock()

	r.notify()

	async.SafeGoNoError(ctx, r.logger, 0, "paginate fetch", func(ctx context.Context) {
		defer r.inflight.Done()
		defer observability.RecoverPanicWithCallback(r.logger, "paginate fetch", func() {
			r.complete(id, nil, errFetchPanicked)
		})

		result, err := r.fetch(ctx, page, limit)
		r.complete(id, result, err)
	})
}

func (r *Resource[T]) complete(id uint64, result *Page[T], err error) {
	r.mu.Lock()
	if latest := r.seq; id != latest {
		r.mu.Unlock()
		r.logger.WithFields(map[string]interface{}{
			"request": id,
			"latest":  latest,
		}).Debug("discarding stale page response")
		return
	}

	switch {
	case err != nil:
		r.err = errorMessage(err)
	case result != nil:
		r.data = result.Data
		if r.data == nil {
			r.data = []T{}
		}
		r.meta = result.Meta
	}
	r.loading = false
	r.mu.Unlock()

	r.notify()
}
