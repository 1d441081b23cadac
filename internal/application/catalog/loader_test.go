package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeFeed struct {
	calls    atomic.Int32
	products []entity.Product
	err      error
	block    chan struct{} // si no es nil, FetchProducts espera a que se cierre
	started  chan struct{}
}

func (f *fakeFeed) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	f.calls.Add(1)
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type recorder struct {
	mu    sync.Mutex
	items []ports.Notification
}

func (r *recorder) Notify(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, ports.Notification{Level: level, Message: msg})
}

func (r *recorder) count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Level == level {
			n++
		}
	}
	return n
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	loader *catalog.Loader
	feed   *fakeFeed
	short  *memStore
	long   *memStore
	rec    *recorder
	clk    *clock
}

func feedProducts() []entity.Product {
	return []entity.Product{
		{ID: "1", Name: "Apple", Price: decimal.NewFromInt(160), Category: "Fruits"},
		{ID: "2", Name: "Banana", Price: decimal.NewFromInt(85), Category: "Fruits"},
	}
}

func newFixture() *fixture {
	f := &fixture{
		feed:  &fakeFeed{products: feedProducts()},
		short: newMemStore(),
		long:  newMemStore(),
		rec:   &recorder{},
		clk:   &clock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)},
	}
	f.loader = catalog.NewLoader(f.feed, f.short, f.long, f.rec, zerolog.Nop(), catalog.LoaderConfig{
		ShortTTL: 30 * time.Second,
		LongTTL:  time.Minute,
		Now:      f.clk.now,
	})
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_PrimeraCargaDescargaYEscribeAmbosNiveles(t *testing.T) {
	f := newFixture()

	got := f.loader.Load(context.Background(), false)

	require.Len(t, got, 2)
	assert.Equal(t, int32(1), f.feed.calls.Load())
	assert.True(t, f.short.has(catalog.ShortTierKey))
	assert.True(t, f.long.has(catalog.LongTierKey))
	assert.Equal(t, 1, f.rec.count(ports.LevelSuccess))
}

func TestLoad_CacheCortaVigente_SinRed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)
	f.clk.advance(10 * time.Second)

	got := f.loader.Load(ctx, false)

	require.Len(t, got, 2)
	assert.Equal(t, int32(1), f.feed.calls.Load(), "no debe haber una segunda llamada de red")
}

func TestLoad_CacheLargaVigente_PromueveACorta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)
	f.clk.advance(45 * time.Second) // corta vencida (30s), larga vigente (60s)
	f.short.data = map[string][]byte{}

	got := f.loader.Load(ctx, false)

	require.Len(t, got, 2)
	assert.Equal(t, int32(1), f.feed.calls.Load())
	assert.True(t, f.short.has(catalog.ShortTierKey), "la entrada larga se copia al nivel corto")

	// la corta promovida sirve sin red durante su propio TTL
	f.clk.advance(20 * time.Second)
	f.loader.Load(ctx, false)
	assert.Equal(t, int32(1), f.feed.calls.Load())
}

func TestLoad_AmbosVencidos_Descarga(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)
	f.clk.advance(2 * time.Minute)

	f.loader.Load(ctx, false)
	assert.Equal(t, int32(2), f.feed.calls.Load())
}

func TestLoad_ForceRefreshIgnoraCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)

	f.feed.products = append(feedProducts(), entity.Product{ID: "3", Name: "Kiwi", Price: decimal.NewFromInt(190)})
	got := f.loader.Load(ctx, true)

	assert.Len(t, got, 3)
	assert.Equal(t, int32(2), f.feed.calls.Load())
}

func TestLoad_FalloSinCache_ListaVaciaYUnSoloError(t *testing.T) {
	f := newFixture()
	f.feed.err = errors.New("dial tcp: timeout")

	got := f.loader.Load(context.Background(), false)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, f.rec.count(ports.LevelError))
	assert.Equal(t, 0, f.rec.count(ports.LevelWarning))
}

func TestLoad_FalloConCacheVencida_UsaCacheYAvisa(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)
	f.clk.advance(10 * time.Minute)
	f.feed.err = errors.New("HTTP 503")

	got := f.loader.Load(ctx, false)

	require.Len(t, got, 2)
	assert.Equal(t, "Apple", got[0].Name)
	assert.Equal(t, 1, f.rec.count(ports.LevelWarning))
	assert.Equal(t, 0, f.rec.count(ports.LevelError))
}

func TestLoad_FalloConSoloCacheLarga(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)
	f.short.data = map[string][]byte{}
	f.clk.advance(10 * time.Minute)
	f.feed.err = errors.New("HTTP 503")

	got := f.loader.Load(ctx, false)
	assert.Len(t, got, 2)
}

func TestLoad_CacheIlegibleSeIgnora(t *testing.T) {
	f := newFixture()
	f.short.data[catalog.ShortTierKey] = []byte("{no-json")

	got := f.loader.Load(context.Background(), false)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(1), f.feed.calls.Load())
}

func TestRefresh_ConCargaEnCurso_SoloAvisa(t *testing.T) {
	f := newFixture()
	f.feed.block = make(chan struct{})
	f.feed.started = make(chan struct{})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		f.loader.Load(ctx, true)
		close(done)
	}()
	<-f.feed.started

	f.loader.Refresh(ctx)
	assert.Equal(t, 1, f.rec.count(ports.LevelInfo))

	close(f.feed.block)
	<-done
	assert.Equal(t, int32(1), f.feed.calls.Load())
}

func TestRefresh_SinCargaEnCurso_Descarga(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)

	f.loader.Refresh(ctx)
	assert.Equal(t, int32(2), f.feed.calls.Load())
}

func TestClearCaches_InvalidaYRecarga(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.loader.Load(ctx, false)

	got := f.loader.ClearCaches(ctx)

	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), f.feed.calls.Load())
	assert.True(t, f.short.has(catalog.ShortTierKey))
}

func TestFind_CargaSiHaceFalta(t *testing.T) {
	f := newFixture()

	p, ok := f.loader.Find(context.Background(), "2")
	require.True(t, ok)
	assert.Equal(t, "Banana", p.Name)

	_, ok = f.loader.Find(context.Background(), "99")
	assert.False(t, ok)
	assert.Equal(t, int32(1), f.feed.calls.Load())
}

func TestFind_TrasFalloInicialReintentaCuandoElFeedVuelve(t *testing.T) {
	f := newFixture()
	f.feed.err = errors.New("dial tcp: timeout")
	require.Empty(t, f.loader.Load(context.Background(), false))

	f.feed.err = nil
	p, ok := f.loader.Find(context.Background(), "1")
	require.True(t, ok)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, int32(2), f.feed.calls.Load())
	assert.Len(t, f.loader.Products(), 2)
}

func TestStatic(t *testing.T) {
	rec := &recorder{}
	s := catalog.NewStatic(nil, rec)
	ctx := context.Background()

	list := s.Load(ctx, false)
	require.Len(t, list, 10)
	assert.Equal(t, "Apple", list[0].Name)
	assert.Equal(t, "150", list[0].Price.String())

	p, ok := s.Find(ctx, "4")
	require.True(t, ok)
	assert.Equal(t, "Mango", p.Name)

	s.Refresh(ctx)
	assert.Equal(t, 1, rec.count(ports.LevelInfo))
}

func TestProduct_RenderKeyCambiaConElPrecio(t *testing.T) {
	a := entity.Product{ID: "1", Price: decimal.NewFromInt(150)}
	b := entity.Product{ID: "1", Price: decimal.NewFromInt(160)}
	assert.NotEqual(t, a.RenderKey(), b.RenderKey())
	assert.Equal(t, "1:150", a.RenderKey())
}
