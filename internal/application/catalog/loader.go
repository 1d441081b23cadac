package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

// TTL por defecto de cada nivel.
const (
	DefaultShortTTL = 30 * time.Second
	DefaultLongTTL  = time.Minute
)

// LoaderConfig parámetros de la caché de dos niveles.
type LoaderConfig struct {
	ShortTTL time.Duration
	LongTTL  time.Duration
	Now      func() time.Time
}

// Loader catálogo dinámico: feed remoto detrás de dos niveles de caché.
//
//	corto (sesión) ──miss──▶ largo (durable) ──miss──▶ feed
//	      ▲                        │
//	      └────── promoción ───────┘
type Loader struct {
	feed     Feed
	short    *cacheTier
	long     *cacheTier
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time

	// mu hace atómico leer nivel → decidir → escribir nivel para una misma carga.
	mu       sync.Mutex
	inflight atomic.Int32

	stateMu sync.RWMutex
	current []entity.Product
}

var _ Catalog = (*Loader)(nil)

// NewLoader construye el cargador. shortStore suele ser en memoria (sesión) y longStore durable.
func NewLoader(
	feed Feed,
	shortStore, longStore repository.KeyValueStore,
	notifier ports.Notifier,
	log zerolog.Logger,
	cfg LoaderConfig,
) *Loader {
	if cfg.ShortTTL <= 0 {
		cfg.ShortTTL = DefaultShortTTL
	}
	if cfg.LongTTL <= 0 {
		cfg.LongTTL = DefaultLongTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log = log.With().Str("component", "catalog_loader").Logger()
	return &Loader{
		feed:     feed,
		short:    &cacheTier{name: "short", store: shortStore, key: ShortTierKey, ttl: cfg.ShortTTL, log: log},
		long:     &cacheTier{name: "long", store: longStore, key: LongTierKey, ttl: cfg.LongTTL, log: log},
		notifier: notifier,
		log:      log,
		now:      cfg.Now,
	}
}

// Load resuelve el catálogo:
//  1. forceRefresh invalida ambos niveles;
//  2. nivel corto vigente → se devuelve sin red;
//  3. nivel largo vigente → se devuelve y se copia al corto;
//  4. si no, se consulta el feed y se escriben ambos niveles;
//  5. si el feed falla, se usa cualquier nivel almacenado aunque esté vencido;
//     sin nada almacenado se devuelve una lista vacía.
func (l *Loader) Load(ctx context.Context, forceRefresh bool) []entity.Product {
	l.inflight.Add(1)
	defer l.inflight.Add(-1)

	l.mu.Lock()
	products := l.resolve(ctx, forceRefresh)
	l.mu.Unlock()

	l.stateMu.Lock()
	l.current = products
	l.stateMu.Unlock()
	return cloneProducts(products)
}

func (l *Loader) resolve(ctx context.Context, forceRefresh bool) []entity.Product {
	now := l.now()

	if forceRefresh {
		l.short.evict(ctx)
		l.long.evict(ctx)
	} else {
		if e, ok := l.short.read(ctx); ok && e.fresh(now) {
			l.log.Debug().Int("products", len(e.Products)).Msg("catálogo desde caché corta")
			return e.Products
		}
		if e, ok := l.long.read(ctx); ok && e.fresh(now) {
			l.log.Debug().Int("products", len(e.Products)).Msg("catálogo desde caché larga, promovido a corta")
			l.short.write(ctx, e.Products, now)
			return e.Products
		}
	}

	products, err := l.feed.FetchProducts(ctx)
	if err == nil {
		if products == nil {
			products = []entity.Product{}
		}
		now = l.now()
		l.long.write(ctx, products, now)
		l.short.write(ctx, products, now)
		l.log.Info().Int("products", len(products)).Msg("catálogo descargado")
		l.notify(ports.LevelSuccess, fmt.Sprintf("Loaded %d products", len(products)))
		return products
	}

	l.log.Warn().Err(err).Msg("descarga del catálogo fallida")
	if e, ok := l.short.read(ctx); ok {
		l.notify(ports.LevelWarning, "Could not reach product feed; showing cached products")
		return e.Products
	}
	if e, ok := l.long.read(ctx); ok {
		l.notify(ports.LevelWarning, "Could not reach product feed; showing cached products")
		return e.Products
	}
	l.notify(ports.LevelError, "Failed to load products")
	return []entity.Product{}
}

// Refresh fuerza una recarga. Si ya hay una carga en curso solo avisa y devuelve la lista vigente;
// la carga anterior no se cancela.
func (l *Loader) Refresh(ctx context.Context) []entity.Product {
	if l.inflight.Load() > 0 {
		l.notify(ports.LevelInfo, "Products are already loading")
		return l.Products()
	}
	return l.Load(ctx, true)
}

// ClearCaches invalida ambos niveles y recarga desde el feed.
func (l *Loader) ClearCaches(ctx context.Context) []entity.Product {
	l.mu.Lock()
	l.short.evict(ctx)
	l.long.evict(ctx)
	l.mu.Unlock()
	l.log.Info().Msg("cachés del catálogo invalidadas")
	l.notify(ports.LevelInfo, "Product cache cleared")
	return l.Load(ctx, true)
}

// Products devuelve la última lista resuelta (vacía si nunca se cargó).
func (l *Loader) Products() []entity.Product {
	l.stateMu.RLock()
	defer l.stateMu.RUnlock()
	return cloneProducts(l.current)
}

// Find busca en la lista vigente. Si no está (lista vacía tras un fallo, o producto nuevo en el feed)
// vuelve a resolver el catálogo una vez y busca de nuevo.
func (l *Loader) Find(ctx context.Context, id string) (entity.Product, bool) {
	l.stateMu.RLock()
	p, ok := findProduct(l.current, id)
	l.stateMu.RUnlock()
	if ok {
		return p, true
	}
	return findProduct(l.Load(ctx, false), id)
}

func (l *Loader) notify(level, msg string) {
	if l.notifier != nil {
		l.notifier.Notify(level, msg)
	}
}
