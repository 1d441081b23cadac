package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

// Claves de los dos niveles de caché.
const (
	LongTierKey  = "freshfruits_products_cache"
	ShortTierKey = "freshfruits_products"
)

// cacheEntry formato persistido de un nivel: {products, timestamp, expiresAt} en milisegundos unix.
type cacheEntry struct {
	Products  []entity.Product `json:"products"`
	Timestamp int64            `json:"timestamp"`
	ExpiresAt int64            `json:"expiresAt"`
}

func (e cacheEntry) fresh(now time.Time) bool {
	return now.UnixMilli() < e.ExpiresAt
}

// cacheTier un nivel de caché: almacenamiento + clave + TTL propio.
type cacheTier struct {
	name  string
	store repository.KeyValueStore
	key   string
	ttl   time.Duration
	log   zerolog.Logger
}

// read devuelve la entrada almacenada sin mirar la expiración. Un valor ilegible cuenta como ausente.
func (t *cacheTier) read(ctx context.Context) (cacheEntry, bool) {
	raw, err := t.store.Get(ctx, t.key)
	if err != nil {
		t.log.Warn().Err(err).Str("tier", t.name).Msg("leer caché")
		return cacheEntry{}, false
	}
	if raw == nil {
		return cacheEntry{}, false
	}
	var e cacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		t.log.Warn().Err(err).Str("tier", t.name).Msg("caché ilegible, se ignora")
		return cacheEntry{}, false
	}
	return e, true
}

func (t *cacheTier) write(ctx context.Context, products []entity.Product, now time.Time) {
	e := cacheEntry{
		Products:  products,
		Timestamp: now.UnixMilli(),
		ExpiresAt: now.Add(t.ttl).UnixMilli(),
	}
	raw, err := json.Marshal(e)
	if err != nil {
		t.log.Error().Err(err).Str("tier", t.name).Msg("serializar caché")
		return
	}
	if err := t.store.Set(ctx, t.key, raw); err != nil {
		t.log.Error().Err(err).Str("tier", t.name).Msg("escribir caché")
	}
}

func (t *cacheTier) evict(ctx context.Context) {
	if err := t.store.Delete(ctx, t.key); err != nil {
		t.log.Error().Err(err).Str("tier", t.name).Msg("invalidar caché")
	}
}
