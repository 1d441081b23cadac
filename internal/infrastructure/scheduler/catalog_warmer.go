// Package scheduler tareas periódicas del servicio (robfig/cron).
package scheduler

import (
	"context"
	"fmt"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
)

// CatalogWarmer recarga el catálogo según un horario cron para que las cachés
// se renueven sin esperar a la próxima petición del operador.
type CatalogWarmer struct {
	cron    *cron.Cron
	catalog catalog.Catalog
	timeout time.Duration
	log     zerolog.Logger
}

// NewCatalogWarmer valida el horario (cron estándar o descriptores como "@every 45s").
func NewCatalogWarmer(schedule string, cat catalog.Catalog, timeout time.Duration, log zerolog.Logger) (*CatalogWarmer, error) {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	w := &CatalogWarmer{
		cron:    cron.New(),
		catalog: cat,
		timeout: timeout,
		log:     log.With().Str("component", "catalog_warmer").Logger(),
	}
	if _, err := w.cron.AddFunc(schedule, w.warm); err != nil {
		return nil, fmt.Errorf("scheduler: horario inválido %q: %w", schedule, err)
	}
	return w, nil
}

// Start arranca el cron en segundo plano.
func (w *CatalogWarmer) Start() {
	w.cron.Start()
	w.log.Info().Msg("precarga del catálogo programada")
}

// Stop detiene el cron y espera a que termine la ejecución en curso.
func (w *CatalogWarmer) Stop() {
	<-w.cron.Stop().Done()
}

func (w *CatalogWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	products := w.catalog.Load(ctx, false)
	w.log.Debug().Int("products", len(products)).Msg("catálogo precargado")
}
