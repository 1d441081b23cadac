// Package invoice implementa la sesión de facturación del operador: el documento editable,
// sus totales derivados y la persistencia tras cada cambio.
package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
	"github.com/jhoicas/freshfruits-billing/internal/domain"
	"github.com/jhoicas/freshfruits-billing/internal/domain/billing"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

// StorageKey clave fija del documento en el almacenamiento durable.
const StorageKey = "freshfruits_invoice"

// ClearPrompt texto que se le muestra al operador antes de borrar todo.
const ClearPrompt = "Are you sure you want to clear all data? This cannot be undone."

// Confirm pide confirmación interactiva al operador; true = aceptado.
type Confirm func(prompt string) bool

// SessionConfig dependencias opcionales de la sesión (reloj, aleatoriedad, IDs).
type SessionConfig struct {
	Company entity.CompanyProfile
	Now     func() time.Time
	IntN    billing.IntN
	NewID   func() string
}

func (c *SessionConfig) applyDefaults() {
	if c.Company == (entity.CompanyProfile{}) {
		c.Company = entity.DefaultCompanyProfile()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = func() string { return uuid.New().String() }
	}
}

// Session es el dueño exclusivo del documento de factura. Todas las operaciones son síncronas;
// el mutex serializa los handlers HTTP concurrentes.
type Session struct {
	mu       sync.Mutex
	doc      *entity.Invoice
	store    repository.KeyValueStore
	notifier ports.Notifier
	log      zerolog.Logger
	cfg      SessionConfig
}

// NewSession restaura el documento persistido o construye uno por defecto.
// Un JSON persistido corrupto no aborta el arranque: se registra y se usa el documento por defecto.
func NewSession(
	ctx context.Context,
	store repository.KeyValueStore,
	notifier ports.Notifier,
	log zerolog.Logger,
	cfg SessionConfig,
) (*Session, error) {
	cfg.applyDefaults()
	s := &Session{
		store:    store,
		notifier: notifier,
		log:      log.With().Str("component", "invoice_session").Logger(),
		cfg:      cfg,
	}

	raw, err := store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("invoice: leer documento persistido: %w", err)
	}
	if raw != nil {
		var doc entity.Invoice
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.log.Warn().Err(err).Msg("documento persistido inválido, se usa uno nuevo")
			s.notify(ports.LevelWarning, "Saved invoice could not be read; started a new one")
		} else {
			if doc.Items == nil {
				doc.Items = []entity.LineItem{}
			}
			s.doc = &doc
			s.log.Info().Str("invoice_number", doc.InvoiceNumber).Int("items", len(doc.Items)).
				Msg("factura restaurada")
		}
	}
	if s.doc == nil {
		s.doc = s.newDefault()
	}
	s.persistLocked(ctx)
	return s, nil
}

func (s *Session) newDefault() *entity.Invoice {
	return billing.NewDefaultInvoice(s.cfg.Now(), s.cfg.Company, s.cfg.IntN)
}

// Document devuelve una copia del documento actual.
func (s *Session) Document() *entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Totals recalcula los montos derivados del documento actual.
func (s *Session) Totals() billing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return billing.InvoiceTotals(s.doc)
}

// Snapshot devuelve documento y totales consistentes entre sí.
func (s *Session) Snapshot() (*entity.Invoice, billing.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), billing.InvoiceTotals(s.doc)
}

// AddProduct suma 1 a la línea del producto si ya existe; si no, agrega una línea con cantidad 1.
// Devuelve la línea resultante.
func (s *Session) AddProduct(ctx context.Context, product entity.Product) entity.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.doc.ItemIndexByProduct(product.ID); idx >= 0 {
		s.doc.Items[idx].Quantity++
		item := s.doc.Items[idx]
		s.persistLocked(ctx)
		s.notify(ports.LevelSuccess, fmt.Sprintf("%s quantity updated to %d", item.Name, item.Quantity))
		return item
	}

	item := entity.LineItem{
		ID:        s.cfg.NewID(),
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  1,
		Price:     product.Price,
	}
	s.doc.Items = append(s.doc.Items, item)
	s.persistLocked(ctx)
	s.notify(ports.LevelSuccess, fmt.Sprintf("%s added to invoice", item.Name))
	return item
}

// SetQuantity reemplaza la cantidad de la línea. Una cantidad < 1 se ignora (no elimina la línea).
// Devuelve true si hubo cambio.
func (s *Session) SetQuantity(ctx context.Context, itemID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.doc.ItemIndex(itemID)
	if idx < 0 {
		return false
	}
	s.doc.Items[idx].Quantity = quantity
	s.persistLocked(ctx)
	return true
}

// RemoveItem elimina la línea; sobre un ID inexistente no hace nada.
func (s *Session) RemoveItem(ctx context.Context, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.doc.ItemIndex(itemID)
	if idx < 0 {
		return false
	}
	s.doc.Items = append(s.doc.Items[:idx], s.doc.Items[idx+1:]...)
	s.persistLocked(ctx)
	return true
}

// Campos escalares editables vía UpdateField.
var textFields = map[string]func(*entity.Invoice, string){
	"invoiceNumber":   func(d *entity.Invoice, v string) { d.InvoiceNumber = v },
	"date":            func(d *entity.Invoice, v string) { d.Date = v },
	"dueDate":         func(d *entity.Invoice, v string) { d.DueDate = v },
	"customerName":    func(d *entity.Invoice, v string) { d.CustomerName = v },
	"customerEmail":   func(d *entity.Invoice, v string) { d.CustomerEmail = v },
	"customerPhone":   func(d *entity.Invoice, v string) { d.CustomerPhone = v },
	"customerAddress": func(d *entity.Invoice, v string) { d.CustomerAddress = v },
	"notes":           func(d *entity.Invoice, v string) { d.Notes = v },
	"terms":           func(d *entity.Invoice, v string) { d.Terms = v },
}

var percentFields = map[string]func(*entity.Invoice, decimal.Decimal){
	"taxRate":         func(d *entity.Invoice, v decimal.Decimal) { d.TaxRate = v },
	"discount":        func(d *entity.Invoice, v decimal.Decimal) { d.Discount = v },
	"discountPercent": func(d *entity.Invoice, v decimal.Decimal) { d.Discount = v },
}

// leadingNumber prefijo numérico de un porcentaje ("12abc" → "12").
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parsePercent toma el número inicial del texto; sin número inicial vale 0.
func parsePercent(value string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimSpace(value))
	if m == "" {
		return decimal.Zero
	}
	pct, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return decimal.Zero
	}
	return pct
}

// UpdateField asigna un campo escalar de la factura.
// Los porcentajes toman el número inicial del texto (0 si no hay); los negativos son ErrInvalidInput.
func (s *Session) UpdateField(ctx context.Context, field, value string) error {
	if set, ok := textFields[field]; ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		set(s.doc, value)
		s.persistLocked(ctx)
		return nil
	}
	set, ok := percentFields[field]
	if !ok {
		return fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
	}
	pct := parsePercent(value)
	if pct.IsNegative() {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set(s.doc, pct)
	s.persistLocked(ctx)
	return nil
}

// RegenerateInvoiceNumber reemplaza el número por uno nuevo (sin verificar colisiones).
func (s *Session) RegenerateInvoiceNumber(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.InvoiceNumber = billing.NewInvoiceNumber(s.cfg.Now(), s.cfg.IntN)
	s.persistLocked(ctx)
	return s.doc.InvoiceNumber
}

// ClearAll pide confirmación y, si se acepta, reinicia el documento y borra la copia persistida.
func (s *Session) ClearAll(ctx context.Context, confirm Confirm) error {
	if confirm == nil || !confirm(ClearPrompt) {
		return domain.ErrNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = s.newDefault()
	if err := s.store.Delete(ctx, StorageKey); err != nil {
		s.log.Error().Err(err).Msg("borrar documento persistido")
	}
	s.log.Info().Str("invoice_number", s.doc.InvoiceNumber).Msg("factura reiniciada")
	s.notify(ports.LevelSuccess, "All data cleared")
	return nil
}

// persistLocked serializa el documento completo. Los errores de escritura solo se registran.
func (s *Session) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.doc)
	if err != nil {
		s.log.Error().Err(err).Msg("serializar factura")
		return
	}
	if err := s.store.Set(ctx, StorageKey, raw); err != nil {
		s.log.Error().Err(err).Msg("persistir factura")
	}
}

func (s *Session) notify(level, msg string) {
	if s.notifier != nil {
		s.notifier.Notify(level, msg)
	}
}
