package invoice_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/application/ports"
	"github.com/jhoicas/freshfruits-billing/internal/domain"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	failSet bool
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
	m.sets++
	if m.failSet {
		return errors.New("disco lleno")
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
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

func (r *recorder) last() ports.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return ports.Notification{}
	}
	return r.items[len(r.items)-1]
}

var fixedNow = time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)

func newSession(t *testing.T, store *memStore) (*invoice.Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	seq := 0
	s, err := invoice.NewSession(context.Background(), store, rec, zerolog.Nop(), invoice.SessionConfig{
		Now:  func() time.Time { return fixedNow },
		IntN: func(int) int { return 4321 },
		NewID: func() string {
			seq++
			return fmt.Sprintf("item-%d", seq)
		},
	})
	require.NoError(t, err)
	return s, rec
}

var (
	apple = entity.Product{ID: "1", Name: "Apple", Price: decimal.NewFromInt(150), Category: "Fruits"}
	mango = entity.Product{ID: "4", Name: "Mango", Price: decimal.NewFromInt(250), Category: "Fruits"}
)

// ──────────────────────────────────────────────────────────────────────────────
// Arranque
// ──────────────────────────────────────────────────────────────────────────────

func TestNewSession_SinDocumentoPersistido_UsaDefaults(t *testing.T) {
	store := newMemStore()
	s, _ := newSession(t, store)

	doc := s.Document()
	assert.Equal(t, "INV-2026-5321", doc.InvoiceNumber)
	assert.Equal(t, "2026-10-19", doc.Date)
	assert.Equal(t, "2026-10-26", doc.DueDate)
	assert.Equal(t, "FreshFruits Co.", doc.CompanyName)
	assert.Empty(t, doc.Items)

	// el documento inicial queda persistido
	assert.NotNil(t, store.data[invoice.StorageKey])
}

func TestNewSession_RestauraDocumentoPersistido(t *testing.T) {
	store := newMemStore()
	store.data[invoice.StorageKey] = []byte(`{
		"invoiceNumber": "INV-2025-7777",
		"date": "2025-01-01",
		"dueDate": "2025-01-08",
		"customerName": "Anita",
		"items": [{"id": 1718000000000, "productId": 1, "name": "Apple", "quantity": 3, "price": 150}],
		"taxRate": 5,
		"discount": 0,
		"notes": "n",
		"terms": "t"
	}`)

	s, _ := newSession(t, store)
	doc := s.Document()

	assert.Equal(t, "INV-2025-7777", doc.InvoiceNumber)
	assert.Equal(t, "Anita", doc.CustomerName)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "1718000000000", doc.Items[0].ID)
	assert.Equal(t, "1", doc.Items[0].ProductID)
	assert.Equal(t, 3, doc.Items[0].Quantity)
	assert.Equal(t, "472.50", s.Totals().Total.StringFixed(2))
}

func TestNewSession_JSONCorrupto_UsaDefaultsYAvisa(t *testing.T) {
	store := newMemStore()
	store.data[invoice.StorageKey] = []byte(`{"invoiceNumber": `)

	s, rec := newSession(t, store)

	assert.Equal(t, "INV-2026-5321", s.Document().InvoiceNumber)
	assert.Equal(t, ports.LevelWarning, rec.last().Level)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_MismoProductoDosVeces_UnaLineaCantidadDos(t *testing.T) {
	s, rec := newSession(t, newMemStore())
	ctx := context.Background()

	first := s.AddProduct(ctx, apple)
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, "Apple added to invoice", rec.last().Message)

	second := s.AddProduct(ctx, apple)
	assert.Equal(t, first.ID, second.ID)
	assert.Contains(t, rec.last().Message, "quantity updated")

	doc := s.Document()
	require.Len(t, doc.Items, 1)
	assert.Equal(t, 2, doc.Items[0].Quantity)
	assert.True(t, doc.Items[0].Price.Equal(decimal.NewFromInt(150)))
}

func TestAddProduct_ProductosDistintos_IDsUnicos(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	ctx := context.Background()

	a := s.AddProduct(ctx, apple)
	m := s.AddProduct(ctx, mango)

	assert.NotEqual(t, a.ID, m.ID)
	doc := s.Document()
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Apple", doc.Items[0].Name)
	assert.Equal(t, "Mango", doc.Items[1].Name)
}

func TestSetQuantity_CeroSeRechaza(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	ctx := context.Background()
	item := s.AddProduct(ctx, apple)
	require.True(t, s.SetQuantity(ctx, item.ID, 4))

	assert.False(t, s.SetQuantity(ctx, item.ID, 0))
	assert.False(t, s.SetQuantity(ctx, item.ID, -3))
	assert.False(t, s.SetQuantity(ctx, "no-existe", 2))

	doc := s.Document()
	require.Len(t, doc.Items, 1, "una cantidad < 1 no elimina la línea")
	assert.Equal(t, 4, doc.Items[0].Quantity)
}

func TestRemoveItem_Idempotente(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	ctx := context.Background()
	a := s.AddProduct(ctx, apple)
	s.AddProduct(ctx, mango)

	assert.True(t, s.RemoveItem(ctx, a.ID))
	before := s.Document()
	assert.False(t, s.RemoveItem(ctx, a.ID))
	after := s.Document()

	assert.Equal(t, before, after)
	require.Len(t, after.Items, 1)
	assert.Equal(t, "Mango", after.Items[0].Name)
}

func TestUpdateField(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	ctx := context.Background()

	require.NoError(t, s.UpdateField(ctx, "customerName", "Ravi"))
	require.NoError(t, s.UpdateField(ctx, "dueDate", "2026-11-01"))
	require.NoError(t, s.UpdateField(ctx, "taxRate", "18"))
	require.NoError(t, s.UpdateField(ctx, "discountPercent", "2.5"))

	doc := s.Document()
	assert.Equal(t, "Ravi", doc.CustomerName)
	assert.Equal(t, "2026-11-01", doc.DueDate)
	assert.Equal(t, "18", doc.TaxRate.String())
	assert.Equal(t, "2.5", doc.Discount.String())

	t.Run("porcentaje ilegible queda en cero", func(t *testing.T) {
		require.NoError(t, s.UpdateField(ctx, "taxRate", "abc"))
		assert.True(t, s.Document().TaxRate.IsZero())
	})

	t.Run("porcentaje con texto al final conserva el número inicial", func(t *testing.T) {
		for in, want := range map[string]string{"12abc": "12", " 7.5 %": "7.5", ".5x": "0.5", "1e1y": "10"} {
			require.NoError(t, s.UpdateField(ctx, "taxRate", in))
			assert.Equal(t, want, s.Document().TaxRate.String(), in)
		}
	})

	t.Run("porcentaje negativo", func(t *testing.T) {
		err := s.UpdateField(ctx, "discount", "-1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, "2.5", s.Document().Discount.String())
	})

	t.Run("campo desconocido", func(t *testing.T) {
		assert.ErrorIs(t, s.UpdateField(ctx, "items", "x"), domain.ErrInvalidInput)
	})
}

func TestTotals_Escenario(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	ctx := context.Background()
	a := s.AddProduct(ctx, apple)
	s.SetQuantity(ctx, a.ID, 2)
	s.AddProduct(ctx, mango)
	require.NoError(t, s.UpdateField(ctx, "taxRate", "10"))
	require.NoError(t, s.UpdateField(ctx, "discount", "5"))

	tot := s.Totals()
	assert.Equal(t, "550.00", tot.Subtotal.StringFixed(2))
	assert.Equal(t, "55.00", tot.Tax.StringFixed(2))
	assert.Equal(t, "27.50", tot.Discount.StringFixed(2))
	assert.Equal(t, "577.50", tot.Total.StringFixed(2))
}

func TestRegenerateInvoiceNumber(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	num := s.RegenerateInvoiceNumber(context.Background())
	assert.Regexp(t, `^INV-2026-\d{4}$`, num)
	assert.Equal(t, num, s.Document().InvoiceNumber)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()

	t.Run("sin confirmación no cambia nada", func(t *testing.T) {
		store := newMemStore()
		s, _ := newSession(t, store)
		s.AddProduct(ctx, apple)

		var asked string
		err := s.ClearAll(ctx, func(p string) bool { asked = p; return false })

		assert.ErrorIs(t, err, domain.ErrNotConfirmed)
		assert.Equal(t, invoice.ClearPrompt, asked)
		assert.Len(t, s.Document().Items, 1)
		assert.NotNil(t, store.data[invoice.StorageKey])
	})

	t.Run("confirmado reinicia y borra lo persistido", func(t *testing.T) {
		store := newMemStore()
		s, _ := newSession(t, store)
		s.AddProduct(ctx, apple)
		require.NoError(t, s.UpdateField(ctx, "taxRate", "12"))
		require.NoError(t, s.UpdateField(ctx, "customerName", "Ravi"))

		require.NoError(t, s.ClearAll(ctx, func(string) bool { return true }))

		doc := s.Document()
		assert.Empty(t, doc.Items)
		assert.Empty(t, doc.CustomerName)
		assert.True(t, doc.TaxRate.IsZero())
		assert.Equal(t, "2026-10-26", doc.DueDate)
		assert.Nil(t, store.data[invoice.StorageKey])
	})
}

func TestPersistencia_CadaMutacionEscribe(t *testing.T) {
	store := newMemStore()
	s, _ := newSession(t, store)
	ctx := context.Background()
	base := store.sets

	item := s.AddProduct(ctx, apple)
	s.SetQuantity(ctx, item.ID, 3)
	require.NoError(t, s.UpdateField(ctx, "notes", "gracias"))
	s.RemoveItem(ctx, item.ID)

	assert.Equal(t, base+4, store.sets)

	var persisted entity.Invoice
	require.NoError(t, json.Unmarshal(store.data[invoice.StorageKey], &persisted))
	assert.Equal(t, "gracias", persisted.Notes)
	assert.Empty(t, persisted.Items)
}

func TestPersistencia_FalloDeEscrituraNoRompeLaOperacion(t *testing.T) {
	store := newMemStore()
	s, _ := newSession(t, store)
	store.failSet = true

	item := s.AddProduct(context.Background(), apple)
	assert.Equal(t, 1, item.Quantity)
	assert.Len(t, s.Document().Items, 1)
}

func TestDocumento_RoundTripJSON(t *testing.T) {
	s, _ := newSession(t, newMemStore())
	ctx := context.Background()
	s.AddProduct(ctx, apple)
	s.AddProduct(ctx, entity.Product{ID: "x", Name: "Kiwi", Price: decimal.RequireFromString("180.75")})
	require.NoError(t, s.UpdateField(ctx, "taxRate", "7.25"))

	orig := s.Document()
	raw, err := json.Marshal(orig)
	require.NoError(t, err)

	var back entity.Invoice
	require.NoError(t, json.Unmarshal(raw, &back))
	raw2, err := json.Marshal(&back)
	require.NoError(t, err)

	assert.JSONEq(t, string(raw), string(raw2))
	require.Len(t, back.Items, 2)
	assert.True(t, back.Items[1].Price.Equal(orig.Items[1].Price))
	assert.True(t, back.TaxRate.Equal(orig.TaxRate))
}
