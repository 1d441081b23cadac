// Package sheets implementa el feed remoto del catálogo: la exportación CSV publicada
// de una hoja de cálculo con columnas ID, Name, Price, Category.
package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
)

// Verificar en tiempo de compilación que FeedClient implementa catalog.Feed.
var _ catalog.Feed = (*FeedClient)(nil)

// DefaultCategory se asigna a las filas sin categoría.
const DefaultCategory = "General"

// ErrMissingColumns el CSV no trae las columnas mínimas (Name y Price).
var ErrMissingColumns = errors.New("sheets: el CSV no tiene columnas Name y Price")

// FeedClient descarga y decodifica el CSV publicado.
type FeedClient struct {
	feedURL    string
	httpClient *http.Client
	log        zerolog.Logger
	now        func() time.Time
}

// NewFeedClient construye el cliente. timeout <= 0 usa 15 s.
func NewFeedClient(feedURL string, timeout time.Duration, log zerolog.Logger) *FeedClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FeedClient{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "sheets_feed").Logger(),
		now:        time.Now,
	}
}

// FetchProducts hace GET al feed con un parámetro t=<milisegundos> para saltar cachés intermedias.
func (c *FeedClient) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	if c.feedURL == "" {
		return nil, fmt.Errorf("sheets: CATALOG_FEED_URL no configurado")
	}
	u, err := url.Parse(c.feedURL)
	if err != nil {
		return nil, fmt.Errorf("sheets: URL inválida: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets: llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("sheets: HTTP %d", resp.StatusCode)
	}

	products, err := DecodeProducts(resp.Body)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("products", len(products)).Msg("feed decodificado")
	return products, nil
}

// Variantes aceptadas de cada encabezado (comparación sin mayúsculas).
var headerAliases = map[string][]string{
	"id":       {"id", "product id", "productid", "sku"},
	"name":     {"name", "product", "product name", "productname"},
	"price":    {"price", "unit price", "unitprice", "rate"},
	"category": {"category", "type"},
}

// DecodeProducts convierte el CSV en productos. Ignora las filas sin nombre o con precio
// ilegible o no positivo. Tolera BOM UTF-8/UTF-16 y variantes de mayúsculas en los encabezados.
func DecodeProducts(r io.Reader) ([]entity.Product, error) {
	r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("sheets: CSV vacío")
		}
		return nil, fmt.Errorf("sheets: leer encabezado: %w", err)
	}
	cols := mapColumns(header)
	if cols["name"] < 0 || cols["price"] < 0 {
		return nil, ErrMissingColumns
	}

	products := make([]entity.Product, 0, 32)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheets: fila %d: %w", line, err)
		}

		name := field(rec, cols["name"])
		if name == "" {
			continue
		}
		price, ok := parsePrice(field(rec, cols["price"]))
		if !ok {
			continue
		}
		id := field(rec, cols["id"])
		if id == "" {
			id = strconv.Itoa(line)
		}
		category := field(rec, cols["category"])
		if category == "" {
			category = DefaultCategory
		}
		products = append(products, entity.Product{ID: id, Name: name, Price: price, Category: category})
	}
	return products, nil
}

func mapColumns(header []string) map[string]int {
	fold := cases.Fold()
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.Join(strings.Fields(fold.String(h)), " ")
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	cols := make(map[string]int, len(headerAliases))
	for col, aliases := range headerAliases {
		cols[col] = -1
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				cols[col] = i
				break
			}
		}
	}
	return cols
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parsePrice acepta "150", "1,250.50", "₹150", "Rs. 150".
func parsePrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	p, err := decimal.NewFromString(s)
	if err != nil || !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}
