package entity

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Invoice es el documento editable de la sesión del operador (una sola factura a la vez).
// Los nombres JSON coinciden con el documento persistido bajo freshfruits_invoice.
type Invoice struct {
	InvoiceNumber string `json:"invoiceNumber"`
	Date          string `json:"date"`    // YYYY-MM-DD, editable libremente
	DueDate       string `json:"dueDate"` // YYYY-MM-DD, editable libremente

	CompanyName    string `json:"companyName"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyAddress string `json:"companyAddress"`

	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`

	Items    []LineItem      `json:"items"`
	TaxRate  decimal.Decimal `json:"taxRate"`  // porcentaje sobre el subtotal
	Discount decimal.Decimal `json:"discount"` // porcentaje sobre el subtotal
	Notes    string          `json:"notes"`
	Terms    string          `json:"terms"`
}

// LineItem representa una línea de la factura con el precio capturado al agregarla.
// Quantity siempre es >= 1.
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// LineTotal devuelve Quantity × Price sin redondear.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Clone devuelve una copia profunda (los handlers nunca reciben el slice interno).
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	c := *inv
	c.Items = make([]LineItem, len(inv.Items))
	copy(c.Items, inv.Items)
	return &c
}

// ItemIndex devuelve la posición del ítem con ese ID o -1.
func (inv *Invoice) ItemIndex(itemID string) int {
	for i := range inv.Items {
		if inv.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// ItemIndexByProduct devuelve la posición del ítem que referencia productID o -1.
func (inv *Invoice) ItemIndexByProduct(productID string) int {
	for i := range inv.Items {
		if inv.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// UnmarshalJSON acepta id y productId como número o como string: los documentos guardados
// por la versión web usan marcas de tiempo numéricas como ID.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type alias LineItem
	aux := struct {
		*alias
		ID        json.RawMessage `json:"id"`
		ProductID json.RawMessage `json:"productId"`
	}{alias: (*alias)(li)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	li.ID = rawID(aux.ID)
	li.ProductID = rawID(aux.ProductID)
	return nil
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
