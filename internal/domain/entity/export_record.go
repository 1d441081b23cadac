package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formatos de exportación.
const (
	ExportFormatPDF = "pdf"
	ExportFormatXML = "xml"
)

// ExportRecord registra una exportación de la factura (PDF o XML).
type ExportRecord struct {
	ID            string
	InvoiceNumber string
	Format        string
	FileName      string
	Total         decimal.Decimal
	CreatedAt     time.Time
}
