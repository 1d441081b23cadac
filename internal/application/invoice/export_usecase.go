package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
)

// ExportUseCase exporta la factura actual de la sesión y deja constancia en el historial.
type ExportUseCase struct {
	session    *Session
	pdf        InvoiceRenderer
	xml        InvoiceRenderer
	exportRepo repository.ExportRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewExportUseCase construye el caso de uso inyectando sus dependencias.
func NewExportUseCase(
	session *Session,
	pdf InvoiceRenderer,
	xml InvoiceRenderer,
	exportRepo repository.ExportRepository,
	log zerolog.Logger,
) *ExportUseCase {
	return &ExportUseCase{
		session:    session,
		pdf:        pdf,
		xml:        xml,
		exportRepo: exportRepo,
		log:        log.With().Str("component", "invoice_export").Logger(),
		now:        time.Now,
	}
}

// FileName devuelve invoice-<número>.<ext>.
func FileName(invoiceNumber, format string) string {
	return fmt.Sprintf("invoice-%s.%s", invoiceNumber, format)
}

// ExportPDF genera el PDF de la factura actual.
func (uc *ExportUseCase) ExportPDF(ctx context.Context) (data []byte, filename string, err error) {
	return uc.export(ctx, uc.pdf, entity.ExportFormatPDF)
}

// ExportXML genera la representación XML de la factura actual.
func (uc *ExportUseCase) ExportXML(ctx context.Context) (data []byte, filename string, err error) {
	return uc.export(ctx, uc.xml, entity.ExportFormatXML)
}

// History lista las últimas exportaciones registradas.
func (uc *ExportUseCase) History(ctx context.Context, limit int) ([]*entity.ExportRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := uc.exportRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("export: listar historial: %w", err)
	}
	return list, nil
}

func (uc *ExportUseCase) export(ctx context.Context, r InvoiceRenderer, format string) ([]byte, string, error) {
	doc, totals := uc.session.Snapshot()

	data, err := r.Render(ctx, doc, totals)
	if err != nil {
		return nil, "", fmt.Errorf("export %s: generación fallida: %w", format, err)
	}
	filename := FileName(doc.InvoiceNumber, format)

	rec := &entity.ExportRecord{
		ID:            uuid.New().String(),
		InvoiceNumber: doc.InvoiceNumber,
		Format:        format,
		FileName:      filename,
		Total:         totals.Total,
		CreatedAt:     uc.now(),
	}
	// El historial es informativo: si falla, la descarga sigue.
	if err := uc.exportRepo.Create(ctx, rec); err != nil {
		uc.log.Error().Err(err).Str("file", filename).Msg("registrar exportación")
	}
	uc.log.Info().Str("file", filename).Int("bytes", len(data)).Msg("factura exportada")
	return data, filename, nil
}
