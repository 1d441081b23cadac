package storage_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/storage"
)

func TestExportLog_OrdenYCapacidad(t *testing.T) {
	log := storage.NewExportLog(3)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, log.Create(ctx, &entity.ExportRecord{ID: fmt.Sprint(i), Format: entity.ExportFormatPDF}))
	}

	list, err := log.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "5", list[0].ID)
	assert.Equal(t, "3", list[2].ID)

	list, _ = log.ListRecent(ctx, 1)
	require.Len(t, list, 1)
	assert.Equal(t, "5", list[0].ID)
}
