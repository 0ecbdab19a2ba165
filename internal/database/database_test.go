package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/models"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", t.Name()), false)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExportHistory(t *testing.T) {
	db := openTestDatabase(t)
	ctx := context.Background()

	_, err := db.LastExport(ctx)
	assert.ErrorIs(t, err, ErrNoExports)

	first := &models.ExportRecord{Format: "csv", Filename: "a.csv", ProductCount: 3, CreatedAt: time.Now().Add(-time.Minute)}
	second := &models.ExportRecord{Format: "json", Filename: "b.json", ProductCount: 1, FiltersApplied: true, CreatedAt: time.Now()}
	require.NoError(t, db.RecordExport(ctx, first))
	require.NoError(t, db.RecordExport(ctx, second))
	assert.NotEmpty(t, first.ID)

	last, err := db.LastExport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b.json", last.Filename)
	assert.True(t, last.FiltersApplied)

	all, err := db.ListExports(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
