package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/knowtab/internal/models"
	"github.com/xhad/knowtab/pkg/table"
)

func TestRows(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "Acme Corp\n\nBeta Inc\n"},
	}

	rows := table.Rows(chunks)
	require.Len(t, rows, 2)

	assert.Equal(t, "row_0_0", rows[0].ID)
	assert.Equal(t, "Acme Corp", rows[0].SourceData)
	assert.Equal(t, "row_0_1", rows[1].ID)
	assert.Equal(t, "Beta Inc", rows[1].SourceData)

	for _, row := range rows {
		assert.False(t, row.Hidden)
		assert.Empty(t, row.Cells)
		assert.NotNil(t, row.Cells)
	}
}

func TestRowsCounterSpansChunks(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "Acme Corp\nBeta Inc"},
		{Content: "Gamma Ltd"},
	}

	rows := table.Rows(chunks)
	require.Len(t, rows, 3)

	// The running counter keeps going across chunk boundaries
	assert.Equal(t, "row_0_0", rows[0].ID)
	assert.Equal(t, "row_0_1", rows[1].ID)
	assert.Equal(t, "row_1_2", rows[2].ID)
}

func TestRowsUniqueIDs(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "A\nB\nC"},
		{Content: "D\nE"},
		{Content: "F"},
	}

	rows := table.Rows(chunks)
	require.Len(t, rows, 6)

	seen := make(map[string]bool)
	for _, row := range rows {
		assert.False(t, seen[row.ID], "duplicate row ID %s", row.ID)
		seen[row.ID] = true
	}
}

func TestRowsBlankInput(t *testing.T) {
	tests := []struct {
		name   string
		chunks []models.Chunk
	}{
		{"no chunks", nil},
		{"empty chunk", []models.Chunk{{Content: ""}}},
		{"whitespace only", []models.Chunk{{Content: "  \n\t\n  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := table.Rows(tt.chunks)
			assert.Empty(t, rows)
			// Still a slice, so the generate-cells payload carries []
			assert.NotNil(t, rows)
		})
	}
}

func TestRowsTrimsLines(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "  Acme Corp  \r\nBeta Inc\r\n"},
	}

	rows := table.Rows(chunks)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme Corp", rows[0].SourceData)
	assert.Equal(t, "Beta Inc", rows[1].SourceData)
}
