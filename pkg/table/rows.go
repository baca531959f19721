package table

import (
	"fmt"
	"strings"

	"github.com/xhad/knowtab/internal/models"
)

// Rows turns document chunks into table rows, one per non-blank line. Row
// IDs combine the chunk index with an explicit running counter, so they
// stay unique across the whole row set regardless of how many rows each
// chunk contributes.
func Rows(chunks []models.Chunk) []models.Row {
	// Initialized so an empty row set still serializes as [] on the wire
	rows := []models.Row{}
	count := 0

	for i, chunk := range chunks {
		lines := strings.Split(strings.TrimSpace(chunk.Content), "\n")
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			rows = append(rows, models.Row{
				ID:         fmt.Sprintf("row_%d_%d", i, count),
				SourceData: line, // the company name
				Hidden:     false,
				Cells:      map[string]string{},
			})
			count++
		}
	}

	return rows
}
