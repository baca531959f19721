package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xhad/knowtab/internal/models"
)

// NotAvailable marks a result field the service returned no cell for.
const NotAvailable = "N/A"

// Aggregate joins generated cells back onto their rows, producing one
// result per row in row order. Fields with no matching cell stay "N/A".
func Aggregate(rows []models.Row, cells []models.Cell) []models.Result {
	results := make([]models.Result, 0, len(rows))

	for _, row := range rows {
		result := models.Result{
			Company:   row.SourceData,
			IsIndian:  NotAvailable,
			IsStartup: NotAvailable,
			IsTech:    NotAvailable,
		}

		for _, cell := range cells {
			if cell.RowID != row.ID {
				continue
			}
			switch cell.ColumnID {
			case "is_indian":
				result.IsIndian = string(cell.Answer)
			case "is_startup":
				result.IsStartup = string(cell.Answer)
			case "is_tech":
				result.IsTech = string(cell.Answer)
			}
		}

		results = append(results, result)
	}

	return results
}

// Print writes the results as a fixed-width text table.
func Print(w io.Writer, results []models.Result) {
	fmt.Fprintln(w, "\nCompany Classification Results:")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "%-30s | %-10s | %-10s | %-10s\n", "Company", "Is Indian", "Is Startup", "Is Tech")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, result := range results {
		fmt.Fprintf(w, "%-30s | %-10s | %-10s | %-10s\n",
			result.Company, result.IsIndian, result.IsStartup, result.IsTech)
	}
}

// Save writes the results as an indented JSON array, truncating any
// previous file at path.
func Save(path string, results []models.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %v", err)
	}

	return nil
}
