package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xhad/knowtab/internal/models"
)

// GenerateCells asks the service to answer every column question for every
// row. The cell inference runs remotely; the response is a flat cell list.
func (c *Client) GenerateCells(ctx context.Context, columns []models.Column, rows []models.Row) ([]models.Cell, error) {
	// The service expects lists, never null
	if columns == nil {
		columns = []models.Column{}
	}
	if rows == nil {
		rows = []models.Row{}
	}

	payload := struct {
		Columns []models.Column `json:"columns"`
		Rows    []models.Row    `json:"rows"`
	}{
		Columns: columns,
		Rows:    rows,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/query/generate-cells"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to generate cells: %s", strings.TrimSpace(string(raw)))
	}

	var generated struct {
		Cells []models.Cell `json:"cells"`
	}
	if err := json.Unmarshal(raw, &generated); err != nil {
		return nil, fmt.Errorf("failed to decode cells response: %v", err)
	}

	return generated.Cells, nil
}
