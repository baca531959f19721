package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xhad/knowtab/internal/models"
)

// Chunks fetches the extracted content chunks for an uploaded document.
func (c *Client) Chunks(ctx context.Context, documentID string) ([]models.Chunk, error) {
	url := c.endpoint(fmt.Sprintf("/document/%s/chunks", documentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

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
		return nil, fmt.Errorf("failed to get document chunks: %s", strings.TrimSpace(string(raw)))
	}

	var chunks []models.Chunk
	if err := json.Unmarshal(raw, &chunks); err != nil {
		return nil, fmt.Errorf("failed to decode chunks response: %v", err)
	}

	return chunks, nil
}
