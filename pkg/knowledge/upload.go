package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

type documentMeta struct {
	Name   string `json:"name"`
	Author string `json:"author"`
	Tag    string `json:"tag"`
}

// Upload sends a PDF to the service and returns the document ID it
// assigned. The file handle is closed before Upload returns, so the next
// pipeline step never races the open file.
func (c *Client) Upload(ctx context.Context, pdfPath string) (string, error) {
	filename := filepath.Base(pdfPath)

	body, contentType, err := buildUploadBody(pdfPath, documentMeta{
		Name:   filename,
		Author: c.config.Author,
		Tag:    c.config.Tag,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/document"), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("failed to upload document: %s", strings.TrimSpace(string(raw)))
	}

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %v", err)
	}

	return uploaded.ID, nil
}

func buildUploadBody(pdfPath string, meta documentMeta) (*bytes.Buffer, string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open PDF: %v", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, meta.Name))
	header.Set("Content-Type", "application/pdf")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("document", string(metaJSON)); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
