// Package storage implements the file store client. Delivery files are
// uploaded in one multipart batch; any rejected file fails the whole batch,
// so callers never persist a partial upload.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// Client talks to the file store's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a file store client. baseURL must not end with a slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		// uploads carry file payloads, so the timeout is generous
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// uploadResult is one entry of the store's batch response, in input order.
// Either the stored metadata or Error is set.
type uploadResult struct {
	DownloadURL string `json:"downloadUrl"`
	SecureURL   string `json:"secureUrl"`
	FileType    string `json:"fileType"`
	FileName    string `json:"fileName"`
	PublicID    string `json:"publicId"`
	FileSize    int64  `json:"fileSize"`
	Error       string `json:"error,omitempty"`
}

// UploadBatch uploads the files into the given folder and returns their
// stored metadata in input order. If the store rejects any file, the whole
// batch fails with an UploadFailedError enumerating the rejections.
func (c *Client) UploadBatch(ctx context.Context, folder string, files []ports.FileUpload) ([]order.StoredFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("folder", folder); err != nil {
		return nil, err
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.FileName)
		if err != nil {
			return nil, err
		}
		if _, err = part.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files/batch", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload files: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("file store returned %d: %s", resp.StatusCode, respBody)
	}

	var results []uploadResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(results) != len(files) {
		return nil, fmt.Errorf("file store returned %d results for %d files", len(results), len(files))
	}

	var failures []errs.FileFailure
	stored := make([]order.StoredFile, 0, len(results))
	for _, r := range results {
		if r.Error != "" {
			failures = append(failures, errs.FileFailure{FileName: r.FileName, Reason: r.Error})
			continue
		}
		stored = append(stored, order.StoredFile{
			DownloadURL: r.DownloadURL,
			SecureURL:   r.SecureURL,
			FileType:    r.FileType,
			FileName:    r.FileName,
			PublicID:    r.PublicID,
			FileSize:    r.FileSize,
		})
	}

	if len(failures) > 0 {
		return nil, errs.NewUploadFailedError(failures)
	}
	return stored, nil
}
