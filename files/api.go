package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// API wraps the server's file endpoints.
type API struct {
	client *http.Client
	server string
}

func NewAPI(server string) *API {
	return &API{
		client: tool.GetHttpClient(),
		server: server,
	}
}

// List fetches the unfiltered file listing.
func (a *API) List(ctx context.Context) ([]types.FileEntry, error) {
	return a.fetchListing(ctx, tool.BuildFilesURL(a.server))
}

// Search fetches the listing filtered by query, extension, and date.
func (a *API) Search(ctx context.Context, f Filter) ([]types.FileEntry, error) {
	return a.fetchListing(ctx, tool.BuildSearchFilesURL(a.server, f.Query, f.Type, f.Date))
}

// Delete removes a file on the server. An application-level refusal is
// returned as an error.
func (a *API) Delete(ctx context.Context, filename string) error {
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodGet, tool.BuildDeleteURL(a.server, filename), nil))
	if err != nil {
		return fmt.Errorf("failed to create delete request: %v", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send delete request: %v", err)
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read delete response: %v", err)
	}
	var result types.DeleteResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse delete response: %v", err)
	}
	if !result.Success {
		detail := result.Error
		if detail == "" {
			detail = resp.Status
		}
		return fmt.Errorf("delete rejected: %s", detail)
	}
	return nil
}

// Cleanup asks the server to remove files older than the given number of
// hours.
func (a *API) Cleanup(ctx context.Context, hours int) (*types.CleanupResponse, error) {
	payload, err := sonic.Marshal(map[string]int{"hours": hours})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleanup request: %v", err)
	}
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodPost, tool.BuildCleanupURL(a.server), bytes.NewReader(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to create cleanup request: %v", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send cleanup request: %v", err)
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cleanup response: %v", err)
	}
	var result types.CleanupResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse cleanup response: %v", err)
	}
	if !result.Success {
		detail := result.Error
		if detail == "" {
			detail = resp.Status
		}
		return nil, fmt.Errorf("cleanup rejected: %s", detail)
	}
	return &result, nil
}

// Download streams one file into destDir and returns the written path.
func (a *API) Download(ctx context.Context, filename, destDir string) (string, error) {
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodGet, tool.BuildDownloadURL(a.server, filename), nil))
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %v", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send download request: %v", err)
	}
	defer closeBody(resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("download request failed: %s", resp.Status)
	}
	dest := filepath.Join(destDir, filepath.Base(filename))
	return dest, writeStream(dest, resp.Body)
}

// DownloadZip streams a zip of the selected files into destDir and returns
// the written path.
func (a *API) DownloadZip(ctx context.Context, filenames []string, destDir string) (string, error) {
	if len(filenames) == 0 {
		return "", fmt.Errorf("no files selected")
	}
	payload, err := sonic.Marshal(types.DownloadZipRequest{Files: filenames})
	if err != nil {
		return "", fmt.Errorf("failed to marshal zip request: %v", err)
	}
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodPost, tool.BuildDownloadZipURL(a.server), bytes.NewReader(payload)))
	if err != nil {
		return "", fmt.Errorf("failed to create zip request: %v", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send zip request: %v", err)
	}
	defer closeBody(resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("zip request failed: %s", resp.Status)
	}
	name := fmt.Sprintf("simpleshare_files_%s.zip", time.Now().Format("20060102_150405"))
	dest := filepath.Join(destDir, name)
	return dest, writeStream(dest, resp.Body)
}

func (a *API) fetchListing(ctx context.Context, url string) ([]types.FileEntry, error) {
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodGet, url, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create listing request: %v", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send listing request: %v", err)
	}
	defer closeBody(resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("listing request failed: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing response: %v", err)
	}
	var entries []types.FileEntry
	if err := sonic.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse listing response: %v", err)
	}
	return entries, nil
}

func writeStream(dest string, r io.Reader) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", dest, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %v", dest, err)
	}
	return f.Close()
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
	}
}
