// Package transfer drives uploads to the server: one file at a time per
// batch, each paired with a simulated progress indicator and a terminal
// notification.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// ProgressFunc receives simulated progress for the named file.
type ProgressFunc func(filename string, percent float64)

// Coordinator uploads batches sequentially to the endpoint selected by the
// call-site origin. Transport errors and application-level success:false
// results are normalized to the same user-visible failure path.
type Coordinator struct {
	client     *http.Client
	server     string
	origin     string
	notifier   *notify.Center
	onMutation func()
	progressFn ProgressFunc
}

func NewCoordinator(server, origin string, notifier *notify.Center) *Coordinator {
	return &Coordinator{
		client:   tool.GetHttpClient(),
		server:   server,
		origin:   origin,
		notifier: notifier,
	}
}

// OnMutation registers the refresh trigger invoked after each successful
// upload (typically the reconciler's OnLocalMutation).
func (c *Coordinator) OnMutation(fn func()) {
	c.onMutation = fn
}

// OnProgress registers the simulated-progress callback.
func (c *Coordinator) OnProgress(fn ProgressFunc) {
	c.progressFn = fn
}

// UploadBatch uploads the given files one at a time. A failed file does not
// stop the batch; the joined error reports every failure.
func (c *Coordinator) UploadBatch(ctx context.Context, paths []string) (int, error) {
	var succeeded int
	var errs []error
	for _, path := range paths {
		if err := c.uploadOne(ctx, path); err != nil {
			errs = append(errs, err)
			continue
		}
		succeeded++
	}
	return succeeded, errors.Join(errs...)
}

func (c *Coordinator) uploadOne(ctx context.Context, path string) error {
	name := filepath.Base(path)

	file, err := os.Open(path)
	if err != nil {
		c.notifier.Notify(types.NotifyError, fmt.Sprintf("Error uploading %s", name))
		return fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close %s: %v", path, err)
		}
	}()

	estimator := NewEstimator(func(percent float64) {
		if c.progressFn != nil {
			c.progressFn(name, percent)
		}
	})
	estimator.Start()

	result, err := c.post(ctx, name, file)
	if err != nil {
		estimator.Abort()
		c.notifier.Notify(types.NotifyError, fmt.Sprintf("Error uploading %s", name))
		return err
	}
	if !result.Success {
		estimator.Abort()
		detail := result.Error
		if detail == "" {
			detail = "upload rejected"
		}
		c.notifier.Notify(types.NotifyError, fmt.Sprintf("Error uploading %s: %s", name, detail))
		return fmt.Errorf("upload of %s rejected: %s", name, detail)
	}

	estimator.Finish()
	c.notifier.NotifyWithData(types.NotifySuccess,
		fmt.Sprintf("%s uploaded successfully!", name),
		map[string]any{
			"filename":  result.Filename,
			"size":      result.Size,
			"timestamp": result.Timestamp,
		})
	tool.DefaultLogger.Infof("Uploaded %s (%s) at %s", result.Filename, result.Size, result.Timestamp)
	if c.onMutation != nil {
		c.onMutation()
	}
	return nil
}

func (c *Coordinator) post(ctx context.Context, name string, data io.Reader) (*types.UploadResponse, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("file", name)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, data); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	url := tool.BuildUploadURL(c.server, c.origin)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send upload request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload response: %v", err)
	}
	var result types.UploadResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %v", err)
	}
	return &result, nil
}
