package transfer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// progressLog captures progress callbacks across goroutines.
type progressLog struct {
	mu     sync.Mutex
	values []float64
}

func (p *progressLog) record(_ string, percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, percent)
}

func (p *progressLog) snapshot() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]float64, len(p.values))
	copy(out, p.values)
	return out
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestUploadSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/upload-pc", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no file"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"filename":  file.Filename,
			"size":      "11.0B",
			"timestamp": "12:00:00",
		})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	center := notify.NewCenter(time.Minute)
	coord := NewCoordinator(strings.TrimPrefix(srv.URL, "http://"), tool.OriginPC, center)

	var log progressLog
	coord.OnProgress(log.record)
	var mutations atomic.Int64
	coord.OnMutation(func() { mutations.Add(1) })

	path := writeTempFile(t, "report.pdf", "hello world")
	succeeded, err := coord.UploadBatch(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("UploadBatch failed: %v", err)
	}
	if succeeded != 1 {
		t.Fatalf("Expected 1 successful upload, got %d", succeeded)
	}
	if got := mutations.Load(); got != 1 {
		t.Errorf("Expected 1 mutation callback, got %d", got)
	}

	values := log.snapshot()
	if len(values) < 2 {
		t.Fatalf("Expected at least start and finish progress, got %v", values)
	}
	if values[0] != 0 {
		t.Errorf("Expected progress to start at 0, got %v", values[0])
	}
	if values[len(values)-1] != 100 {
		t.Errorf("Expected progress to finish at 100, got %v", values[len(values)-1])
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Errorf("Progress regressed at %d: %v", i, values)
			break
		}
		if values[i] > 90 && values[i] != 100 {
			t.Errorf("Progress exceeded the cap before completion: %v", values[i])
			break
		}
	}

	var sawSuccess bool
	for _, n := range center.Active() {
		if n.Level == types.NotifySuccess && strings.Contains(n.Message, "report.pdf") {
			sawSuccess = true
			if n.Data["filename"] != "report.pdf" {
				t.Errorf("Expected notification data to carry the filename, got %v", n.Data)
			}
		}
	}
	if !sawSuccess {
		t.Error("Expected a success notification naming the file")
	}
}

func TestUploadRejectedInsideHTTP200(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/upload-pc", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "File type not allowed"})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	center := notify.NewCenter(time.Minute)
	coord := NewCoordinator(strings.TrimPrefix(srv.URL, "http://"), tool.OriginPC, center)
	var mutations atomic.Int64
	coord.OnMutation(func() { mutations.Add(1) })
	var log progressLog
	coord.OnProgress(log.record)

	path := writeTempFile(t, "virus.exe", "nope")
	succeeded, err := coord.UploadBatch(context.Background(), []string{path})
	if err == nil {
		t.Fatal("Expected the rejected upload to surface as an error")
	}
	if succeeded != 0 {
		t.Errorf("Expected 0 successes, got %d", succeeded)
	}
	if got := mutations.Load(); got != 0 {
		t.Errorf("Expected no mutation callback on failure, got %d", got)
	}

	values := log.snapshot()
	if len(values) > 0 && values[len(values)-1] == 100 {
		t.Error("Expected progress not to complete on a rejected upload")
	}

	var sawError bool
	for _, n := range center.Active() {
		if n.Level == types.NotifyError && strings.Contains(n.Message, "File type not allowed") {
			sawError = true
		}
	}
	if !sawError {
		t.Error("Expected an error notification carrying the server detail")
	}
}

func TestUploadBatchContinuesPastFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/upload-pc", func(c *gin.Context) {
		file, _ := c.FormFile("file")
		c.JSON(http.StatusOK, gin.H{"success": true, "filename": file.Filename, "size": "4.0B", "timestamp": "12:00:00"})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	coord := NewCoordinator(strings.TrimPrefix(srv.URL, "http://"), tool.OriginPC, notify.NewCenter(time.Second))
	good := writeTempFile(t, "good.txt", "data")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	succeeded, err := coord.UploadBatch(context.Background(), []string{missing, good})
	if succeeded != 1 {
		t.Errorf("Expected the batch to continue past the failure, got %d successes", succeeded)
	}
	if err == nil {
		t.Error("Expected the joined error to report the missing file")
	}
}

func TestUploadOriginSelectsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var phoneHits, pcHits atomic.Int64
	router := gin.New()
	router.POST("/api/upload", func(c *gin.Context) {
		phoneHits.Add(1)
		c.JSON(http.StatusOK, gin.H{"success": true, "filename": "x", "size": "1.0B", "timestamp": "12:00:00"})
	})
	router.POST("/api/upload-pc", func(c *gin.Context) {
		pcHits.Add(1)
		c.JSON(http.StatusOK, gin.H{"success": true, "filename": "x", "size": "1.0B", "timestamp": "12:00:00"})
	})
	srv := httptest.NewServer(router)
	defer srv.Close()
	addr := strings.TrimPrefix(srv.URL, "http://")

	path := writeTempFile(t, "x", "1")
	if _, err := NewCoordinator(addr, tool.OriginPhone, notify.NewCenter(time.Second)).
		UploadBatch(context.Background(), []string{path}); err != nil {
		t.Fatalf("Phone upload failed: %v", err)
	}
	if _, err := NewCoordinator(addr, tool.OriginPC, notify.NewCenter(time.Second)).
		UploadBatch(context.Background(), []string{path}); err != nil {
		t.Fatalf("PC upload failed: %v", err)
	}
	if phoneHits.Load() != 1 || pcHits.Load() != 1 {
		t.Errorf("Expected one hit per endpoint, got phone=%d pc=%d", phoneHits.Load(), pcHits.Load())
	}
}
