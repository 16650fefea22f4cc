package files

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newFileServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/delete/:name", func(c *gin.Context) {
		if c.Param("name") == "locked.txt" {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "file is in use"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.POST("/api/cleanup-files", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": 3, "message": "Deleted 3 old files"})
	})
	router.GET("/api/download/:name", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/octet-stream", []byte("file body"))
	})
	router.POST("/api/download-zip", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/zip", []byte("zip body"))
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestDelete(t *testing.T) {
	api := NewAPI(newFileServer(t))
	if err := api.Delete(context.Background(), "a.txt"); err != nil {
		t.Errorf("Expected delete to succeed, got %v", err)
	}

	err := api.Delete(context.Background(), "locked.txt")
	if err == nil || !strings.Contains(err.Error(), "file is in use") {
		t.Errorf("Expected the refusal detail in the error, got %v", err)
	}
}

func TestCleanup(t *testing.T) {
	api := NewAPI(newFileServer(t))
	result, err := api.Cleanup(context.Background(), 24)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if result.DeletedCount != 3 || result.Message != "Deleted 3 old files" {
		t.Errorf("Expected server cleanup result, got %+v", result)
	}
}

func TestDownloadWritesFile(t *testing.T) {
	api := NewAPI(newFileServer(t))
	destDir := t.TempDir()
	dest, err := api.Download(context.Background(), "report.pdf", destDir)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if filepath.Base(dest) != "report.pdf" {
		t.Errorf("Expected the file's own name, got %q", dest)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(data) != "file body" {
		t.Errorf("Expected streamed body, got %q", data)
	}
}

func TestDownloadZip(t *testing.T) {
	api := NewAPI(newFileServer(t))
	destDir := t.TempDir()

	if _, err := api.DownloadZip(context.Background(), nil, destDir); err == nil {
		t.Error("Expected an error for an empty selection")
	}

	dest, err := api.DownloadZip(context.Background(), []string{"a.txt", "b.txt"}, destDir)
	if err != nil {
		t.Fatalf("DownloadZip failed: %v", err)
	}
	base := filepath.Base(dest)
	if !strings.HasPrefix(base, "simpleshare_files_") || !strings.HasSuffix(base, ".zip") {
		t.Errorf("Expected a timestamped zip name, got %q", base)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read zip: %v", err)
	}
	if string(data) != "zip body" {
		t.Errorf("Expected streamed zip body, got %q", data)
	}
}
