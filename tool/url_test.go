package tool

import "testing"

func TestBuildSearchFilesURL(t *testing.T) {
	server := "127.0.0.1:5000"
	if got := BuildSearchFilesURL(server, "", "", ""); got != "http://127.0.0.1:5000/api/search-files" {
		t.Errorf("Expected bare search URL, got %q", got)
	}
	got := BuildSearchFilesURL(server, "report q", "pdf", "2026-08-28")
	want := "http://127.0.0.1:5000/api/search-files?date=2026-08-28&q=report+q&type=pdf"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestBuildUploadURLByOrigin(t *testing.T) {
	server := "127.0.0.1:5000"
	if got := BuildUploadURL(server, OriginPhone); got != "http://127.0.0.1:5000/api/upload" {
		t.Errorf("Expected phone endpoint, got %q", got)
	}
	if got := BuildUploadURL(server, OriginPC); got != "http://127.0.0.1:5000/api/upload-pc" {
		t.Errorf("Expected pc endpoint, got %q", got)
	}
}

func TestBuildFileURLsEscapeNames(t *testing.T) {
	server := "127.0.0.1:5000"
	if got := BuildDownloadURL(server, "my report.pdf"); got != "http://127.0.0.1:5000/api/download/my%20report.pdf" {
		t.Errorf("Expected escaped download URL, got %q", got)
	}
	if got := BuildDeleteURL(server, "a/b.txt"); got != "http://127.0.0.1:5000/api/delete/a%2Fb.txt" {
		t.Errorf("Expected escaped delete URL, got %q", got)
	}
}

func TestBuildWebsocketURL(t *testing.T) {
	if got := BuildWebsocketURL("127.0.0.1:5000", ""); got != "ws://127.0.0.1:5000/ws" {
		t.Errorf("Expected bare ws URL, got %q", got)
	}
	if got := BuildWebsocketURL("127.0.0.1:5000", "abc 123"); got != "ws://127.0.0.1:5000/ws?client=abc+123" {
		t.Errorf("Expected client id in query, got %q", got)
	}
}
