package tool

import (
	"fmt"
	"net/url"
)

// BuildServerURL builds the base http URL for the given host:port.
func BuildServerURL(server string) string {
	return fmt.Sprintf("http://%s", server)
}

// BuildConfigURL builds the /api/config URL.
func BuildConfigURL(server string) string {
	return fmt.Sprintf("http://%s/api/config", server)
}

// BuildSessionCreateURL builds the /api/session/create URL.
func BuildSessionCreateURL(server string) string {
	return fmt.Sprintf("http://%s/api/session/create", server)
}

// BuildSessionValidateURL builds the /api/session/validate URL.
func BuildSessionValidateURL(server string) string {
	return fmt.Sprintf("http://%s/api/session/validate", server)
}

// BuildFilesURL builds the /api/files listing URL.
func BuildFilesURL(server string) string {
	return fmt.Sprintf("http://%s/api/files", server)
}

// BuildSearchFilesURL builds the /api/search-files URL with the given
// query/type/date filters. Empty filters are omitted.
func BuildSearchFilesURL(server, query, fileType, date string) string {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if fileType != "" {
		params.Set("type", fileType)
	}
	if date != "" {
		params.Set("date", date)
	}
	base := fmt.Sprintf("http://%s/api/search-files", server)
	if encoded := params.Encode(); encoded != "" {
		return base + "?" + encoded
	}
	return base
}

// BuildUploadURL builds the upload URL for the given origin. The phone and
// pc origins land in different server folders.
func BuildUploadURL(server, origin string) string {
	if origin == OriginPhone {
		return fmt.Sprintf("http://%s/api/upload", server)
	}
	return fmt.Sprintf("http://%s/api/upload-pc", server)
}

// BuildDownloadURL builds the /api/download/<filename> URL.
func BuildDownloadURL(server, filename string) string {
	return fmt.Sprintf("http://%s/api/download/%s", server, url.PathEscape(filename))
}

// BuildDeleteURL builds the /api/delete/<filename> URL.
func BuildDeleteURL(server, filename string) string {
	return fmt.Sprintf("http://%s/api/delete/%s", server, url.PathEscape(filename))
}

// BuildDownloadZipURL builds the /api/download-zip URL.
func BuildDownloadZipURL(server string) string {
	return fmt.Sprintf("http://%s/api/download-zip", server)
}

// BuildCleanupURL builds the /api/cleanup-files URL.
func BuildCleanupURL(server string) string {
	return fmt.Sprintf("http://%s/api/cleanup-files", server)
}

// BuildSystemInfoURL builds the /api/system-info URL.
func BuildSystemInfoURL(server string) string {
	return fmt.Sprintf("http://%s/api/system-info", server)
}

// BuildWebsocketURL builds the realtime channel URL, carrying the client id
// so the server can label this connection.
func BuildWebsocketURL(server, clientID string) string {
	u := fmt.Sprintf("ws://%s/ws", server)
	if clientID != "" {
		u += "?client=" + url.QueryEscape(clientID)
	}
	return u
}
