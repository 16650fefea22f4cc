package tool

import (
	"os"

	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 200
	maxQRSize     = 512
)

// WriteConnectQR writes a PNG QR code of the server URL to path, so a phone
// on the same network can scan it and open the web UI.
func WriteConnectQR(serverURL, path string, size int) error {
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := qrcode.Encode(serverURL, qrcode.Medium, size)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}
