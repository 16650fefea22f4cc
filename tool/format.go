package tool

import "fmt"

// FormatUptime renders a second count the way the web UI does: seconds
// only, then minutes+seconds, hours+minutes, days+hours+minutes.
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	if seconds < 86400 {
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
	return fmt.Sprintf("%dd %dh %dm", seconds/86400, (seconds%86400)/3600, (seconds%3600)/60)
}

// FormatFileSize converts a byte count to a human readable string, matching
// the server's formatting so local and server-reported sizes line up.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(sizeBytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f%s", size, units[i])
}
