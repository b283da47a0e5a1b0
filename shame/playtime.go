package shame

import "fmt"

// FormatPlaytime renders minutes the way Steam users think about them.
func FormatPlaytime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := float64(minutes) / 60
	if hours < 24 {
		return fmt.Sprintf("%.1fh", hours)
	}
	return fmt.Sprintf("%.1f days", hours/24)
}
