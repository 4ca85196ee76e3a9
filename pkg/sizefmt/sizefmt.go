// Package sizefmt formats byte counts the way report summaries display them:
// bytes below one KiB verbatim, then one-decimal KiB and MiB figures.
package sizefmt

import "fmt"

// Binary size multipliers.
const (
	KiB = 1024
	MiB = 1024 * KiB
)

// Bytes renders size in the compact form used by report summaries:
// "512B", "1.5K", "2.0M". The multipliers are binary (1024-based).
func Bytes(size int64) string {
	switch {
	case size < KiB:
		return fmt.Sprintf("%dB", size)
	case size < MiB:
		return fmt.Sprintf("%.1fK", float64(size)/KiB)
	default:
		return fmt.Sprintf("%.1fM", float64(size)/MiB)
	}
}
