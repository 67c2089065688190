package quizstats

import "fmt"

func (s Snapshot) String() string {
	return fmt.Sprintf("issued=%d correct=%d incorrect=%d rejected=%d swept=%d dropped=%d streams=%d rx=%s tx=%s",
		s.Issued, s.Correct, s.Incorrect, s.Rejected, s.Swept, s.Dropped, s.Streams,
		FormatTotal(s.RXBytes), FormatTotal(s.TXBytes))
}

// FormatTotal renders a byte count with binary units.
func FormatTotal(bytes uint64) string {
	units := []string{"B", "KiB", "MiB", "GiB"}
	value := float64(bytes)

	unitIdx := 0
	for value >= 1024 && unitIdx < len(units)-1 {
		value /= 1024
		unitIdx++
	}

	if unitIdx == 0 {
		return fmt.Sprintf("%.0f %s", value, units[unitIdx])
	}
	return fmt.Sprintf("%.1f %s", value, units[unitIdx])
}
