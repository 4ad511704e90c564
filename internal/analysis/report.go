package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// RenderReport renders the summary into the plain-text report artifact.
// The output is a pure function of the summary: the same frozen corpus
// and configuration always produce byte-identical text.
func RenderReport(s *Summary) string {
	var b strings.Builder

	b.WriteString("BPM Detection Summary Report\n")
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	fmt.Fprintf(&b, "Total files analyzed: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Methods used: %s\n\n", strings.Join(s.Methods, ", "))

	b.WriteString("Method Statistics:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, ms := range s.MethodStats {
		fmt.Fprintf(&b, "%s:\n", ms.Method)
		if ms.Count == 0 {
			b.WriteString("  Average BPM: no data\n")
			b.WriteString("  Range: no data\n")
		} else {
			fmt.Fprintf(&b, "  Average BPM: %.1f\n", *ms.MeanBPM)
			fmt.Fprintf(&b, "  Range: %.1f - %.1f\n", *ms.MinBPM, *ms.MaxBPM)
		}
		fmt.Fprintf(&b, "  Files processed: %d/%d\n\n", ms.Count, ms.TotalFiles)
	}

	fmt.Fprintf(&b, "\nFiles with High Variance (>%s BPM difference):\n", formatBPM(s.VarianceThreshold))
	b.WriteString(strings.Repeat("-", 60) + "\n")
	if len(s.HighVariance) == 0 {
		b.WriteString("No files with high variance found.\n")
	}
	for _, rec := range s.HighVariance {
		fmt.Fprintf(&b, "\n%s:\n", rec.FileID)
		for _, method := range s.Methods {
			if bpm, ok := rec.BPMByMethod[method]; ok {
				fmt.Fprintf(&b, "  %s: %.1f BPM\n", method, bpm)
			} else {
				fmt.Fprintf(&b, "  %s: no result\n", method)
			}
		}
		fmt.Fprintf(&b, "  Variance: %.1f BPM\n", rec.Spread)
	}

	b.WriteString("\n\nMethod Agreement Analysis:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, pair := range s.Agreement {
		if pair.Percent == nil {
			fmt.Fprintf(&b, "%s vs %s: no overlapping files\n", pair.MethodA, pair.MethodB)
			continue
		}
		fmt.Fprintf(&b, "%s vs %s: %.1f%% agreement (%d/%d files)\n",
			pair.MethodA, pair.MethodB, *pair.Percent, pair.Agreed, pair.Compared)
	}

	b.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	b.WriteString("Report generated successfully.\n")

	return b.String()
}

// RenderDigest renders the short console digest: corpus size plus the
// topN highest-variance files.
func RenderDigest(s *Summary, topN int) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("BPM DETECTION SUMMARY\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Files analyzed: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Methods used: %s\n", strings.Join(s.Methods, ", "))

	if len(s.HighVariance) > 0 {
		fmt.Fprintf(&b, "\nFiles with high BPM variance (>%s BPM): %d\n",
			formatBPM(s.VarianceThreshold), len(s.HighVariance))
		for i, rec := range s.HighVariance {
			if topN > 0 && i >= topN {
				break
			}
			fmt.Fprintf(&b, "  - %s: %.1f BPM difference\n", rec.FileID, rec.Spread)
		}
	}

	b.WriteString(strings.Repeat("=", 60) + "\n")
	return b.String()
}

// formatBPM renders a threshold without trailing zeros (20, not 20.0),
// matching the report header wording for the default configuration.
func formatBPM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
