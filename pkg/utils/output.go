// pkg/utils/output.go - helpers for relaying external command output.

package utils

import "strings"

// CleanOutputLines splits captured command output into trimmed lines,
// dropping empties and stripping any BOM or stray ANSI sequences that
// pip and cscript like to emit.
func CleanOutputLines(output string) []string {
	lines := strings.Split(output, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		txt := strings.TrimSpace(line)
		if txt == "" {
			continue
		}
		txt = strings.TrimPrefix(txt, "\ufeff")
		txt = strings.ReplaceAll(txt, "\u001b[0m", "")
		txt = strings.ReplaceAll(txt, "\u001b[", "")
		cleaned = append(cleaned, txt)
	}
	return cleaned
}
