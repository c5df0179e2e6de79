// Package common holds validation helpers shared by the CLI actions.
package common

import (
	"fmt"
	"strings"
)

// ValidateDepartment rejects labels that are empty after trimming or that
// contain path separators, which would break per-department output files.
func ValidateDepartment(label string) (string, error) {
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return "", fmt.Errorf("empty department label")
	}
	if strings.ContainsAny(label, `/\`) {
		return "", fmt.Errorf("department label %q contains path separators", label)
	}
	return label, nil
}

// SplitWordsFlag parses a comma-separated --words value into a clean,
// lowercased, de-duplicated list. An empty flag yields nil.
func SplitWordsFlag(flag string) []string {
	if strings.TrimSpace(flag) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Split(flag, ",") {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	return words
}
