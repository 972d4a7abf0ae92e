package utils

import "strings"

// TrimNonEmpty trims every element and drops the ones left empty.
func TrimNonEmpty(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}

// SplitNonEmpty splits s on sep and returns the trimmed, non-empty parts.
func SplitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return TrimNonEmpty(strings.Split(s, sep))
}
