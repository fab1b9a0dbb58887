package cmd

import (
	"math"
	"os"
	"path/filepath"
	"strings"
)

// RoundAmount rounds a float64 to one decimal place using RoundToEven.
func RoundAmount(amount float64) float64 {
	return math.RoundToEven(amount*10) / 10
}

// ToProjectName converts a filename or string to a project name by replacing dashes
// and underscores with spaces and capitalizing each word.
func ToProjectName(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// TruncateFront truncates a string from the front if it exceeds maxLen.
func TruncateFront(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[len(s)-maxLen:]
	}
	return "..." + s[len(s)-maxLen+3:]
}

// FormatPath shows paths under the working directory as ./rel and anything
// else as an absolute path.
func FormatPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	cwd, err := os.Getwd()
	if err == nil {
		rel, err := filepath.Rel(cwd, absPath)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "./" + filepath.ToSlash(rel)
		}
	}

	return absPath
}

// partName turns an STL file name into a plate name: clip.stl -> clip.
func partName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
