// Package command holds input-parsing helpers for the shell.
package command

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func ParseInt64(value string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(value), 10, 64)
}

// ReadFile loads a source file for the editor draft.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file failed: %w", err)
	}
	return string(data), nil
}
