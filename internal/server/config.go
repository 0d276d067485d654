package server

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/hoff1997/budgetmate/internal/config"
	"github.com/hoff1997/budgetmate/pkg/constants"
)

// Settings holds the resolved runtime parameters for the HTTP server.
type Settings struct {
	Address      string
	MaxBodyBytes int64
}

// ResolveSettings applies defaults to the profile's server section and parses
// the human-friendly body-size limit into bytes.
func ResolveSettings(cfg config.ServerConfig) (Settings, error) {
	settings := Settings{
		Address:      constants.DefaultServerAddress,
		MaxBodyBytes: constants.DefaultMaxBodyBytes,
	}

	if addr := strings.TrimSpace(cfg.Address); addr != "" {
		settings.Address = addr
	}

	sizeStr := strings.TrimSpace(cfg.MaxBodySize)
	if sizeStr == "" {
		return settings, nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return Settings{}, err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodyBytes
	}
	settings.MaxBodyBytes = bytes
	return settings, nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodyBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
