package errutil

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// LogError logs non-critical errors with context.
func LogError(context string, err error) {
	if err != nil {
		log.Error().Err(err).Str("context", context).Msg("error")
	}
}

// FatalError logs and exits for unrecoverable errors.
func FatalError(context string, err error) {
	log.Fatal().Err(err).Str("context", context).Msg("fatal")
}

// MustParseFloat parses a float or logs error and returns 0.
func MustParseFloat(s string, context string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		log.Warn().Err(err).Str("context", context).Str("input", s).Msg("ParseFloat error")
		return 0
	}
	return f
}
