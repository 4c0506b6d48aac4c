package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// ErrMissingVariable is returned by RequireEnv for unset variables.
var ErrMissingVariable = errors.New("required environment variable is not set")

// DefaultEnvFiles are tried in order when no .env path is given.
var DefaultEnvFiles = []string{
	".env",
	"../.env",
	"../../.env",
}

// LoadEnvFile reads KEY=VALUE pairs from path. Blank lines, lines starting
// with '#' and lines without '=' are skipped. Each line is parsed on its own:
// quotes and inline " #" comments follow dotenv rules, and a line the dotenv
// parser rejects is logged and kept as the trimmed text around its first '='.
// A missing file is not an error: it is logged and yields an empty map.
func LoadEnvFile(path string, logger zerolog.Logger) (map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Str("path", path).Msg("environment file not found")
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	vars := map[string]string{}
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}

		parsed, err := godotenv.Unmarshal(line)
		if err != nil {
			key, value, _ := strings.Cut(line, "=")
			logger.Warn().Err(err).Str("path", path).Int("line", n).Msg("unparsable env line, keeping raw value")
			parsed = map[string]string{strings.TrimSpace(key): strings.TrimSpace(value)}
		}
		for key, value := range parsed {
			if key == "" {
				continue
			}
			vars[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return vars, nil
}

// LoadEnv loads path into the process environment, overriding variables that
// are already set. With an empty path the first existing DefaultEnvFiles
// entry is used.
func LoadEnv(path string, logger zerolog.Logger) (map[string]string, error) {
	if path == "" {
		path = DefaultEnvFiles[0]
		for _, candidate := range DefaultEnvFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	vars, err := LoadEnvFile(path, logger)
	if err != nil {
		return nil, err
	}
	for key, value := range vars {
		if err := os.Setenv(key, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}
	if len(vars) > 0 {
		logger.Debug().Str("path", path).Int("count", len(vars)).Msg("loaded environment file")
	}
	return vars, nil
}

// GetEnv returns the value of key, or def when it is unset.
func GetEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return def
}

// RequireEnv returns the value of key or an error naming it.
func RequireEnv(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("%w: %s (set it in your .env file or environment)", ErrMissingVariable, key)
	}
	return value, nil
}
