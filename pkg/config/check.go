package config

import (
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Field is one line of an environment report.
type Field struct {
	Key   string
	Value string
}

// APIKeys are reported as set or unset, never by value.
var APIKeys = []string{"HUGGINGFACE_TOKEN", "OPENAI_API_KEY", "GEMINI_API_KEY"}

// CoursePrefixes select the variables CustomVariables reports.
var CoursePrefixes = []string{"MODEL_", "EMBEDDING_", "DATA_", "MODELS_", "GYM_", "DEBUG_", "API_"}

// CheckEnvironment describes the runtime and which API keys are available.
func CheckEnvironment() []Field {
	fields := []Field{
		{"go_version", runtime.Version()},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
		{"num_cpu", strconv.Itoa(runtime.NumCPU())},
	}
	for _, key := range APIKeys {
		status := "Not set"
		if os.Getenv(key) != "" {
			status = "Available"
		}
		fields = append(fields, Field{strings.ToLower(key), status})
	}
	return fields
}

// CustomVariables returns the environment variables starting with one of
// prefixes, sorted by key.
func CustomVariables(prefixes []string) []Field {
	var fields []Field
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				fields = append(fields, Field{key, value})
				break
			}
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key < fields[j].Key
	})
	return fields
}
