// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bufio"
	"fmt"
	"maps"
	"os"
	"strings"

	"dario.cat/mergo"
)

// EnvPrefix marks environment variables that carry property overrides,
// e.g. KAFKA_REST_CONSUMER_REQUEST_TIMEOUT_MS=5000.
const EnvPrefix = "KAFKA_REST_"

// LoadProperties reads a flat key=value properties file. Blank lines and
// lines starting with # or ! are skipped; whitespace around keys and
// values is trimmed.
func LoadProperties(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening properties file: %w", err)
	}
	defer f.Close()

	props := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%s:%d: not a key=value line", path, lineNo)
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading properties file: %w", err)
	}

	return props, nil
}

// EnvProperties extracts property overrides from environ (as returned by
// os.Environ). Variable names are mapped back to property keys by
// stripping the prefix, lowercasing, and turning underscores into dots:
// KAFKA_REST_SIMPLECONSUMER_POOL_SIZE_MAX -> simpleconsumer.pool.size.max.
func EnvProperties(environ []string) map[string]string {
	props := make(map[string]string)
	for _, kv := range environ {
		name, value, found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}

		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		key = strings.ReplaceAll(key, "_", ".")
		if key == "" {
			continue
		}
		props[key] = value
	}

	return props
}

// MergeProperties layers overlay on top of base and returns the merged
// map. Neither input is modified; overlay wins on conflicts.
//
// An empty-string overlay value does not clear a non-empty base value
// (mergo treats the zero value as absent). To blank a key such as
// zookeeper.connect, remove it from the base source instead.
func MergeProperties(base, overlay map[string]string) (map[string]string, error) {
	merged := maps.Clone(base)
	if merged == nil {
		merged = make(map[string]string, len(overlay))
	}

	if err := mergo.Merge(&merged, overlay, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merging property sources: %w", err)
	}

	return merged, nil
}
