// Package envfile reads dotenv-style files into KEY=VALUE entries that are
// handed to checker processes.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Read parses the file at path. Blank lines and # comments are skipped, an
// optional "export " prefix is dropped, and matching quotes around a value
// are removed. Later assignments to the same key win.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	var (
		order  []string
		values = map[string]string{}
	)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	entries := make([]string, 0, len(order))
	for _, key := range order {
		entries = append(entries, key+"="+values[key])
	}
	return entries, nil
}

// parseLine extracts KEY and VALUE from a KEY=VALUE line.
func parseLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
