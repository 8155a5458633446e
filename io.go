// File: lixenwraith/typedenv/io.go
package typedenv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported source file formats
const (
	FormatAuto   = "auto"
	FormatDotenv = "dotenv"
	FormatTOML   = "toml"
	FormatYAML   = "yaml"
	FormatJSON   = "json"
)

// readSourceFile reads and parses a source file into a raw mapping.
func readSourceFile(path string, opts SourceOptions) (map[string]RawValue, error) {
	// Security: Path traversal check
	if opts.PreventPathTraversal {
		cleanPath := filepath.Clean(path)
		if strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) || cleanPath == ".." {
			return nil, fmt.Errorf("potential path traversal detected in source path: %s", path)
		}
		if filepath.IsAbs(cleanPath) && !filepath.IsAbs(path) {
			return nil, fmt.Errorf("potential path traversal detected in source path: %s", path)
		}
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat source file '%s': %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("source path '%s' is a directory", path)
	}

	// Security: File size check
	if opts.MaxFileSize > 0 && fileInfo.Size() > opts.MaxFileSize {
		return nil, fmt.Errorf("source file '%s' exceeds maximum size %d bytes", path, opts.MaxFileSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file '%s': %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if opts.MaxFileSize > 0 {
		reader = io.LimitReader(file, opts.MaxFileSize)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file '%s': %w", path, err)
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = detectFileFormat(path)
	}

	values, err := parseFileData(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source file '%s': %w", path, err)
	}
	return values, nil
}

// parseFileData decodes data in the given format into a raw mapping.
func parseFileData(data []byte, format string) (map[string]RawValue, error) {
	if format == FormatDotenv {
		assignments, bare := splitBareKeys(data)
		parsed, err := godotenv.Parse(bytes.NewReader(assignments))
		if err != nil {
			return nil, fmt.Errorf("invalid dotenv syntax: %w", err)
		}
		values := make(map[string]RawValue, len(parsed)+len(bare))
		for _, k := range bare {
			values[k] = RawValue{}
		}
		for k, v := range parsed {
			values[k] = Raw(v)
		}
		return values, nil
	}

	structured := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &structured); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &structured); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&structured); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported file format %q", ErrInvalidConfiguration, format)
	}

	values := make(map[string]RawValue, len(structured))
	for k, v := range structured {
		raw, err := stringify(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		values[k] = raw
	}
	return values, nil
}

// detectFileFormat determines format from file extension. Anything that is
// not a known structured format is read as dotenv.
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatDotenv
	}
}

// splitBareKeys removes dotenv lines that name a key without a value, such as
// "FOO" or "export FOO", and returns those keys separately. Lines inside a
// multi-line quoted value are kept as they are.
func splitBareKeys(data []byte) ([]byte, []string) {
	var kept bytes.Buffer
	var bare []string
	var quote byte

	for _, line := range strings.Split(string(data), "\n") {
		if quote != 0 {
			if strings.IndexByte(line, quote) >= 0 {
				quote = 0
			}
			kept.WriteString(line)
			kept.WriteByte('\n')
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") && !strings.ContainsAny(trimmed, "=:") {
			key := strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
			if isValidFieldName(key) {
				bare = append(bare, key)
				continue
			}
		}

		// Track a quoted value left open at the end of the line
		if idx := strings.IndexAny(trimmed, "=:"); idx >= 0 {
			value := strings.TrimSpace(trimmed[idx+1:])
			if len(value) > 0 && (value[0] == '"' || value[0] == '\'') &&
				strings.IndexByte(value[1:], value[0]) < 0 {
				quote = value[0]
			}
		}
		kept.WriteString(line)
		kept.WriteByte('\n')
	}

	return kept.Bytes(), bare
}
