package typedenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// schemaFile is the on-disk schema layout:
//
//	fields:
//	  PORT:  {type: int}
//	  DEBUG: {type: bool, optional: true, default: "false"}
type schemaFile struct {
	Fields map[string]schemaEntry `yaml:"fields" toml:"fields"`
}

type schemaEntry struct {
	Type     string  `yaml:"type" toml:"type"`
	Optional bool    `yaml:"optional" toml:"optional"`
	Default  *string `yaml:"default,omitempty" toml:"default,omitempty"`
}

// ParseSchema parses a YAML (or JSON) schema document.
func ParseSchema(content []byte) (*Schema, error) {
	var sf schemaFile
	if err := yaml.Unmarshal(content, &sf); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %w", ErrInvalidSchema, err)
	}
	return sf.build()
}

// ParseSchemaTOML parses a TOML schema document.
func ParseSchemaTOML(content []byte) (*Schema, error) {
	var sf schemaFile
	if err := toml.Unmarshal(content, &sf); err != nil {
		return nil, fmt.Errorf("%w: invalid TOML: %w", ErrInvalidSchema, err)
	}
	return sf.build()
}

// LoadSchemaFile reads a schema, choosing the parser by file extension.
func LoadSchemaFile(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return ParseSchemaTOML(content)
	default:
		return ParseSchema(content)
	}
}

// build declares every entry. Defaults are given as raw strings and run
// through the field's validator.
func (sf schemaFile) build() (*Schema, error) {
	schema := NewSchema()

	for _, name := range sortedKeys(sf.Fields) {
		entry := sf.Fields[name]
		f := Field{Name: name, Type: Type(entry.Type), Optional: entry.Optional}
		if err := schema.Declare(f); err != nil {
			return nil, err
		}
	}

	for _, name := range sortedKeys(sf.Fields) {
		entry := sf.Fields[name]
		if entry.Default == nil {
			continue
		}

		f, _ := schema.Lookup(name)
		convert, ok := schema.Registry().converterFor(f)
		if !ok {
			return nil, fieldError(ErrUnknownType, f.Name, f.Type, nil)
		}
		value, err := convert(Raw(*entry.Default))
		if err != nil {
			return nil, fmt.Errorf("%w: default: %w", ErrInvalidSchema, fieldError(ErrConversion, f.Name, f.Type, err))
		}
		schema.Default(name, value)
	}

	return schema, nil
}
