package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type codec struct {
	decode func([]byte) (map[string]any, error)
	encode func(map[string]any) ([]byte, error)
}

var (
	tomlCodec = codec{
		decode: func(b []byte) (map[string]any, error) {
			raw := map[string]any{}
			err := toml.Unmarshal(b, &raw)
			return raw, err
		},
		encode: func(m map[string]any) ([]byte, error) { return toml.Marshal(m) },
	}
	yamlCodec = codec{
		decode: func(b []byte) (map[string]any, error) {
			raw := map[string]any{}
			err := yaml.Unmarshal(b, &raw)
			return raw, err
		},
		encode: func(m map[string]any) ([]byte, error) { return yaml.Marshal(m) },
	}
	// jsonCodec reads and writes the legacy WXscheduler.cfg layout.
	jsonCodec = codec{
		decode: func(b []byte) (map[string]any, error) {
			raw := map[string]any{}
			if len(bytes.TrimSpace(b)) == 0 {
				return raw, nil
			}
			err := json.Unmarshal(b, &raw)
			return raw, err
		},
		encode: func(m map[string]any) ([]byte, error) { return json.MarshalIndent(m, "", "  ") },
	}
)

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	case ".json", ".cfg":
		return jsonCodec
	default:
		return tomlCodec
	}
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
