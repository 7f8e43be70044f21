package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// File loads a saved /coins/markets response from disk. JSON is decoded
// directly; .yaml/.yml fixtures are normalized to JSON first.
type File struct {
	Path string
}

func (f File) Load(_ context.Context) ([]types.MarketRecord, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("%w: file source needs a path", ErrFetch)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	ext := strings.ToLower(filepath.Ext(f.Path))
	if ext == ".yaml" || ext == ".yml" {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFetch, f.Path, err)
		}
	}

	records, err := decodeListing(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, f.Path, err)
	}
	return records, nil
}

// yamlToJSON re-encodes a YAML document as JSON so records decode through the
// same json tags as the live listing.
func yamlToJSON(data []byte) ([]byte, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	// Normalize maps with non-string keys to map[string]any
	var norm func(v any) any
	norm = func(v any) any {
		switch m := v.(type) {
		case map[any]any:
			mm := make(map[string]any, len(m))
			for k, val := range m {
				mm[fmt.Sprint(k)] = norm(val)
			}
			return mm
		case map[string]any:
			for k, val := range m {
				m[k] = norm(val)
			}
			return m
		case []any:
			out := make([]any, 0, len(m))
			for _, e := range m {
				out = append(out, norm(e))
			}
			return out
		default:
			return v
		}
	}
	root = norm(root)

	if _, ok := root.([]any); !ok {
		return nil, fmt.Errorf("invalid yaml: expected a list of market records")
	}
	return json.Marshal(root)
}
