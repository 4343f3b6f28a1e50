package codec

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"rms/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a snapshot from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, errors.Wrap(err, "can't parse JSON snapshot")
	}

	return &snapshot, nil
}

// Export writes snapshot as indented JSON
func (c *JSONCodec) Export(snapshot *domain.Snapshot, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(snapshot); err != nil {
		return errors.Wrap(err, "can't encode JSON snapshot")
	}

	return nil
}
