package codec

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"rms/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a snapshot from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, errors.Wrap(err, "can't parse YAML snapshot")
	}

	return &snapshot, nil
}

// Export writes snapshot as YAML with two-space indentation
func (c *YAMLCodec) Export(snapshot *domain.Snapshot, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(snapshot); err != nil {
		return errors.Wrap(err, "can't encode YAML snapshot")
	}

	return nil
}
