// Package codec reads and writes database snapshots in interchange formats.
package codec

import (
	"io"
	"sort"

	"github.com/pkg/errors"

	"rms/internal/domain"
)

// Importer interface for reading snapshots from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Snapshot, error)
	Format() string
}

// Exporter interface for writing snapshots to various formats
type Exporter interface {
	Export(snapshot *domain.Snapshot, w io.Writer) error
	Format() string
}

// Codec both reads and writes one format
type Codec interface {
	Importer
	Exporter
}

var codecs = map[string]Codec{
	"json": NewJSONCodec(),
	"yaml": NewYAMLCodec(),
}

// ForFormat returns the codec registered for format
func ForFormat(format string) (Codec, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, errors.Errorf("unknown format %q, expected one of %v", format, Formats())
	}
	return c, nil
}

// Formats lists the supported format identifiers
func Formats() []string {
	formats := make([]string, 0, len(codecs))
	for f := range codecs {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
