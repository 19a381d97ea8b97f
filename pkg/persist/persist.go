// Package persist provides codec-based file persistence for hierarchical
// partition trees. Elements are strings at this boundary.
package persist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
)

// File extensions for supported codecs.
const (
	treeExtension = ".tree"
	jsonExtension = ".json"
	lz4Extension  = ".lz4"
)

// ErrUnknownFormat indicates a path whose extension maps to no codec.
var ErrUnknownFormat = errors.New("unknown partition file format")

// Codec defines how a partition tree is serialized and deserialized.
type Codec interface {
	// Encode writes the tree to the writer.
	Encode(w io.Writer, p *hierpart.Partition[string]) error
	// Decode reads a tree from the reader.
	Decode(r io.Reader) (*hierpart.Partition[string], error)
	// Extension returns the file extension for this codec (e.g. ".tree").
	Extension() string
}

// CodecForPath selects a codec from the path's extension. A trailing ".lz4"
// marks LZ4 stream compression and is stripped before codec selection.
func CodecForPath(path string) (codec Codec, compressed bool, err error) {
	if strings.HasSuffix(path, lz4Extension) {
		compressed = true
		path = strings.TrimSuffix(path, lz4Extension)
	}

	switch filepath.Ext(path) {
	case treeExtension:
		return NewTextCodec(), compressed, nil
	case jsonExtension:
		return NewJSONCodec(), compressed, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Base(path))
	}
}

// Save writes the tree to path, choosing the codec from the extension.
func Save(path string, p *hierpart.Partition[string]) error {
	codec, compressed, err := CodecForPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create partition file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file

	var zw *lz4.Writer

	if compressed {
		zw = lz4.NewWriter(file)
		w = zw
	}

	err = codec.Encode(w, p)
	if err != nil {
		return fmt.Errorf("encode partition: %w", err)
	}

	if zw != nil {
		err = zw.Close()
		if err != nil {
			return fmt.Errorf("flush compressed partition: %w", err)
		}
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close partition file: %w", err)
	}

	return nil
}

// Load reads a tree from path, choosing the codec from the extension.
func Load(path string) (*hierpart.Partition[string], error) {
	codec, compressed, err := CodecForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open partition file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if compressed {
		r = lz4.NewReader(file)
	}

	p, err := codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode partition: %w", err)
	}

	return p, nil
}
