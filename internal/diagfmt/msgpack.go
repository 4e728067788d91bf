package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"aic/internal/diag"
	"aic/internal/source"
)

// Msgpack writes the same document as JSON in msgpack encoding, for tools
// that consume compiler output programmatically.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildOutput(bag, fs, opts))
}

// DecodeMsgpack reads a document written by Msgpack.
func DecodeMsgpack(r io.Reader) (Output, error) {
	var out Output
	err := msgpack.NewDecoder(r).Decode(&out)
	return out, err
}
