package scanner

import (
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load reads the file at path and decodes it permissively.
// Invalid UTF-8 sequences become U+FFFD instead of failing the load.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	defer f.Close()

	text, err := Decode(f, nil)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	return text, nil
}

// Decode reads r to the end and converts it to UTF-8.
// A byte order mark always wins; otherwise enc is used, and a nil enc
// means UTF-8 with replacement of invalid bytes.
func Decode(r io.Reader, enc encoding.Encoding) (string, error) {
	fallback := unicode.UTF8.NewDecoder()
	if enc != nil {
		fallback = enc.NewDecoder()
	}

	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(fallback)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
