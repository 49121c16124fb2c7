package dataset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultEncoding is the encoding the published dataset files were written in.
const DefaultEncoding = "latin-1"

// Encoding decodes data file lines into UTF-8 text.
type Encoding struct {
	Name string
	enc  encoding.Encoding
	utf8 bool
}

var knownEncodings = map[string]encoding.Encoding{
	"latin-1":      charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// LookupEncoding resolves an encoding by name. Names outside the built-in
// table are looked up in the IANA registry.
func LookupEncoding(name string) (Encoding, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "":
		return Encoding{}, fmt.Errorf("encoding name is empty")
	case "utf-8", "utf8":
		return Encoding{Name: normalized, utf8: true}, nil
	}
	if enc, ok := knownEncodings[normalized]; ok {
		return Encoding{Name: normalized, enc: enc}, nil
	}
	enc, err := ianaindex.IANA.Encoding(normalized)
	if err != nil {
		return Encoding{}, fmt.Errorf("unknown encoding %q", name)
	}
	if enc == nil {
		return Encoding{}, fmt.Errorf("unsupported encoding %q", name)
	}
	return Encoding{Name: normalized, enc: enc}, nil
}

// IsUTF8 reports whether the encoding is UTF-8 itself.
func (e Encoding) IsUTF8() bool {
	return e.utf8
}

// decode converts one raw line to UTF-8. It returns false when the bytes do
// not decode cleanly, instead of passing replacement characters through.
func (e Encoding) decode(raw []byte) (string, bool) {
	if e.utf8 {
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}
	if e.enc == nil {
		return "", false
	}
	out, err := e.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// looksLikeUTF8 reports whether data holds multi-byte UTF-8 sequences and
// nothing else outside ASCII.
func looksLikeUTF8(data []byte) bool {
	hasHigh := false
	for _, b := range data {
		if b >= utf8.RuneSelf {
			hasHigh = true
			break
		}
	}
	return hasHigh && utf8.Valid(data)
}
