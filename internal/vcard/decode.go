package vcard

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncodings is the order in which encodings are tried when none are configured.
var DefaultEncodings = []string{"utf-8", "utf-8-sig", "utf-16", "latin-1", "windows-1252"}

const byteOrderMark = "\uFEFF"

// Decoder turns raw bytes into text with LF line endings, trying a fixed list of
// encodings in order. Decoding never fails: when no encoding accepts the input,
// the bytes are read as UTF-8 with U+FFFD standing in for each invalid byte.
type Decoder struct {
	encodings []string
}

// NewDecoder creates a Decoder for the given encoding names, tried in order.
// With no names, DefaultEncodings is used. Unknown names are skipped at decode time.
func NewDecoder(encodings ...string) *Decoder {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	return &Decoder{encodings: append([]string(nil), encodings...)}
}

// Encodings returns the names the decoder tries, in order.
func (d *Decoder) Encodings() []string {
	return append([]string(nil), d.encodings...)
}

// Decode returns raw decoded under the first encoding that accepts it.
func (d *Decoder) Decode(raw []byte) string {
	text, _ := d.DecodeName(raw)
	return text
}

// DecodeName is Decode that also reports which encoding was used.
// The name is empty when the lossy UTF-8 fallback was taken.
func (d *Decoder) DecodeName(raw []byte) (string, string) {
	for _, name := range d.encodings {
		if text, ok := decodeAs(name, raw); ok {
			return NormalizeLineEndings(text), name
		}
	}
	// string -> []rune maps every invalid byte to utf8.RuneError.
	text := string([]rune(string(raw)))
	return NormalizeLineEndings(strings.TrimPrefix(text, byteOrderMark)), ""
}

// decodeAs strictly decodes raw under one named encoding.
func decodeAs(name string, raw []byte) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8", "utf-8-sig", "utf_8_sig":
		if !utf8.Valid(raw) {
			return "", false
		}
		return strings.TrimPrefix(string(raw), byteOrderMark), true
	case "utf-16", "utf16":
		if len(raw)%2 != 0 || !hasUTF16BOM(raw) {
			return "", false
		}
		return strictDecode(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), raw)
	case "latin-1", "latin1", "iso-8859-1", "l1":
		return strictDecode(charmap.ISO8859_1, raw)
	case "windows-1252", "cp1252":
		return strictDecode(charmap.Windows1252, raw)
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", false
	}
	return strictDecode(enc, raw)
}

// strictDecode decodes raw with enc, treating any replacement character in the
// output as a failure.
func strictDecode(enc encoding.Encoding, raw []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
		return "", false
	}
	return strings.TrimPrefix(string(out), byteOrderMark), true
}

func hasUTF16BOM(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) || bytes.HasPrefix(raw, []byte{0xFF, 0xFE})
}
