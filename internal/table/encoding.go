package table

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// minConfidence is the lowest chardet score accepted as a detection.
const minConfidence = 10

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// chardet reports a few charsets under names the WHATWG index does not know.
var charsetAliases = map[string]string{
	"gb-18030": "gb18030",
	"utf-32le": "",
	"utf-32be": "",
}

// DetectEncoding returns the lowercase label of the text encoding of data.
// A byte order mark wins, then valid UTF-8, then chardet's best guess.
func DetectEncoding(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return "utf-8", nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return "utf-16le", nil
	case bytes.HasPrefix(data, bomUTF16BE):
		return "utf-16be", nil
	case utf8.Valid(data):
		return "utf-8", nil
	}

	return charsetLabel(chardet.NewTextDetector().DetectBest(data))
}

// charsetLabel turns a chardet verdict into a label decode understands.
func charsetLabel(res *chardet.Result, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownEncoding, err)
	}
	if res.Confidence < minConfidence {
		return "", fmt.Errorf("%w: best guess %s at %d%% confidence", ErrUnknownEncoding, res.Charset, res.Confidence)
	}

	label := strings.ToLower(res.Charset)
	if alias, ok := charsetAliases[label]; ok {
		if alias == "" {
			return "", fmt.Errorf("%w: %s is not supported", ErrUnknownEncoding, res.Charset)
		}
		label = alias
	}
	return label, nil
}

// decode converts data from the labelled encoding to UTF-8, dropping any BOM.
func decode(data []byte, label string) ([]byte, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, label)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return out, nil
}
