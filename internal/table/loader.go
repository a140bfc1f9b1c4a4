package table

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ObjectFetcher reads an object from a bucket. internal/aws implements it
// for s3:// sources.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type Options struct {
	// Delimiter overrides sniffing when non-zero.
	Delimiter rune
	// Encoding forces a WHATWG encoding label instead of detecting one.
	Encoding string
	// Fetcher serves s3:// paths; nil rejects them.
	Fetcher ObjectFetcher
}

// naTokens are the strings read as null, matching pandas' default na_values.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// Load reads path (a local file or s3://bucket/key), detects its encoding
// and parses it.
func Load(ctx context.Context, path string, opt Options) (*Table, error) {
	raw, err := readSource(ctx, path, opt.Fetcher)
	if err != nil {
		return nil, &EncodingDetectionError{Path: path, Err: err}
	}

	label := strings.ToLower(strings.TrimSpace(opt.Encoding))
	if label == "" {
		label, err = DetectEncoding(raw)
		if err != nil {
			return nil, &EncodingDetectionError{Path: path, Err: err}
		}
	}

	text, err := decode(raw, label)
	if err != nil {
		return nil, &EncodingDetectionError{Path: path, Err: err}
	}

	tbl, err := Parse(bytes.NewReader(text), opt)
	if err != nil {
		var malformed *MalformedTableError
		if errors.As(err, &malformed) {
			malformed.Source = path
			return nil, malformed
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	tbl.Source = path
	tbl.Encoding = label
	return tbl, nil
}

func readSource(ctx context.Context, path string, fetcher ObjectFetcher) ([]byte, error) {
	bucket, key, ok := splitS3URI(path)
	if !ok {
		return os.ReadFile(path)
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: no S3 client configured for %s", ErrUnsupportedSource, path)
	}

	body, err := fetcher.Fetch(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func splitS3URI(path string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(path, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, bucket != "" && key != ""
}

// Parse reads UTF-8 delimited text with a header row into a Table.
func Parse(r io.Reader, opt Options) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	data = bytes.TrimPrefix(data, bomUTF8)

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedTableError{Reason: "no header row"}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 1 && strings.TrimSpace(header[0]) == "" {
		return nil, &MalformedTableError{Reason: "header row has no columns"}
	}

	names := uniqueNames(header)
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		for i := range cols {
			if i >= len(rec) {
				cols[i].Values = append(cols[i].Values, Null())
				continue
			}
			cols[i].Values = append(cols[i].Values, cell(rec[i]))
		}
	}

	return &Table{Encoding: "utf-8", Columns: cols}, nil
}

func cell(s string) Cell {
	if _, na := naTokens[s]; na {
		return Null()
	}
	return Value(s)
}

// uniqueNames suffixes repeated header names with .1, .2, ... so every
// column name is unique within a table.
func uniqueNames(header []string) []string {
	seen := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, h := range header {
		taken[h] = struct{}{}
	}

	out := make([]string, len(header))
	for i, h := range header {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			out[i] = h
			continue
		}
		name := fmt.Sprintf("%s.%d", h, n)
		for {
			if _, clash := taken[name]; !clash {
				break
			}
			n++
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}

// sniffDelimiter picks the candidate occurring most often, outside quotes,
// on the header line. Ties and no hits fall back to a comma.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range string(line) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}
