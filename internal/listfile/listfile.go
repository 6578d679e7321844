// Package listfile reads shopping lists from plain-text and Excel files.
//
// Text lists hold one item per line; blank lines and lines starting with '#'
// are skipped. Legacy single-byte encodings are decoded to UTF-8.
package listfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding names a text encoding
type Encoding string

const (
	EncodingAuto        Encoding = ""
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingISO88591    Encoding = "iso-8859-1"
	EncodingISO885915   Encoding = "iso-8859-15"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// headerNames are first-column cells treated as a header row in spreadsheets.
var headerNames = map[string]bool{"product": true, "products": true, "prodotto": true, "prodotti": true}

// DetectEncoding returns UTF-8 for valid UTF-8 input and Windows-1252 otherwise.
func DetectEncoding(data []byte) Encoding {
	if bytes.HasPrefix(data, utf8BOM) || utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingWindows1252
}

func decoderFor(enc Encoding) (encoding.Encoding, error) {
	switch Encoding(strings.ToLower(string(enc))) {
	case EncodingUTF8:
		return nil, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	case EncodingISO88591, "latin1":
		return charmap.ISO8859_1, nil
	case EncodingISO885915, "latin9":
		return charmap.ISO8859_15, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// Decode converts data from enc to UTF-8. EncodingAuto detects the encoding.
func Decode(data []byte, enc Encoding) (string, error) {
	if enc == EncodingAuto {
		enc = DetectEncoding(data)
	}
	dec, err := decoderFor(enc)
	if err != nil {
		return "", err
	}
	if dec == nil {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", enc, err)
	}
	return string(out), nil
}

// ParseText returns the items of a text list.
func ParseText(data []byte, enc Encoding) ([]string, error) {
	text, err := Decode(data, enc)
	if err != nil {
		return nil, err
	}

	var items []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}
	return items, nil
}

// ParseXLSX returns the first-column items of the first sheet of a workbook.
// A leading header cell such as "product" or "prodotto" is skipped.
func ParseXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}

	var items []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if i == 0 && headerNames[strings.ToLower(cell)] {
			continue
		}
		items = append(items, cell)
	}
	return items, nil
}

// Load reads the list at path. Files ending in .xlsx are read as workbooks,
// anything else as text in enc.
func Load(path string, enc Encoding) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		items, err = ParseXLSX(bytes.NewReader(data))
	} else {
		items, err = ParseText(data, enc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: list is empty", path)
	}
	return items, nil
}
