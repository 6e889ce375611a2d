package checkin

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVWriter writes records quoting every non-numeric field.
//
// Strings are always wrapped in double quotes (embedded quotes are doubled),
// numbers are written bare. Decimals keep at least two fractional digits.
// With Defuse set, strings that a spreadsheet would evaluate as a formula get
// a leading apostrophe; strings that are plain numbers such as "-5" are left
// alone.
type CSVWriter struct {
	Comma   rune
	UseCRLF bool
	Defuse  bool

	w *bufio.Writer
}

// NewCSVWriter returns a writer using ",", CRLF line endings and formula defusing.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{
		Comma:   ',',
		UseCRLF: true,
		Defuse:  true,
		w:       bufio.NewWriter(w),
	}
}

// Write writes a single record.
func (c *CSVWriter) Write(record []any) error {
	for i, field := range record {
		if i > 0 {
			if _, err := c.w.WriteRune(c.Comma); err != nil {
				return err
			}
		}
		if err := c.writeField(field); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	var err error
	if c.UseCRLF {
		_, err = c.w.WriteString("\r\n")
	} else {
		err = c.w.WriteByte('\n')
	}
	return err
}

// WriteStrings writes a record made only of strings, such as a header.
func (c *CSVWriter) WriteStrings(record []string) error {
	fields := make([]any, len(record))
	for i, s := range record {
		fields[i] = s
	}
	return c.Write(fields)
}

// Flush writes any buffered data to the underlying io.Writer.
func (c *CSVWriter) Flush() error {
	return c.w.Flush()
}

func (c *CSVWriter) writeField(field any) error {
	switch v := field.(type) {
	case nil:
		return c.writeQuoted("")
	case string:
		return c.writeQuoted(v)
	case int:
		_, err := c.w.WriteString(strconv.Itoa(v))
		return err
	case int64:
		_, err := c.w.WriteString(strconv.FormatInt(v, 10))
		return err
	case float64:
		_, err := c.w.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		return err
	case decimal.Decimal:
		_, err := c.w.WriteString(v.StringFixed(max(2, -v.Exponent())))
		return err
	case fmt.Stringer:
		return c.writeQuoted(v.String())
	default:
		return fmt.Errorf("unsupported cell type %T", field)
	}
}

func (c *CSVWriter) writeQuoted(s string) error {
	if c.Defuse && needsDefusing(s) {
		s = "'" + s
	}
	if err := c.w.WriteByte('"'); err != nil {
		return err
	}
	if _, err := c.w.WriteString(strings.ReplaceAll(s, `"`, `""`)); err != nil {
		return err
	}
	return c.w.WriteByte('"')
}

// plainNumber matches strings spreadsheets read as numbers, not formulas.
var plainNumber = regexp.MustCompile(`^-?[0-9,.]+$`)

// needsDefusing reports whether s starts with a character spreadsheet
// applications treat as the start of a formula.
func needsDefusing(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return !plainNumber.MatchString(s)
	}
	return false
}

// EncodeOptions controls how Encode writes a table.
type EncodeOptions struct {
	// Defuse prefixes formula-like string cells, header included, with an
	// apostrophe. Defused cells no longer read back verbatim.
	Defuse bool
}

// Encode writes t as CSV (header first) and returns the bytes.
func Encode(t Table, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, t, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes t as CSV (header first) to w.
func EncodeTo(w io.Writer, t Table, opts EncodeOptions) error {
	cw := NewCSVWriter(w)
	cw.Defuse = opts.Defuse
	if err := cw.WriteStrings(t.Header); err != nil {
		return fmt.Errorf("checkin.Encode: header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("checkin.Encode: row %d: %w", i, err)
		}
	}
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("checkin.Encode: %w", err)
	}
	return nil
}
