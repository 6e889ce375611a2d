// checkinpivot pivots a flat check-in CSV (one line per ticket position) into
// a check-in list with one row per attendee and one column per product.
//
// The input needs the columns "Order code", "Attendee name" and "Product";
// "Variation", "E-Mail" and "Paid" are used when present. Output uses the
// same quoting as the server export.
//
//	checkinpivot [flags] [input.csv]
//
// Without an input file the CSV is read from stdin.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/netways/checkinlist-export/internal/checkin"
	"github.com/netways/checkinlist-export/internal/domain"
)

// Input column names.
const (
	colOrderCode = "Order code"
	colAttendee  = "Attendee name"
	colProduct   = "Product"
	colVariation = "Variation"
	colEmail     = "E-Mail"
	colPaid      = "Paid"
)

// markerPaid selects the 1/0 paid marker instead of a constant string.
const markerPaid = "paid"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	output       string
	delimiter    string
	marker       string
	baseline     string
	sortProducts bool
	paidOnly     bool
	email        bool
	defuse       bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("checkinpivot", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.output, "output", "o", "", "write the pivoted CSV to this file instead of stdout")
	flagSet.StringVarP(&opts.delimiter, "delimiter", "d", ",", "field delimiter of the input CSV")
	flagSet.StringVar(&opts.marker, "marker", "yes", `cell value for a held product, or "paid" for 1 (paid) / 0 (pending)`)
	flagSet.StringVar(&opts.baseline, "baseline", "", "product that is always the first product column")
	flagSet.BoolVar(&opts.sortProducts, "sort-products", false, "order product columns alphabetically")
	flagSet.BoolVar(&opts.paidOnly, "paid-only", false, `skip positions whose "Paid" column is false`)
	flagSet.BoolVar(&opts.email, "email", false, "add the E-Mail column")
	flagSet.BoolVar(&opts.defuse, "defuse", true, "prefix cells that spreadsheets would evaluate as formulas")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("expected at most one input file, got %d", flagSet.NArg())
	}

	in := stdin
	if flagSet.NArg() == 1 && flagSet.Arg(0) != "-" {
		f, err := os.Open(flagSet.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	positions, err := readPositions(in, opts)
	if err != nil {
		return err
	}

	mark := checkin.ConstMarker(opts.marker)
	if opts.marker == markerPaid {
		mark = checkin.PaidMarker
	}
	ds := checkin.Build(positions, nil, mark)
	checkin.Layout{SortProducts: opts.sortProducts, BaselineProduct: opts.baseline}.Apply(ds)
	table := checkin.Render(ds, checkin.RenderOptions{
		NameScheme: domain.LookupNameScheme(domain.DefaultNameScheme),
		Columns:    domain.ExportColumns{Email: opts.email},
	})

	encoding := checkin.EncodeOptions{Defuse: opts.defuse}
	if opts.output == "" {
		return checkin.EncodeTo(stdout, table, encoding)
	}
	return writeFile(opts.output, table, encoding)
}

// writeFile encodes table into a new file at path. A failed close is
// reported, since it can lose buffered data.
func writeFile(path string, table checkin.Table, encoding checkin.EncodeOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return checkin.EncodeTo(f, table, encoding)
}

// readPositions turns every input line into a ticket position.
func readPositions(r io.Reader, opts options) ([]domain.TicketPosition, error) {
	comma, size := utf8.DecodeRuneInString(opts.delimiter)
	if size == 0 || size != len(opts.delimiter) {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", opts.delimiter)
	}
	reader := csv.NewReader(r)
	reader.Comma = comma

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	required := []string{colOrderCode, colAttendee, colProduct}
	if opts.paidOnly || opts.marker == markerPaid {
		required = append(required, colPaid)
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("input is missing column %q", name)
		}
	}

	field := func(record []string, name string) string {
		if i, ok := cols[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	var positions []domain.TicketPosition
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return positions, nil
		}
		if err != nil {
			return nil, err
		}

		status := domain.StatusPaid
		if _, ok := cols[colPaid]; ok {
			paid, err := parsePaid(field(record, colPaid))
			if err != nil {
				line, _ := reader.FieldPos(cols[colPaid])
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if !paid {
				status = domain.StatusPending
			}
		}
		if opts.paidOnly && status != domain.StatusPaid {
			continue
		}

		positions = append(positions, domain.TicketPosition{
			ID:             uuid.New(),
			OrderCode:      field(record, colOrderCode),
			OrderStatus:    status,
			AttendeeName:   field(record, colAttendee),
			AttendeeEmail:  field(record, colEmail),
			ProductName:    field(record, colProduct),
			VariationLabel: field(record, colVariation),
		})
	}
}

// parsePaid accepts the spellings spreadsheet exports use for booleans.
func parsePaid(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true, nil
	case "no", "n", "":
		return false, nil
	}
	paid, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid %q value %q", colPaid, s)
	}
	return paid, nil
}
