package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/kr/pretty"
	"github.com/travigo/mvg/pkg/mvg"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatPretty Format = "pretty"
	FormatCSV    Format = "csv"
)

var Formats = []Format{FormatJSON, FormatYAML, FormatPretty, FormatCSV}

func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))

	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w: unknown output format %q", mvg.ErrInvalidInput, value)
}

// Write renders value to w. CSV only works for slices of structs with csv tags.
func Write(w io.Writer, format Format, value any) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}

		return encoder.Close()
	case FormatPretty:
		_, err := pretty.Fprintf(w, "%# v\n", value)
		return err
	case FormatCSV:
		return writeCSV(w, value)
	default:
		return fmt.Errorf("%w: unknown output format %q", mvg.ErrInvalidInput, format)
	}
}

func writeCSV(w io.Writer, value any) error {
	switch v := value.(type) {
	case []mvg.Station, []mvg.Departure:
		return gocsv.Marshal(v, w)
	case *mvg.Station:
		return gocsv.Marshal([]*mvg.Station{v}, w)
	case []string:
		for _, line := range v {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: csv output is not supported for %T", mvg.ErrInvalidInput, value)
	}
}
