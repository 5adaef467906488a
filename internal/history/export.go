package history

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format 是历史导出格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

const exportDecimals = 2

// ParseFormat defaults to JSON when raw is empty.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type used when serving f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Export writes rows in the given format. BMI values are rounded to two
// decimals so exports match the on-screen table.
func Export(w io.Writer, rows []Row, f Format) error {
	rounded := make([]Row, len(rows))
	for i, r := range rows {
		r.BMI = roundBMI(r.BMI)
		rounded[i] = r
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rounded)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rounded); err != nil {
			return fmt.Errorf("encode yaml history failed: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"calculation", "bmi", "category"}); err != nil {
			return err
		}
		for _, r := range rounded {
			rec := []string{
				strconv.Itoa(r.Index),
				decimal.NewFromFloat(r.BMI).StringFixed(exportDecimals),
				string(r.Category),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

func roundBMI(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(exportDecimals).Float64()
	return f
}
