package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/go-bts/record"
)

// WriteCSV writes cols to w as CSV: a header line of field names, then one
// line per row. Missing values are written as empty fields.
func WriteCSV(w io.Writer, cols *record.Columns) error {
	names := cols.Names()
	if len(names) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}

	line := make([]string, len(names))
	for i := 0; i < cols.Rows(); i++ {
		for j, name := range names {
			line[j] = formatValue(cols.Column(name)[i])
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
