// Package csvexport writes dashboard tables as CSV downloads.
//
// Every field is quoted, so the output does not depend on the field content
// and spreadsheet tools never split a value on an embedded comma.
package csvexport

import (
	"bufio"
	"io"
	"strings"
)

var quoteEscaper = strings.NewReplacer(`"`, `""`)

// Write writes header and rows to w. Rows shorter than the header are padded
// with empty fields.
func Write(w io.Writer, header []string, rows [][]string) error {
	bw := bufio.NewWriter(w)
	if err := writeRecord(bw, header, len(header)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRecord(bw, r, len(header)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, fields []string, width int) error {
	if width < len(fields) {
		width = len(fields)
	}
	for i := 0; i < width; i++ {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		var f string
		if i < len(fields) {
			f = fields[i]
		}
		if _, err := w.WriteString(`"` + quoteEscaper.Replace(f) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// Filename builds "<prefix>-YYYYMMDD.csv".
func Filename(prefix, date string) string {
	return prefix + "-" + date + ".csv"
}
