package spectrum

import (
	"bufio"
	"io"
	"strconv"
)

// formatValue formats v like C's "%.18e", the numpy savetxt default.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'e', 18, 64)
}

// WriteRow writes values as one space-delimited line.
func WriteRow(w io.Writer, values []float64) error {
	bw := bufio.NewWriter(w)
	for i, v := range values {
		if i > 0 {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(formatValue(v)); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteColumn writes values one per line, the layout numpy savetxt uses
// for a one-dimensional array.
func WriteColumn(w io.Writer, values []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		if _, err := bw.WriteString(formatValue(v)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
