package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// WriteTable renders header and rows as a boxed table to w.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	data := make([][]string, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)

	str, err := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("unable to render table: %w", err)
	}

	_, err = fmt.Fprintln(w, str)

	return err
}
