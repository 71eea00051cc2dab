package web

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gapscan/pkg/model"
)

// writeXLSX streams the result table as a single-sheet workbook.
func writeXLSX(w io.Writer, table *model.ResultTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%s_GapUps", table.Ticker)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(resultColumns))
	for i, col := range resultColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range table.Records {
		cells := recordRow(&table.Records[i])
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
