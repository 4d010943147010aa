package render

import (
	"fmt"
	"location-lookup/internal/services"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet name results are written to.
const ExportSheet = "Results"

// ExportXLSX writes every result to a new workbook at path. Distance and
// travel-time cells are left blank for region results.
func ExportXLSX(path string, views []services.ResultView) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ExportSheet); err != nil {
		return fmt.Errorf("export xlsx: new sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(ExportSheet)
	if err != nil {
		return fmt.Errorf("export xlsx: stream writer: %w", err)
	}

	headers := []interface{}{
		"Name", "Category", "Region", "Latitude", "Longitude",
		"Distance (m)", "Walk (min)", "Ride (min)", "Map",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("export xlsx: header: %w", err)
	}

	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export xlsx: row %d: %w", i+2, err)
		}
		row := []interface{}{
			v.Name, v.Category, v.Region, v.Coords.Lat, v.Coords.Lon,
			cellValue(v.DistanceMeters), cellValue(v.WalkMinutes), cellValue(v.RideMinutes),
			v.MapURL,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("export xlsx: row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("export xlsx: flush: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export xlsx: delete default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(ExportSheet); err == nil {
		f.SetActiveSheet(index)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export xlsx: save %s: %w", path, err)
	}
	return nil
}

func cellValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
