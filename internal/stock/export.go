package stock

import "github.com/mamadbah2/fleetstock/internal/domain/models"

// ExportHeader is the header row expected by the spreadsheet export.
var ExportHeader = []string{"id", "name", "category", "quantity", "unit", "minThreshold"}

// ExportRows flattens the catalog into a header row followed by one row per item.
func ExportRows(items []models.InventoryItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items)+1)

	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	rows = append(rows, header)

	for _, item := range items {
		rows = append(rows, []interface{}{item.ID, item.Name, item.Category, item.Quantity, item.Unit, item.MinThreshold})
	}
	return rows
}
