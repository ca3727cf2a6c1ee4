package bomupload

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Accepted column-name spellings per field. Resolution takes the first
// populated synonym, in this order.
var columnSynonyms = map[string][]string{
	"name":     {"item name", "name", "item", "product", "product name", "description", "particulars"},
	"quantity": {"qty", "quantity", "qnty", "pcs", "units", "no of pcs"},
	"cost":     {"price", "rate", "cost", "unit price", "unit cost", "purchase price", "mrp"},
	"sku":      {"sku", "item code", "code", "stock code", "barcode"},
	"size":     {"size", "sz"},
	"color":    {"color", "colour", "shade"},
	"vendor":   {"vendor", "supplier", "brand"},
	"hsn":      {"hsn", "hsn code", "hsn/sac"},
}

// DecodeRecords maps spreadsheet rows (header -> cell) onto parsed
// rows via the synonym table. Quantity and cost fall back to 1 and 0
// on parse failure instead of failing the row.
func DecodeRecords(records []map[string]string) []ParsedRow {
	var rows []ParsedRow

	for _, record := range records {
		normalized := make(map[string]string, len(record))
		for k, v := range record {
			normalized[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
		}

		name := resolveColumn(normalized, "name")
		if len(name) <= 1 {
			continue
		}

		quantity := 1
		if raw := resolveColumn(normalized, "quantity"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
				quantity = n
			} else if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 1 {
				quantity = int(f)
			}
		}

		cost := 0.0
		if raw := resolveColumn(normalized, "cost"); raw != "" {
			raw = strings.ReplaceAll(raw, ",", "")
			if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
				cost = f
			}
		}

		size := strings.ToUpper(resolveColumn(normalized, "size"))
		sku := resolveColumn(normalized, "sku")
		if sku == "" {
			sku = generateSKU(name, size)
		}

		rows = append(rows, ParsedRow{
			Name:     name,
			Quantity: quantity,
			UnitCost: cost,
			SKU:      sku,
			Size:     size,
			Color:    titleCase(resolveColumn(normalized, "color")),
			Vendor:   resolveColumn(normalized, "vendor"),
			HSN:      resolveColumn(normalized, "hsn"),
			Action:   ActionCreate,
		})
	}
	return rows
}

func resolveColumn(record map[string]string, field string) string {
	for _, synonym := range columnSynonyms[field] {
		if v, ok := record[synonym]; ok && v != "" {
			return v
		}
	}
	return ""
}

// DecodeSheet decodes a grid of cells (first row is the header). When
// no column maps, the sheet degrades to plain text and goes through
// the heuristic line parser so unrecognized layouts still import.
func DecodeSheet(grid [][]string) []ParsedRow {
	if len(grid) == 0 {
		return nil
	}

	headers := grid[0]
	var records []map[string]string
	for _, cells := range grid[1:] {
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				record[header] = cells[i]
			}
		}
		records = append(records, record)
	}

	rows := DecodeRecords(records)
	if len(rows) > 0 {
		return rows
	}
	return ParseText(sheetToText(grid))
}

func sheetToText(grid [][]string) string {
	lines := make([]string, 0, len(grid))
	for _, cells := range grid {
		lines = append(lines, strings.TrimSpace(strings.Join(cells, " ")))
	}
	return strings.Join(lines, "\n")
}

// DecodeWorkbook reads the first sheet of an XLS/XLSX file.
func DecodeWorkbook(r io.Reader) ([]ParsedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return DecodeSheet(grid), nil
}

// DecodeCSV reads a comma-separated file with the same fallback chain.
func DecodeCSV(r io.Reader) ([]ParsedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	grid, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return DecodeSheet(grid), nil
}
