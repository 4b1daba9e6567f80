package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"patrimoine.mr/internal/authz"
)

var assetExportHeaders = []string{
	"Reference", "Ministry", "Sub Entity", "Type", "Condition", "Description",
	"Acquisition Date", "Value (MRU)", "Current Value (MRU)", "Wilaya", "Location",
}

// handleAssetsExport streams the asset register as CSV (default) or XLSX.
// The listing obeys the same ministry scoping as the JSON endpoint.
func (a *API) handleAssetsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	user, ok := a.ensurePermission(w, r, authz.PermViewAssets)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		a.writeError(w, r, http.StatusBadRequest, "errorInvalid", "format must be csv or xlsx")
		return
	}

	assets, err := a.listAssetsFor(r, user)
	if err != nil {
		a.handleRegistryError(w, r, err, "errorLoad")
		return
	}

	data := make([][]string, 0, len(assets))
	for _, asset := range assets {
		current := ""
		if asset.CurrentValue != nil {
			current = strconv.FormatFloat(*asset.CurrentValue, 'f', 2, 64)
		}
		data = append(data, []string{
			asset.Reference,
			asset.MinistryID,
			asset.SubEntity,
			string(asset.Type),
			string(asset.Condition),
			asset.Description,
			asset.AcquisitionDate,
			strconv.FormatFloat(asset.Value, 'f', 2, 64),
			current,
			string(asset.Wilaya),
			asset.LocationDetails,
		})
	}

	if format == "xlsx" {
		exportExcel(w, "Assets", assetExportHeaders, data)
		return
	}
	exportCSV(w, "assets.csv", assetExportHeaders, data)
}

func exportCSV(w http.ResponseWriter, filename string, headers []string, data [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return
	}
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			return
		}
	}
}

func exportExcel(w http.ResponseWriter, sheetName string, headers []string, data [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "failed to create sheet", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		http.Error(w, "failed to create style", http.StatusInternalServerError)
		return
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", column(i))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for rowIdx, row := range data {
		for colIdx, value := range row {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", column(colIdx), rowIdx+2), value)
		}
	}
	for i := range headers {
		col := column(i)
		_ = f.SetColWidth(sheetName, col, col, 18)
	}
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", sheetName))
	if err := f.Write(w); err != nil {
		return
	}
}

func column(i int) string {
	name, err := excelize.ColumnNumberToName(i + 1)
	if err != nil {
		return "A"
	}
	return name
}
