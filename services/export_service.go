package services

import (
	"bytes"
	"fmt"
	"jafa-app/models"
	"jafa-app/repositories"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Volné přepravy"

type ExportService struct {
	Shipments *repositories.ShipmentRepository
	Now       func() time.Time
}

func NewExportService(shipments *repositories.ShipmentRepository, now func() time.Time) *ExportService {
	return &ExportService{Shipments: shipments, Now: now}
}

var openShipmentHeaders = []struct {
	label string
	width float64
}{
	{"Referenční číslo", 18},
	{"Místo nakládky", 30},
	{"Datum a čas nakládky", 20},
	{"Místo vykládky", 30},
	{"Datum a čas vykládky", 20},
	{"Popis zboží", 30},
	{"Typ vozidla", 20},
	{"Hmotnost (t)", 14},
	{"Poznámka k hmotnosti", 24},
}

// OpenShipmentsWorkbook lists the shipments still in status new, in loading
// order, as an xlsx file for carriers.
func (s *ExportService) OpenShipmentsWorkbook() (*bytes.Buffer, string, error) {
	shipments, err := s.Shipments.ListOpen()
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	for i, h := range openShipmentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(exportSheet, cell, h.label)
		f.SetColWidth(exportSheet, col, col, h.width)
	}
	last, _ := excelize.CoordinatesToCellName(len(openShipmentHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", last, headerStyle)

	for r, sh := range shipments {
		row := r + 2
		tonnes, _ := sh.EffectiveWeightTonnes().Float64()
		values := []interface{}{
			sh.ReferenceCode,
			sh.LoadingPlace,
			sh.LoadingTime,
			sh.UnloadingPlace,
			sh.UnloadingTime,
			sh.CargoDescription,
			models.VehicleTypeLabels[sh.VehicleType],
			tonnes,
			sh.EstimatedWeightNote,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		f.SetCellStyle(exportSheet, first, end, wrapStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("volne_prepravy_%s.xlsx", s.Now().Format("2006-01-02"))
	return buf, filename, nil
}
