package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospector-cli/internal/model"
)

var cityColumns = []string{
	"City",
	"Establishments",
	"Categories",
	"Avg Rating",
	"With Phone",
	"With Website",
	"High Opportunity",
	"Sessions",
}

var typeColumns = []string{
	"City",
	"Category",
	"Establishments",
	"Avg Rating",
	"Avg Reviews",
	"With Phone",
	"With Website",
	"High Opportunity",
}

// WriteCityXLSX writes city and type aggregates to a two-sheet workbook.
func WriteCityXLSX(cities []model.CityAggregate, types []model.TypeAggregate, outputPath string) error {
	f := xlsx.NewFile()

	citySheet, err := f.AddSheet("Cities")
	if err != nil {
		return eris.Wrap(err, "export: add cities sheet")
	}
	writeHeader(citySheet, cityColumns)
	for _, ca := range cities {
		row := citySheet.AddRow()
		row.AddCell().Value = ca.City
		row.AddCell().SetInt(ca.TotalEstablishments)
		row.AddCell().Value = strings.Join(ca.Categories, ", ")
		row.AddCell().SetFloat(ca.AvgRating)
		row.AddCell().SetInt(ca.WithPhone)
		row.AddCell().SetInt(ca.WithWebsite)
		row.AddCell().SetInt(ca.HighOpportunity)
		row.AddCell().SetInt(len(ca.Sessions))
	}

	typeSheet, err := f.AddSheet("Types")
	if err != nil {
		return eris.Wrap(err, "export: add types sheet")
	}
	writeHeader(typeSheet, typeColumns)
	for _, ta := range types {
		row := typeSheet.AddRow()
		row.AddCell().Value = ta.City
		row.AddCell().Value = ta.Category
		row.AddCell().SetInt(ta.TotalEstablishments)
		row.AddCell().SetFloat(ta.AvgRating)
		row.AddCell().SetFloat(ta.AvgReviews)
		row.AddCell().SetInt(ta.WithPhone)
		row.AddCell().SetInt(ta.WithWebsite)
		row.AddCell().SetInt(ta.HighOpportunity)
	}

	return eris.Wrap(f.Save(outputPath), "export: save xlsx")
}

func writeHeader(sheet *xlsx.Sheet, columns []string) {
	row := sheet.AddRow()
	for _, c := range columns {
		row.AddCell().Value = c
	}
}
