package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospector-cli/internal/model"
)

func TestWriteScoredCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")

	records := []model.ScoredRecord{
		{
			Record: model.Record{
				Name: "Kebab du Coin", Address: "3 rue de la Paix", City: "Paris",
				Phone: "0148300000", Rating: 4.5, ReviewCount: 120,
			},
			OpportunityScore: 90,
			RedFlags:         []model.RedFlag{model.FlagNoWebsite},
			Strengths:        []model.StrengthTag{model.TagWellRated, model.TagPopular, model.TagNeedsDigital},
		},
		{
			Record:           model.Record{Name: "Chez Inconnu", City: "Meaux"},
			OpportunityScore: 45,
			RedFlags:         []model.RedFlag{model.FlagNoWebsite, model.FlagNoPhone, model.FlagFewReviews},
		},
	}

	require.NoError(t, WriteScoredCSV(records, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, scoredColumns, rows[0])
	assert.Equal(t, []string{
		"Kebab du Coin", "3 rue de la Paix", "Paris", "0148300000", "",
		"4.5", "120", "90", "high", "no-website", "well-rated;popular;needs-digital",
	}, rows[1])

	// Unknown rating renders empty, not "0.0".
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "no-website;no-phone;few-reviews", rows[2][9])
	assert.Equal(t, "medium", rows[2][8])
}

func TestWriteScoredCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored.csv")

	require.NoError(t, WriteScoredCSV(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, scoredColumns, rows[0])
}

func TestWriteCityXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aggregates.xlsx")

	cities := []model.CityAggregate{
		{
			City: "Paris", TotalEstablishments: 12, Categories: []string{"Pizza", "Kebab"},
			AvgRating: 4.12, WithPhone: 10, WithWebsite: 6, HighOpportunity: 4,
			Sessions: []string{"s1", "s2"},
		},
	}
	types := []model.TypeAggregate{
		{
			City: "Paris", Category: "Pizza", TotalEstablishments: 7,
			AvgRating: 4.3, AvgReviews: 88.5, WithPhone: 6, WithWebsite: 4, HighOpportunity: 2,
		},
	}

	require.NoError(t, WriteCityXLSX(cities, types, path))

	wb, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 2)

	citySheet := wb.Sheet["Cities"]
	require.NotNil(t, citySheet)
	require.Len(t, citySheet.Rows, 2)
	assert.Equal(t, "City", citySheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Paris", citySheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "12", citySheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "Pizza, Kebab", citySheet.Rows[1].Cells[2].Value)

	typeSheet := wb.Sheet["Types"]
	require.NotNil(t, typeSheet)
	require.Len(t, typeSheet.Rows, 2)
	assert.Equal(t, "Pizza", typeSheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "7", typeSheet.Rows[1].Cells[2].Value)
}

func TestWriteRegionJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")

	regions := []model.RegionAggregate{
		{
			Code: "75", Name: "Paris",
			Cities:              []model.CityAggregate{{City: "Paris", TotalEstablishments: 12}},
			TotalEstablishments: 12, AvgRating: 4.1, HasData: true,
		},
		{Code: "77", Name: "Seine-et-Marne", HasData: false},
	}

	require.NoError(t, WriteRegionJSON(regions, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []model.RegionAggregate
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "75", got[0].Code)
	assert.True(t, got[0].HasData)
	assert.False(t, got[1].HasData)
}
