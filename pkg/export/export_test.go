package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Subject", "Category", "Grade"},
		Rows: []map[string]string{
			{"Subject": "Data Structures", "Category": "Programming", "Grade": "1.5"},
			{"Subject": "Databases", "Category": "Database"},
		},
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(sampleDataset())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Subject", "Category", "Grade"}, records[0])
	assert.Equal(t, []string{"Data Structures", "Programming", "1.5"}, records[1])
	assert.Equal(t, []string{"Databases", "Database", ""}, records[2], "missing cells render empty")
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := CSV(Dataset{})
	require.Error(t, err)
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleDataset(), "Guide Summary")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output starts with the PDF magic")
}

func TestPDFRequiresHeaders(t *testing.T) {
	_, err := PDF(Dataset{}, "")
	require.Error(t, err)
}
