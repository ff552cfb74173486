package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planningDataset(t *testing.T) Dataset {
	t.Helper()
	data := Dataset{
		Title:   "Planning de revisions",
		Summary: []string{"Global: Normal (61%)"},
		Headers: []string{"Matiere", "Jours restants", "Statut"},
	}
	require.NoError(t, data.AddRow("Maths", "7", "Normal"))
	require.NoError(t, data.AddRow("Physique; chimie", "0", "En retard"))
	return data
}

func TestDatasetAddRowChecksWidth(t *testing.T) {
	data := Dataset{Headers: []string{"a", "b"}}
	assert.Error(t, data.AddRow("only-one"))
	assert.Empty(t, data.Rows)
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(planningDataset(t))
	require.NoError(t, err)

	assert.Equal(t, "Matiere;Jours restants;Statut\nMaths;7;Normal\n\"Physique; chimie\";0;En retard\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(planningDataset(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = NewPDFExporter().Render(Dataset{Headers: []string{"a"}, Rows: [][]string{{"x", "y"}}})
	assert.Error(t, err)
}
