package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/paddy/pkg/application/dto"
	"github.com/vsinha/paddy/pkg/application/services/ledger"
	"github.com/vsinha/paddy/pkg/domain/entities"
	testhelpers "github.com/vsinha/paddy/pkg/infrastructure/testing"
)

func scenarioSummaries() []dto.ReceptionSummary {
	l := ledger.Hydrate(testhelpers.BuildScenarioRecord(), ledger.WithReference("T-001"))
	return []dto.ReceptionSummary{l.Summarize()}
}

func TestGenerate_Text(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(scenarioSummaries(), Config{Format: "text", Writer: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Reception T-001")
	assert.Contains(t, out, "Net: 9500.00 kg")
	assert.Contains(t, out, "Humedad")
	assert.Contains(t, out, "Total discount: 95.00 kg")
	assert.Contains(t, out, "Paddy net: 9405.00 kg")
	assert.Contains(t, out, "Total to pay: 4514400.00")
	assert.NotContains(t, out, "Rejected inputs")
}

func TestGenerate_JSON(t *testing.T) {
	var buf bytes.Buffer
	summaries := scenarioSummaries()
	require.NoError(t, Generate(summaries, Config{Format: "json", Writer: &buf}))

	var decoded []dto.ReceptionSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, summaries[0].ReceptionID, decoded[0].ReceptionID)
	assert.Equal(t, entities.Humedad, decoded[0].Parameters[0].Parameter)
	assert.True(t, decoded[0].TotalToPay.Equal(summaries[0].TotalToPay))
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(scenarioSummaries(), Config{Format: "csv", Writer: &buf}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, row := rows[0], rows[1]
	require.Len(t, row, len(header))
	assert.Equal(t, 8+3*entities.ParameterCount+8, len(header))

	values := make(map[string]string, len(header))
	for i, col := range header {
		values[col] = row[i]
	}
	assert.Equal(t, "T-001", values["reference"])
	assert.Equal(t, "false", values["grouped"])
	assert.Equal(t, "95.00", values["Humedad_penalty_kg"])
	assert.Equal(t, "9405.00", values["total_paddy_net_kg"])
	assert.Equal(t, "4514400.00", values["total_to_pay"])
}

func TestGenerate_OutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var buf bytes.Buffer

	err := Generate(scenarioSummaries(), Config{Format: "csv", OutputDir: dir, Verbose: true, Writer: &buf})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "receptions.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "T-001")
	assert.Contains(t, buf.String(), "Results saved to")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(nil, Config{Format: "gantt", Writer: &bytes.Buffer{}})
	assert.ErrorContains(t, err, "unsupported output format")
}
