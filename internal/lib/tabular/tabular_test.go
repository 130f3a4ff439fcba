package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantColumns []string
		wantRows    [][]string
		wantErr     bool
	}{
		{
			name:        "header and rows",
			input:       "Store_Type,Region_Code,Predicted_Orders\n1,10,55\n2,33,120\n",
			wantColumns: []string{"Store_Type", "Region_Code", "Predicted_Orders"},
			wantRows:    [][]string{{"1", "10", "55"}, {"2", "33", "120"}},
		},
		{
			name:        "header only",
			input:       "a,b,c\n",
			wantColumns: []string{"a", "b", "c"},
			wantRows:    [][]string{},
		},
		{
			name:        "quoted field with comma",
			input:       "name,note\njemin,\"hello, world\"\n",
			wantColumns: []string{"name", "note"},
			wantRows:    [][]string{{"jemin", "hello, world"}},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "ragged row",
			input:   "a,b\n1,2,3\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input))

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantColumns, got.Columns)
			assert.Equal(t, tt.wantRows, got.Rows)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := "Store_id,Store_Type,Location_Type,Region_Code,week\n0,1,0,10,1\n0,2,1,33,52\n0,3,2,52,53\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	serialized, err := table.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(serialized)
	require.NoError(t, err)
	assert.Equal(t, table, restored)

	csvOut, err := restored.CSVString()
	require.NoError(t, err)
	assert.Equal(t, input, csvOut)
}

func TestRoundTrip_SerializeIsStable(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}},
	}

	first, err := table.Serialize()
	require.NoError(t, err)

	restored, err := Deserialize(first)
	require.NoError(t, err)

	second, err := restored.Serialize()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeserialize_InvalidJSON(t *testing.T) {
	_, err := Deserialize("not a json")
	assert.Error(t, err)
}
