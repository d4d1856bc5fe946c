package model

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryMarshalJSONKeyOrder(t *testing.T) {
	s := Summary{
		Departments: []string{"Finance", "HR", "IT"},
		Groups: map[string]Aggregate{
			"IT":      {AverageSalary: 1, TotalSalary: 1, HighestSalary: 1, LowestSalary: 1},
			"HR":      {AverageSalary: 2, TotalSalary: 2, HighestSalary: 2, LowestSalary: 2},
			"Finance": {AverageSalary: 3, TotalSalary: 3, HighestSalary: 3, LowestSalary: 3},
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var keys []string
	dec := json.NewDecoder(bytes.NewReader(data))
	_, err = dec.Token() // {
	require.NoError(t, err)
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var agg Aggregate
		require.NoError(t, dec.Decode(&agg))
	}
	assert.Equal(t, []string{"Finance", "HR", "IT"}, keys)
}

func TestSummaryMarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Summary{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"text", "json", "csv", "excel"} {
		f, err := ParseFormat(ok)
		require.NoError(t, err)
		assert.Equal(t, Format(ok), f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
