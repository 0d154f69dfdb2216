package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageMarshalsAsFixedString(t *testing.T) {
	raw, err := json.Marshal(Percentage(91.5))
	require.NoError(t, err)
	assert.Equal(t, `"91.50"`, string(raw))

	raw, err = json.Marshal(Percentage(0))
	require.NoError(t, err)
	assert.Equal(t, `"0.00"`, string(raw))
}

func TestPercentageUnmarshalAcceptsBothForms(t *testing.T) {
	var quoted Percentage
	require.NoError(t, json.Unmarshal([]byte(`"66.67"`), &quoted))
	assert.Equal(t, Percentage(66.67), quoted)

	var bare Percentage
	require.NoError(t, json.Unmarshal([]byte(`66.67`), &bare))
	assert.Equal(t, Percentage(66.67), bare)
}

func TestPercentageScan(t *testing.T) {
	var p Percentage
	require.NoError(t, p.Scan(91.5))
	assert.Equal(t, "91.50", p.String())

	require.NoError(t, p.Scan([]byte("72.25")))
	assert.Equal(t, "72.25", p.String())

	require.NoError(t, p.Scan(int64(80)))
	assert.Equal(t, "80.00", p.String())
}
