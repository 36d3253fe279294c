package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cpm/internal/model"
)

func TestDateJSON(t *testing.T) {
	tests := map[string]struct {
		data    string
		expDate model.Date
		expErr  bool
	}{
		"A calendar date should be decoded.": {
			data:    `"2024-03-15"`,
			expDate: model.NewDate(2024, 3, 15),
		},
		"A full timestamp should keep only the day.": {
			data:    `"2024-03-15T22:10:00Z"`,
			expDate: model.NewDate(2024, 3, 15),
		},
		"An empty string should decode to the zero date.": {
			data:    `""`,
			expDate: model.Date{},
		},
		"A null should decode to the zero date.": {
			data:    `null`,
			expDate: model.Date{},
		},
		"A malformed date should fail.": {
			data:   `"15/03/2024"`,
			expErr: true,
		},
		"A number should fail.": {
			data:   `20240315`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var d model.Date
			err := json.Unmarshal([]byte(test.data), &d)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expDate, d)
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		D model.Date `json:"d"`
		Z model.Date `json:"z"`
	}{D: model.NewDate(2025, 11, 30)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-11-30","z":""}`, string(data))
}
