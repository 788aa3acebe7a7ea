package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKDA(t *testing.T) {
	tests := []struct {
		name     string
		kills    int
		deaths   int
		assists  int
		expected float64
	}{
		{name: "deathless", kills: 5, deaths: 0, assists: 7, expected: 12.0},
		{name: "exact division", kills: 5, deaths: 4, assists: 7, expected: 3.0},
		{name: "rounded", kills: 1, deaths: 3, assists: 1, expected: 0.67},
		{name: "all zero", expected: 0},
		{name: "tie rounds to even", kills: 1, deaths: 8, assists: 0, expected: 0.12},
		{name: "tie rounds up to even", kills: 3, deaths: 8, assists: 0, expected: 0.38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KDA(tt.kills, tt.deaths, tt.assists))
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 66.7, Round(200.0/3.0, 1))
	assert.Equal(t, 4.75, Round(38.0/8.0, 2))
	assert.Equal(t, 15234.0, Round(15233.6, 0))
	assert.Equal(t, 0.0, Round(0, 1))

	// Exact ties go to the even digit.
	assert.Equal(t, 7.2, Round(29.0/4.0, 1))
	assert.Equal(t, 1000.0, Round(1000.5, 0))
	assert.Equal(t, 1002.0, Round(1001.5, 0))
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, -2.0, Round(-2.5, 0))
}
