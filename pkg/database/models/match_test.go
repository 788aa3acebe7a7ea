package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeforeSaveRecomputesKDA(t *testing.T) {
	tests := []struct {
		name     string
		record   ParticipationRecord
		expected float64
	}{
		{
			name:     "deathless ignores upstream value",
			record:   ParticipationRecord{Kills: 5, Deaths: 0, Assists: 7, Kda: 99},
			expected: 12.0,
		},
		{
			name:     "with deaths",
			record:   ParticipationRecord{Kills: 5, Deaths: 4, Assists: 7},
			expected: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.record.BeforeSave(nil))
			assert.Equal(t, tt.expected, tt.record.Kda)
		})
	}
}

func TestBeforeUpdateIsRejected(t *testing.T) {
	record := &ParticipationRecord{}
	assert.ErrorIs(t, record.BeforeUpdate(nil), ErrImmutableRecord)
}

func TestRawJSON(t *testing.T) {
	var raw RawJSON
	assert.NoError(t, raw.Scan(`{"a":1}`))
	assert.Equal(t, RawJSON(`{"a":1}`), raw)

	assert.NoError(t, raw.Scan([]byte(`{"b":2}`)))
	value, err := raw.Value()
	assert.NoError(t, err)
	assert.Equal(t, `{"b":2}`, value)

	assert.Error(t, raw.Scan(42))

	var empty RawJSON
	out, err := empty.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestGameDatetime(t *testing.T) {
	match := &Match{GameCreation: 1700000000000}
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), match.GameDatetime())
}
