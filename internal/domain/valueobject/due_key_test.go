package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDueKey(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		week    int
		wantErr bool
	}{
		{name: "valid key", year: 2025, month: 3, week: 2},
		{name: "first week of january", year: 2025, month: 1, week: 1},
		{name: "last week of december", year: 2025, month: 12, week: 4},
		{name: "week zero", year: 2025, month: 3, week: 0, wantErr: true},
		{name: "week five", year: 2025, month: 3, week: 5, wantErr: true},
		{name: "month zero", year: 2025, month: 0, week: 1, wantErr: true},
		{name: "month thirteen", year: 2025, month: 13, week: 1, wantErr: true},
		{name: "year too small", year: 1999, month: 1, week: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewDueKey(tt.year, tt.month, tt.week)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, key.Year())
			assert.Equal(t, tt.month, key.Month())
			assert.Equal(t, tt.week, key.Week())
		})
	}
}

func TestDueKey_String(t *testing.T) {
	key, err := NewDueKey(2025, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-W2", key.String())
}
