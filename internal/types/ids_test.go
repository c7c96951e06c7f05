package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	_, err := ParseID(id1.String())
	require.NoError(t, err)
	_, err = ParseID(id2.String())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.False(t, id1.IsZero())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid uuid", input: "0d1b8e1c-9ed0-4f4e-8f43-3f2a1f0b6d11", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-uuid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestIDJSONRoundTrip(t *testing.T) {
	id := NewID()

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestIDMarshalZero(t *testing.T) {
	var id ID
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
	assert.True(t, id.IsZero())
}

func TestIDUnmarshalNull(t *testing.T) {
	id := NewID()
	require.NoError(t, json.Unmarshal([]byte("null"), &id))
	assert.True(t, id.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.True(t, id.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-uuid"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`42`), &id))
}
