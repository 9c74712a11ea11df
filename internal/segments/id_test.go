package segments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		id       ID
		expected string
	}{
		{name: "zero", id: ID{}, expected: "0,0"},
		{name: "low only", id: FromUint64(42), expected: "42,0"},
		{name: "high bits", id: FromUint64(1<<32 | 7), expected: "7,1"},
		{name: "max", id: FromUint64(^uint64(0)), expected: "4294967295,4294967295"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ObjectKey(tc.id))
		})
	}
}

func TestObjectKey_DistinguishesHalves(t *testing.T) {
	assert.NotEqual(t, ObjectKey(ID{Low: 1, High: 23}), ObjectKey(ID{Low: 12, High: 3}))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("4294967303")
	require.NoError(t, err)
	assert.Equal(t, ID{Low: 7, High: 1}, id)

	id, err = ParseID(" 7, 1 ")
	require.NoError(t, err)
	assert.Equal(t, ID{Low: 7, High: 1}, id)
	assert.Equal(t, "4294967303", id.String())

	_, err = ParseID("abc")
	assert.Error(t, err)
	_, err = ParseID("1,x")
	assert.Error(t, err)
}
