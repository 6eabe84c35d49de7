package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntID_UnmarshalJSON(t *testing.T) {
	cases := map[string]IntID{
		`12`:    12,
		`"12"`:  12,
		`" 9 "`: 9,
		`""`:    0,
		`null`:  0,
	}
	for in, want := range cases {
		var got IntID
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}

	var bad IntID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &bad))
}

func TestID_UnmarshalJSON(t *testing.T) {
	cases := map[string]ID{
		`7`:      "7",
		`"7"`:    "7",
		`"c-12"`: "c-12",
		`null`:   "",
	}
	for in, want := range cases {
		var got ID
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}
}

func TestClientList_MixedIDKinds(t *testing.T) {
	var clients []Client
	require.NoError(t, json.Unmarshal([]byte(`[{"id":7,"name":"Acme"},{"id":"8","name":"Bharat"}]`), &clients))
	require.Len(t, clients, 2)
	assert.Equal(t, ID("7"), clients[0].ID)
	assert.Equal(t, ID("8"), clients[1].ID)

	var products []Product
	require.NoError(t, json.Unmarshal([]byte(`[{"item_id":"12","item_name":"Rice"}]`), &products))
	assert.Equal(t, IntID(12), products[0].ID)
}
