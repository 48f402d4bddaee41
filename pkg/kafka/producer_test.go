package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	msgs, err := encode([]Event{
		{Key: "search", Value: map[string]int{"returned": 2}},
		{Key: "index", Value: "d1"},
	})

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, []byte("search"), msgs[0].Key)
	assert.JSONEq(t, `{"returned":2}`, string(msgs[0].Value))
	assert.Equal(t, `"d1"`, string(msgs[1].Value))
}

func TestEncode_Unmarshalable(t *testing.T) {
	_, err := encode([]Event{{Key: "bad", Value: make(chan int)}})

	assert.ErrorContains(t, err, `marshaling event "bad"`)
}
