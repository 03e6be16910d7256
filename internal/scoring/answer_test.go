package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalShapes(t *testing.T) {
	var payload struct {
		Text    Answer `json:"text"`
		List    Answer `json:"list"`
		Number  Answer `json:"number"`
		Null    Answer `json:"null"`
		Missing Answer `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"text":"B","list":[ "A", "C" ],"number":9.81,"null":null}`), &payload))

	s, ok := payload.Text.Text()
	assert.True(t, ok)
	assert.Equal(t, "B", s)

	opts, ok := payload.List.Options()
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "C"}, opts)

	n, ok := payload.Number.Number()
	assert.True(t, ok)
	assert.Equal(t, 9.81, n)

	assert.True(t, payload.Null.IsEmpty())
	assert.True(t, payload.Missing.IsEmpty())

	out, err := json.Marshal(payload.List)
	require.NoError(t, err)
	assert.Equal(t, `["A","C"]`, string(out))
}

func TestAnswer_IsEmpty(t *testing.T) {
	assert.True(t, Answer{}.IsEmpty())
	assert.True(t, NewTextAnswer("   ").IsEmpty())
	assert.True(t, NewListAnswer().IsEmpty())
	assert.False(t, NewNumberAnswer(0).IsEmpty())
	assert.False(t, NewTextAnswer("0").IsEmpty())
	assert.False(t, RawAnswer([]byte(`false`)).IsEmpty())
}

func TestAnswer_MalformedRawStaysSerializable(t *testing.T) {
	a := RawAnswer([]byte(`{"selected":`))
	assert.False(t, a.IsEmpty())

	_, ok := a.Number()
	assert.False(t, ok)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"{\"selected\":"`, string(out))
}
