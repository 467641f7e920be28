package value_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xmlconv/internal/value"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := value.NewMap()
	m.Set("c", int64(1))
	m.Set("a", int64(2))
	m.Set("b", int64(3))

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestMap_SetKeepsPosition(t *testing.T) {
	m := value.NewMap()
	m.Set("first", "1")
	m.Set("second", "2")
	m.Set("first", "updated")

	assert.Equal(t, []string{"first", "second"}, m.Keys())
	v, ok := m.Get("first")
	require.True(t, ok)
	assert.Equal(t, "updated", v)
}

func TestMap_Delete(t *testing.T) {
	m := value.NewMap()
	m.Set("a", int64(1))
	m.Set("b", int64(2))

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, []string{"b"}, m.Keys())
	assert.False(t, m.Has("a"))
}

func TestMap_Merge(t *testing.T) {
	m := value.NewMap()
	m.Set("_text", "direct")
	m.Set("name", "old")

	other := value.NewMap()
	other.Set("name", "new")
	other.Set("extra", int64(1))

	m.Merge(other)

	// Overwritten keys keep their original position.
	assert.Equal(t, []string{"_text", "name", "extra"}, m.Keys())
	v, _ := m.Get("name")
	assert.Equal(t, "new", v)
}

func TestMap_Range_Stops(t *testing.T) {
	m := value.NewMap()
	m.Set("a", int64(1))
	m.Set("b", int64(2))
	m.Set("c", int64(3))

	var visited []string
	m.Range(func(key string, v any) bool {
		visited = append(visited, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestEncode_Compact(t *testing.T) {
	m := value.NewMap()
	m.Set("name", "Ana")
	m.Set("age", int64(30))
	m.Set("scores", value.List{int64(1), 2.5, nil, true})

	data, err := value.Encode(m, value.EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ana","age":30,"scores":[1,2.5,null,true]}`, string(data))
}

func TestEncode_Indented(t *testing.T) {
	m := value.NewMap()
	m.Set("a", int64(1))

	data, err := value.Encode(m, value.EncodeOptions{Indent: 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))
}

func TestEncode_EscapeASCII(t *testing.T) {
	m := value.NewMap()
	m.Set("nome", "José")

	data, err := value.Encode(m, value.EncodeOptions{EscapeASCII: true})
	require.NoError(t, err)
	assert.Equal(t, `{"nome":"Jos\u00e9"}`, string(data))

	// Non-ASCII passes through untouched by default.
	data, err = value.Encode(m, value.EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"nome":"José"}`, string(data))
}

func TestEncode_ControlCharacters(t *testing.T) {
	data, err := value.Encode("a\tb\nc\x01", value.EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, `"a\tb\nc\u0001"`, string(data))
}

func TestEncode_EmptyContainers(t *testing.T) {
	data, err := value.Encode(value.NewMap(), value.EncodeOptions{Indent: 2})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	data, err = value.Encode(value.List{}, value.EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestEncode_RejectsNonFinite(t *testing.T) {
	_, err := value.Encode(value.List{1.0, math.Inf(1)}, value.EncodeOptions{})
	assert.Error(t, err)

	_, err = value.Encode(math.NaN(), value.EncodeOptions{})
	assert.Error(t, err)
}

func TestMap_MarshalJSON(t *testing.T) {
	inner := value.NewMap()
	inner.Set("z", int64(1))
	inner.Set("a", int64(2))

	// Nested in a plain struct handed to encoding/json, order survives.
	wrapper := struct {
		Doc *value.Map `json:"doc"`
	}{Doc: inner}

	data, err := json.Marshal(wrapper)
	require.NoError(t, err)
	assert.JSONEq(t, `{"doc":{"z":1,"a":2}}`, string(data))
	assert.Equal(t, `{"doc":{"z":1,"a":2}}`, string(data))
}

func TestCleanEmpty(t *testing.T) {
	m := value.NewMap()
	m.Set("keep", "x")
	m.Set("blank", "")
	m.Set("null", nil)
	empty := value.NewMap()
	m.Set("emptyMap", empty)
	m.Set("list", value.List{"", nil, "y"})

	cleaned := value.CleanEmpty(m, value.CleanOptions{
		RemoveEmptyStrings: true,
		RemoveNulls:        true,
		RemoveEmptyMaps:    true,
	}).(*value.Map)

	assert.Equal(t, []string{"keep", "list"}, cleaned.Keys())
	list, _ := cleaned.Get("list")
	assert.Equal(t, value.List{"y"}, list)

	// Original is untouched.
	assert.Equal(t, 5, m.Len())
}

func TestCleanEmpty_NoOptions(t *testing.T) {
	m := value.NewMap()
	m.Set("blank", "")
	m.Set("null", nil)

	cleaned := value.CleanEmpty(m, value.CleanOptions{}).(*value.Map)
	assert.Equal(t, 2, cleaned.Len())
}
