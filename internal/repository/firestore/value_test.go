package firestore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  any
	}{
		{"string", String("สมชาย"), "สมชาย"},
		{"integer", Integer(42), int64(42)},
		{"negative integer", Integer(-7), int64(-7)},
		{"double", Double(1.5), 1.5},
		{"boolean", Boolean(true), true},
		{"null", Null(), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw, err := json.Marshal(c.value)
			require.NoError(t, err)

			var decoded Value
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, c.want, decoded.Native())
		})
	}
}

func TestIntegerTravelsAsString(t *testing.T) {
	raw, err := json.Marshal(Integer(15))
	require.NoError(t, err)
	assert.JSONEq(t, `{"integerValue":"15"}`, string(raw))
}

func TestReferenceRoundTrip(t *testing.T) {
	name := "projects/p/databases/(default)/documents/c/doc-01"
	raw, err := json.Marshal(Reference(name))
	require.NoError(t, err)
	assert.JSONEq(t, `{"referenceValue":"projects/p/databases/(default)/documents/c/doc-01"}`, string(raw))

	var decoded Value
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, name, decoded.Native())
}

func TestNullValueSurvivesRoundTrip(t *testing.T) {
	raw, err := json.Marshal(Null())
	require.NoError(t, err)
	assert.JSONEq(t, `{"nullValue":null}`, string(raw))

	var decoded Value
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded.Native())
}

func TestTimestampRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)
	raw, err := json.Marshal(Timestamp(at))
	require.NoError(t, err)

	var decoded Value
	require.NoError(t, json.Unmarshal(raw, &decoded))

	got, ok := decoded.Native().(time.Time)
	require.True(t, ok)
	assert.True(t, got.Equal(at))
}

func TestNativeToleratesBadPayloads(t *testing.T) {
	bad := "not-a-number"
	assert.Nil(t, Value{IntegerValue: &bad}.Native())

	badTime := "yesterday-ish"
	assert.Nil(t, Value{TimestampValue: &badTime}.Native())

	// A tag this codec does not know decodes as the zero Value.
	var unknown Value
	require.NoError(t, json.Unmarshal([]byte(`{"geoPointValue":{"latitude":1}}`), &unknown))
	assert.Nil(t, unknown.Native())
}

func TestNestedMapAndArray(t *testing.T) {
	v := Map(map[string]Value{
		"tags":  StringArray([]string{"a", "b"}),
		"count": Integer(2),
	})
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded Value
	require.NoError(t, json.Unmarshal(raw, &decoded))

	native, ok := decoded.Native().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(2), native["count"])
	assert.Equal(t, []any{"a", "b"}, native["tags"])
}

func TestDocumentID(t *testing.T) {
	doc := Document{Name: "projects/p/databases/(default)/documents/leave_requests/abc123"}
	assert.Equal(t, "abc123", doc.ID())

	assert.Equal(t, "bare", Document{Name: "bare"}.ID())
}

func TestDocumentAccessors(t *testing.T) {
	doc := Document{Fields: map[string]Value{
		"name":    String("Somchai"),
		"late":    Integer(12),
		"when":    Timestamp(time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)),
		"cleared": Null(),
		"files":   StringArray([]string{"a.jpg", "b.jpg"}),
	}}

	assert.Equal(t, "Somchai", doc.GetString("name"))
	assert.Equal(t, "", doc.GetString("missing"))
	assert.Equal(t, "", doc.GetString("cleared"))

	require.NotNil(t, doc.OptInt("late"))
	assert.Equal(t, 12, *doc.OptInt("late"))
	assert.Nil(t, doc.OptInt("missing"))

	assert.Nil(t, doc.OptString("cleared"))
	assert.Nil(t, doc.OptString("missing"))

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, doc.GetStrings("files"))
	assert.Nil(t, doc.GetStrings("missing"))

	assert.False(t, doc.GetTime("when").IsZero())
	assert.True(t, doc.GetTime("missing").IsZero())

	assert.True(t, doc.Has("cleared"))
	assert.False(t, doc.Has("missing"))
}
