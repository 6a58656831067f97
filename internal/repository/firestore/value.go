package firestore

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Document is one wire document as returned by the store.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// ID returns the document id, the last segment of the resource name.
func (d Document) ID() string {
	if i := strings.LastIndexByte(d.Name, '/'); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// Value is the store's tagged-union field encoding. Exactly one of the
// members is set. Integers travel as decimal strings on the wire.
type Value struct {
	StringValue    *string         `json:"stringValue,omitempty"`
	IntegerValue   *string         `json:"integerValue,omitempty"`
	DoubleValue    *float64        `json:"doubleValue,omitempty"`
	BooleanValue   *bool           `json:"booleanValue,omitempty"`
	TimestampValue *string         `json:"timestampValue,omitempty"`
	ReferenceValue *string         `json:"referenceValue,omitempty"`
	NullValue      json.RawMessage `json:"nullValue,omitempty"`
	MapValue       *MapValue       `json:"mapValue,omitempty"`
	ArrayValue     *ArrayValue     `json:"arrayValue,omitempty"`
}

type MapValue struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

type ArrayValue struct {
	Values []Value `json:"values,omitempty"`
}

// Constructors. A nil-pointer domain field is simply not encoded at all;
// Null is for fields that are intentionally cleared.

func String(s string) Value { return Value{StringValue: &s} }

func Integer(i int64) Value {
	s := strconv.FormatInt(i, 10)
	return Value{IntegerValue: &s}
}

func Double(f float64) Value { return Value{DoubleValue: &f} }

func Boolean(b bool) Value { return Value{BooleanValue: &b} }

func Timestamp(t time.Time) Value {
	s := t.UTC().Format(time.RFC3339Nano)
	return Value{TimestampValue: &s}
}

func Null() Value { return Value{NullValue: json.RawMessage("null")} }

// Reference wraps a full document resource name. The store requires this
// form for __name__ cursor values.
func Reference(name string) Value { return Value{ReferenceValue: &name} }

func Map(fields map[string]Value) Value {
	return Value{MapValue: &MapValue{Fields: fields}}
}

func Array(values ...Value) Value {
	return Value{ArrayValue: &ArrayValue{Values: values}}
}

func StringArray(items []string) Value {
	values := make([]Value, 0, len(items))
	for _, s := range items {
		values = append(values, String(s))
	}
	return Value{ArrayValue: &ArrayValue{Values: values}}
}

// Native unwraps the tagged value into a native Go value: string, int64,
// float64, bool, time.Time, map[string]any, []any or nil. An unrecognized
// or unparsable tag unwraps to nil rather than failing, so one bad field
// never aborts a whole page.
func (v Value) Native() any {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.IntegerValue != nil:
		i, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return nil
		}
		return i
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.TimestampValue != nil:
		t, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
		if err != nil {
			return nil
		}
		return t
	case v.ReferenceValue != nil:
		return *v.ReferenceValue
	case v.MapValue != nil:
		m := make(map[string]any, len(v.MapValue.Fields))
		for name, field := range v.MapValue.Fields {
			m[name] = field.Native()
		}
		return m
	case v.ArrayValue != nil:
		items := make([]any, 0, len(v.ArrayValue.Values))
		for _, item := range v.ArrayValue.Values {
			items = append(items, item.Native())
		}
		return items
	default:
		// Covers explicit nulls and tags this codec does not know.
		return nil
	}
}

// Typed field accessors. A missing, null or differently-tagged field reads
// as the zero value (or nil for the Opt variants), never as an error.

func (d Document) GetString(field string) string {
	if s, ok := d.Fields[field].Native().(string); ok {
		return s
	}
	return ""
}

func (d Document) OptString(field string) *string {
	if s, ok := d.Fields[field].Native().(string); ok {
		return &s
	}
	return nil
}

func (d Document) GetTime(field string) time.Time {
	if t, ok := d.Fields[field].Native().(time.Time); ok {
		return t.Local()
	}
	return time.Time{}
}

func (d Document) OptInt(field string) *int {
	if i, ok := d.Fields[field].Native().(int64); ok {
		n := int(i)
		return &n
	}
	return nil
}

func (d Document) GetStrings(field string) []string {
	items, ok := d.Fields[field].Native().([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (d Document) Has(field string) bool {
	_, ok := d.Fields[field]
	return ok
}
