package canon

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestFromAnyScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null{}},
		{"bool", true, Bool(true)},
		{"string", "hi", String("hi")},
		{"int", 42, Number("42")},
		{"int64", int64(-7), Number("-7")},
		{"uint64", uint64(18446744073709551615), Number("18446744073709551615")},
		{"float", 1.5, Number("1.5")},
		{"integral float", float64(3), Number("3")},
		{"json number", json.Number("0.25"), Number("0.25")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAny(tt.in)
			if err != nil {
				t.Fatalf("FromAny(%v) error = %v", tt.in, err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("FromAny(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromAnyMapSortedDirectly(t *testing.T) {
	got, err := FromAny(map[string]any{
		"c": 3,
		"a": 1,
		"b": map[string]any{"z": true, "y": nil},
	})
	if err != nil {
		t.Fatalf("FromAny() error = %v", err)
	}

	obj := got.(*Object)
	if obj.Entries[0].Key != "a" || obj.Entries[1].Key != "b" || obj.Entries[2].Key != "c" {
		t.Fatalf("top-level keys not sorted: %+v", obj.Entries)
	}
	inner, _ := obj.Get("b")
	innerObj := inner.(*Object)
	if innerObj.Entries[0].Key != "y" || innerObj.Entries[1].Key != "z" {
		t.Errorf("nested keys not sorted: %+v", innerObj.Entries)
	}
}

func TestFromAnySlice(t *testing.T) {
	got, err := FromAny([]any{"a", 1, false, nil})
	if err != nil {
		t.Fatalf("FromAny() error = %v", err)
	}
	arr := got.(Array)
	want := Array{String("a"), Number("1"), Bool(false), Null{}}
	if !Equal(arr, want) {
		t.Errorf("FromAny() = %v, want %v", arr, want)
	}
}

func TestFromAnyTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)
	got, err := FromAny(ts)
	if err != nil {
		t.Fatalf("FromAny() error = %v", err)
	}
	if got != String("2024-03-09T12:30:00Z") {
		t.Errorf("FromAny(time) = %v", got)
	}
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(map[string]any{"a": map[string]any{"f": func() {}}})
	if err == nil {
		t.Fatal("FromAny() accepted a func value")
	}
	ce, ok := err.(*Error)
	if !ok || ce.Code != ErrInput {
		t.Fatalf("error = %v, want %s", err, ErrInput)
	}
	if len(ce.Path) != 2 || ce.Path[0] != "a" || ce.Path[1] != "f" {
		t.Errorf("error path = %v, want [a f]", ce.Path)
	}
}

func TestFromAnyNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FromAny(f); CodeOf(err) != ErrInput {
			t.Errorf("FromAny(%v) error = %v, want %s", f, err, ErrInput)
		}
	}
}

func TestFromAnyCyclicBoundedByDepth(t *testing.T) {
	m := map[string]any{}
	m["self"] = m

	_, err := FromAny(m)
	if CodeOf(err) != ErrDepth {
		t.Errorf("FromAny(cyclic) error = %v, want %s", err, ErrDepth)
	}
}
