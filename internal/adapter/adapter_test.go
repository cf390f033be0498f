package adapter

import (
	"strings"
	"testing"

	"kanon/internal/canon"
	"kanon/internal/encode"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"config.json", FormatJSON, false},
		{"config.yaml", FormatYAML, false},
		{"config.yml", FormatYAML, false},
		{"Cargo.toml", FormatTOML, false},
		{"dir/UPPER.JSON", FormatJSON, false},
		{"notes.txt", "", true},
		{"Makefile", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// canonEntries parses, canonicalizes and renders in entry form.
func canonEntries(t *testing.T, data string, f Format) string {
	t.Helper()
	v, err := Parse([]byte(data), f)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cv, err := canon.Canonicalize(v)
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	out, err := encode.Entries(cv)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	return string(out)
}

func TestParseJSONPreservesNumericText(t *testing.T) {
	got := canonEntries(t, `{"a": 1.50, "b": 1e3}`, FormatJSON)
	want := `[{"k":"a","v":1.50},{"k":"b","v":1e3}]`
	if got != want {
		t.Errorf("entries = %s, want %s", got, want)
	}
}

func TestParseJSONOrderIndependence(t *testing.T) {
	a := canonEntries(t, `{"z":"z","a":"a","j":{"c":{"x":"x","w":"w"},"b":"b"}}`, FormatJSON)
	b := canonEntries(t, `{"j":{"b":"b","c":{"w":"w","x":"x"}},"a":"a","z":"z"}`, FormatJSON)
	if a != b {
		t.Errorf("mapping-equal documents canonicalized differently:\n%s\n%s", a, b)
	}
	want := `[{"k":"a","v":"a"},{"k":"j","v":[{"k":"b","v":"b"},{"k":"c","v":[{"k":"w","v":"w"},{"k":"x","v":"x"}]}]},{"k":"z","v":"z"}]`
	if a != want {
		t.Errorf("entries = %s, want %s", a, want)
	}
}

func TestParseJSONDuplicateKey(t *testing.T) {
	_, err := Parse([]byte(`{"a":1,"a":2}`), FormatJSON)
	if canon.CodeOf(err) != canon.ErrDupKey {
		t.Errorf("error = %v, want %s", err, canon.ErrDupKey)
	}
}

func TestParseJSONTrailingContent(t *testing.T) {
	_, err := Parse([]byte(`{"a":1} {"b":2}`), FormatJSON)
	if canon.CodeOf(err) != canon.ErrInput {
		t.Errorf("error = %v, want %s", err, canon.ErrInput)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	for _, bad := range []string{``, `{`, `{"a":}`, `[1,`} {
		if _, err := Parse([]byte(bad), FormatJSON); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", bad)
		}
	}
}

func TestParseJSONScalarRoots(t *testing.T) {
	tests := []struct {
		in   string
		want canon.Value
	}{
		{`"s"`, canon.String("s")},
		{`0`, canon.Number("0")},
		{`false`, canon.Bool(false)},
		{`null`, canon.Null{}},
	}
	for _, tt := range tests {
		got, err := Parse([]byte(tt.in), FormatJSON)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.in, err)
		}
		if !canon.Equal(got, tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseJSONDeepNesting(t *testing.T) {
	depth := canon.MaxDepth + 8
	doc := strings.Repeat(`{"n":`, depth) + `1` + strings.Repeat(`}`, depth)

	_, err := Parse([]byte(doc), FormatJSON)
	if canon.CodeOf(err) != canon.ErrDepth {
		t.Errorf("error = %v, want %s", err, canon.ErrDepth)
	}
}

func TestParseYAML(t *testing.T) {
	doc := `
z: last
a: 1
nested:
  flag: true
  empty: null
list:
  - x
  - 0x10
  - 2.5
`
	got := canonEntries(t, doc, FormatYAML)
	want := `[{"k":"a","v":1},{"k":"list","v":["x",16,2.5]},{"k":"nested","v":[{"k":"empty","v":null},{"k":"flag","v":true}]},{"k":"z","v":"last"}]`
	if got != want {
		t.Errorf("entries = %s, want %s", got, want)
	}
}

func TestParseYAMLDuplicateKey(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"), FormatYAML)
	if err == nil {
		t.Fatal("Parse() accepted duplicate YAML keys")
	}
}

func TestParseYAMLAnchors(t *testing.T) {
	doc := `
base: &b
  k: v
copy: *b
`
	v, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obj := v.(*canon.Object)
	base, _ := obj.Get("base")
	cp, _ := obj.Get("copy")
	if !canon.Equal(base, cp) {
		t.Error("alias did not inline the anchored mapping")
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	v, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !canon.Equal(v, canon.Null{}) {
		t.Errorf("Parse(empty yaml) = %v, want null", v)
	}
}

func TestParseTOML(t *testing.T) {
	doc := `
title = "demo"
count = 3

[owner]
name = "kay"
active = true
`
	got := canonEntries(t, doc, FormatTOML)
	want := `[{"k":"count","v":3},{"k":"owner","v":[{"k":"active","v":true},{"k":"name","v":"kay"}]},{"k":"title","v":"demo"}]`
	if got != want {
		t.Errorf("entries = %s, want %s", got, want)
	}
}

func TestParseTOMLDates(t *testing.T) {
	doc := `d = 2024-03-09`
	v, err := Parse([]byte(doc), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	d, ok := v.(*canon.Object).Get("d")
	if !ok {
		t.Fatal("key d missing")
	}
	if d != canon.String("2024-03-09") {
		t.Errorf("date = %v, want \"2024-03-09\"", d)
	}
}

func TestCrossFormatAgreement(t *testing.T) {
	// The same mapping expressed in all three formats must canonicalize
	// to identical entry-form bytes.
	jsonDoc := `{"b": 2, "a": "x", "c": {"inner": true}}`
	yamlDoc := "c:\n  inner: true\nb: 2\na: x\n"
	tomlDoc := "b = 2\na = \"x\"\n[c]\ninner = true\n"

	j := canonEntries(t, jsonDoc, FormatJSON)
	y := canonEntries(t, yamlDoc, FormatYAML)
	tm := canonEntries(t, tomlDoc, FormatTOML)

	if j != y || j != tm {
		t.Errorf("formats disagree:\njson: %s\nyaml: %s\ntoml: %s", j, y, tm)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	if _, err := Parse([]byte("x"), Format("ini")); err == nil {
		t.Error("Parse() accepted unknown format")
	}
}

func TestParseLimited(t *testing.T) {
	doc := []byte(`{"a":1,"b":2}`)

	_, err := ParseLimited(doc, FormatJSON, 4)
	if canon.CodeOf(err) != canon.ErrInput {
		t.Errorf("error = %v, want %s", err, canon.ErrInput)
	}
	if _, err := ParseLimited(doc, FormatJSON, len(doc)); err != nil {
		t.Errorf("ParseLimited() at exact size: %v", err)
	}
	// Non-positive means the default limit.
	if _, err := ParseLimited(doc, FormatJSON, 0); err != nil {
		t.Errorf("ParseLimited() with zero limit: %v", err)
	}
}
