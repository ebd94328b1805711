package document

import (
	"reflect"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		field string
		want  Path
	}{
		{field: "", want: Path{}},
		{field: "age", want: Path{"age"}},
		{field: "address.city", want: Path{"address", "city"}},
		{field: "tags.0", want: Path{"tags", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got := ParsePath(tt.field)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePath(%q) = %#v, want %#v", tt.field, got, tt.want)
			}
			if got.String() != tt.field {
				t.Errorf("String() = %q, want %q", got.String(), tt.field)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	doc := NewObject(
		Entry{Key: "name", Value: "Thomas"},
		Entry{Key: "age", Value: 20},
		Entry{Key: "address", Value: NewObject(
			Entry{Key: "city", Value: "Berlin"},
			Entry{Key: "lines", Value: []any{"Main St 1", "2nd floor"}},
		)},
		Entry{Key: "phones", Value: []any{
			map[string]any{"type": "home", "number": "1234567"},
		}},
		Entry{Key: "nothing", Value: nil},
	)

	tests := []struct {
		name   string
		path   string
		want   any
		wantOK bool
	}{
		{name: "top level string", path: "name", want: "Thomas", wantOK: true},
		{name: "top level number", path: "age", want: 20, wantOK: true},
		{name: "nested object", path: "address.city", want: "Berlin", wantOK: true},
		{name: "array index", path: "address.lines.1", want: "2nd floor", wantOK: true},
		{name: "plain map inside array", path: "phones.0.number", want: "1234567", wantOK: true},
		{name: "explicit null is present", path: "nothing", want: nil, wantOK: true},
		{name: "missing key", path: "email", wantOK: false},
		{name: "missing nested key", path: "address.zip", wantOK: false},
		{name: "index out of range", path: "address.lines.2", wantOK: false},
		{name: "negative index", path: "address.lines.-1", wantOK: false},
		{name: "non numeric index", path: "address.lines.first", wantOK: false},
		{name: "signed index", path: "address.lines.+1", wantOK: false},
		{name: "descend into scalar", path: "name.first", wantOK: false},
		{name: "descend into null", path: "nothing.x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(doc, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lookup(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_EmptyPathReturnsDocument(t *testing.T) {
	doc := []any{1, 2}
	got, ok := Resolve(doc, Path{})
	if !ok {
		t.Fatal("Resolve() with empty path reported absent")
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("Resolve() = %#v, want %#v", got, doc)
	}
}

func TestResolve_TypedSlices(t *testing.T) {
	doc := map[string]any{
		"tags":  []string{"red", "blue"},
		"grid":  [2][]int{{1, 2}, {3, 4}},
		"bytes": []byte("ab"),
	}

	if got, ok := Lookup(doc, "tags.1"); !ok || got != "blue" {
		t.Errorf("Lookup(tags.1) = %v, %v", got, ok)
	}
	if got, ok := Lookup(doc, "grid.1.0"); !ok || got != 3 {
		t.Errorf("Lookup(grid.1.0) = %v, %v", got, ok)
	}
	if _, ok := Lookup(doc, "bytes.0"); ok {
		t.Error("[]byte should not be indexed as an array")
	}
}

func TestAsArray(t *testing.T) {
	if arr, ok := AsArray([]int{1, 2}); !ok || !reflect.DeepEqual(arr, []any{1, 2}) {
		t.Errorf("AsArray([]int) = %#v, %v", arr, ok)
	}
	for _, v := range []any{nil, "ab", []byte("ab"), map[string]any{}, 3} {
		if _, ok := AsArray(v); ok {
			t.Errorf("AsArray(%#v) ok = true, want false", v)
		}
	}
}

func TestResolve_ScalarRoot(t *testing.T) {
	if _, ok := Lookup("just a string", "length"); ok {
		t.Error("Lookup() on scalar root should be absent")
	}
	if _, ok := Lookup(nil, "a"); ok {
		t.Error("Lookup() on nil root should be absent")
	}
}
