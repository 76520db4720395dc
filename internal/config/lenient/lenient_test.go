package lenient

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_Extensions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"plain", `{"a": 1}`, map[string]any{"a": json.Number("1")}},
		{"line comment", "// header\n[\"x\"]", []any{"x"}},
		{"block comment", `[/* one */ 1, 2]`, []any{json.Number("1"), json.Number("2")}},
		{"trailing comma array", `[1, 2,]`, []any{json.Number("1"), json.Number("2")}},
		{"trailing comma object", `{"a": true,}`, map[string]any{"a": true}},
		{"null", `null`, nil},
		{"nested", `[{"b": [null, "s"]}]`, []any{map[string]any{"b": []any{nil, "s"}}}},
		{"comment chars in string", `["// not a comment"]`, []any{"// not a comment"}},
		{"comma in comment", "[ // a, b\n 1 /* ,, */]", []any{json.Number("1")}},
		{"comma in string", `[",", "\",]"]`, []any{",", `",]`}},
		{"trailing comma after comment", "[1, // last\n]", []any{json.Number("1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"empty", "", 1},
		{"only comment", "// nothing\n", 2},
		{"unterminated array", "[\n  1,\n", 3},
		{"bad token", "[\n  nope\n]", 2},
		{"trailing data", "[]\n[]", 2},
		{"missing colon", `{"a" 1}`, 1},
		{"lone comma array", `[,]`, 1},
		{"lone comma object", "{\n,}", 2},
		{"double comma", "[1,\n,]", 2},
		{"comma after colon", `{"a":,}`, 1},
		{"invalid utf-8", "[\n\"\xff\"]", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", pe.Line, tt.wantLine, pe)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	text := []byte("ab\ncdé\nf")
	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
		{100, 3, 2},
	}

	for _, tt := range tests {
		line, col := Position(text, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}

func TestNormalize_PreservesOffsets(t *testing.T) {
	input := []byte("[ // c\n  \"a\", /* x\n y */ \"b\",\n]")
	out := Normalize(input)
	if len(out) != len(input) {
		t.Fatalf("len = %d, want %d", len(out), len(input))
	}
	for i := range input {
		if (input[i] == '\n') != (out[i] == '\n') {
			t.Fatalf("line break moved at offset %d", i)
		}
	}
}

type rangePayload struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Note string `json:"note,omitempty"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rangePayload
		wantErr bool
	}{
		{"valid", `{"from": 1, "to": 5}`, rangePayload{From: 1, To: 5}, false},
		{"optional set", `{"from": 1, "to": 5, "note": "x"}`, rangePayload{From: 1, To: 5, Note: "x"}, false},
		{"missing required", `{"from": 1}`, rangePayload{}, true},
		{"unknown field", `{"from": 1, "to": 2, "extra": 3}`, rangePayload{}, true},
		{"fractional int", `{"from": 1.5, "to": 2}`, rangePayload{}, true},
		{"string for int", `{"from": "1", "to": 2}`, rangePayload{}, true},
		{"number for string", `{"from": 1, "to": 2, "note": 3}`, rangePayload{}, true},
		{"case mismatch", `{"From": 1, "to": 2}`, rangePayload{}, true},
		{"not an object", `[1, 2]`, rangePayload{}, true},
		{"null member", `{"from": null, "to": 2}`, rangePayload{}, true},
		{"null optional member", `{"from": 1, "to": 2, "note": null}`, rangePayload{}, true},
		{"int overflow", `{"from": 1, "to": 99999999999999999999}`, rangePayload{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got rangePayload
			err := Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_Scalars(t *testing.T) {
	var s string
	if err := Decode("hello", &s); err != nil || s != "hello" {
		t.Errorf("string decode = %q, %v", s, err)
	}

	var n int
	if err := Decode(json.Number("42"), &n); err != nil || n != 42 {
		t.Errorf("int decode = %d, %v", n, err)
	}

	var f float64
	if err := Decode(json.Number("2.5"), &f); err != nil || f != 2.5 {
		t.Errorf("float decode = %v, %v", f, err)
	}

	if err := Decode(json.Number("7"), &s); err == nil {
		t.Error("expected error decoding number into string")
	}

	var b bool
	if err := Decode("true", &b); err == nil {
		t.Error("expected error decoding string into bool")
	}
}

func TestParse_ErrorOffsets(t *testing.T) {
	tests := []struct {
		input      string
		wantOffset int
		wantMsg    string
	}{
		{`[1, ,]`, 4, "unexpected comma"},
		{"[\"a\xffb\"]", 3, "invalid UTF-8"},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.input))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q): expected *ParseError, got %v", tt.input, err)
		}
		if pe.Offset != tt.wantOffset || pe.Msg != tt.wantMsg {
			t.Errorf("Parse(%q) = %d %q, want %d %q", tt.input, pe.Offset, pe.Msg, tt.wantOffset, tt.wantMsg)
		}
	}
}

type sized struct {
	I8  int8    `json:"i8,omitempty"`
	U8  uint8   `json:"u8,omitempty"`
	U   uint    `json:"u,omitempty"`
	F32 float32 `json:"f32,omitempty"`
	P   *int16  `json:"p,omitempty"`
}

func TestDecode_Overflow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"int8 max", `{"i8": 127}`, false},
		{"int8 min", `{"i8": -128}`, false},
		{"int8 over", `{"i8": 300}`, true},
		{"int8 under", `{"i8": -129}`, true},
		{"uint8 over", `{"u8": 256}`, true},
		{"uint negative", `{"u": -1}`, true},
		{"uint beyond 64 bits", `{"u": 18446744073709551616}`, true},
		{"float32 over", `{"f32": 1e39}`, true},
		{"float32 ok", `{"f32": 1.5}`, false},
		{"pointer elem over", `{"p": 40000}`, true},
		{"pointer elem ok", `{"p": -7}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sized
			err := Unmarshal([]byte(tt.input), &got)
			if tt.wantErr != (err != nil) {
				t.Errorf("wantErr=%v, got %v (%+v)", tt.wantErr, err, got)
			}
		})
	}
}

func TestDecode_Nulls(t *testing.T) {
	type inner struct {
		N int `json:"n"`
	}
	type outer struct {
		Ptr   *int           `json:"ptr,omitempty"`
		Any   any            `json:"any,omitempty"`
		List  []int          `json:"list,omitempty"`
		Map   map[string]int `json:"map,omitempty"`
		Inner inner          `json:"inner,omitempty"`
	}

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"nullable kinds", `{"ptr": null, "any": null, "list": null, "map": null}`, ""},
		{"nested struct member", `{"inner": {"n": null}}`, `field "inner.n": expected int, found null`},
		{"slice element", `{"list": [1, null]}`, `field "list[1]": expected int, found null`},
		{"map value", `{"map": {"a": null}}`, `field "map.a": expected int, found null`},
		{"struct itself", `{"inner": null}`, `field "inner": expected lenient.inner, found null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got outer
			err := Unmarshal([]byte(tt.input), &got)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	var n int
	if err := Decode(nil, &n); err == nil {
		t.Error("expected error decoding null into int")
	}
}
