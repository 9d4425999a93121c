package fieldtype

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRoundTripAllVariants(t *testing.T) {
	all := All()
	if len(all) != 1+4*22 {
		t.Fatalf("All() returned %d variants, want %d", len(all), 1+4*22)
	}

	for _, id := range all {
		t.Run(id.String(), func(t *testing.T) {
			byName, err := Parse(id.String())
			if err != nil {
				t.Fatalf("Parse(%q): %v", id.String(), err)
			}
			if byName != id {
				t.Errorf("Parse(%q) = %v, want %v", id.String(), byName, id)
			}

			byCode, err := FromCode(id.Code())
			if err != nil {
				t.Fatalf("FromCode(%d): %v", id.Code(), err)
			}
			if byCode != id {
				t.Errorf("FromCode(%d) = %v, want %v", id.Code(), byCode, id)
			}
		})
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{"int8", Int8},
		{"UINT8", UInt8},
		{"boundedwstringunboundedsequence", BoundedWStringUnboundedSequence},
		{"NestedTypeArray", NestedTypeArray},
		{"notset", NotSet},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("Int128")
	if err == nil {
		t.Fatal("expected error for unknown name")
	}
	var unknown *UnknownFieldTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("error type = %T, want *UnknownFieldTypeError", err)
	}
	if len(unknown.Valid) != len(All()) {
		t.Errorf("error lists %d names, want %d", len(unknown.Valid), len(All()))
	}
	if !strings.Contains(err.Error(), "BoundedWStringUnboundedSequence") {
		t.Errorf("error message should enumerate valid names, got %q", err.Error())
	}
}

func TestFromCodeGaps(t *testing.T) {
	for _, code := range []uint64{23, 48, 71, 96, 119, 144, 167, 255, 1000} {
		if _, err := FromCode(code); err == nil {
			t.Errorf("FromCode(%d) succeeded, want error", code)
		}
	}
}

func TestContainerClassification(t *testing.T) {
	tests := []struct {
		id        ID
		element   ID
		nested    bool
		array     bool
		bounded   bool
		unbounded bool
	}{
		{NotSet, NotSet, false, false, false, false},
		{NestedType, NestedType, true, false, false, false},
		{Double, Double, false, false, false, false},
		{NestedTypeArray, NestedType, true, true, false, false},
		{FloatArray, Float, false, true, false, false},
		{NestedTypeBoundedSequence, NestedType, true, false, true, false},
		{StringBoundedSequence, String, false, false, true, false},
		{NestedTypeUnboundedSequence, NestedType, true, false, false, true},
		{ByteUnboundedSequence, Byte, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			if got := tt.id.Element(); got != tt.element {
				t.Errorf("Element() = %v, want %v", got, tt.element)
			}
			if got := tt.id.IsNested(); got != tt.nested {
				t.Errorf("IsNested() = %v, want %v", got, tt.nested)
			}
			if got := tt.id.IsArray(); got != tt.array {
				t.Errorf("IsArray() = %v, want %v", got, tt.array)
			}
			if got := tt.id.IsBoundedSequence(); got != tt.bounded {
				t.Errorf("IsBoundedSequence() = %v, want %v", got, tt.bounded)
			}
			if got := tt.id.IsUnboundedSequence(); got != tt.unbounded {
				t.Errorf("IsUnboundedSequence() = %v, want %v", got, tt.unbounded)
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    ID
		wantErr bool
	}{
		{`"Int32"`, Int32, false},
		{`"int32"`, Int32, false},
		{`6`, Int32, false},
		{`145`, NestedTypeUnboundedSequence, false},
		{`0`, NotSet, false},
		{`"Bogus"`, NotSet, true},
		{`30`, NotSet, true},
		{`-1`, NotSet, true},
		{`1.5`, NotSet, true},
		{`true`, NotSet, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got ID
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshalJSONUsesName(t *testing.T) {
	data, err := json.Marshal(struct {
		TypeID ID `json:"type_id"`
	}{TypeID: UInt16Array})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"type_id":"UInt16Array"}` {
		t.Errorf("got %s", data)
	}

	if _, err := json.Marshal(ID(30)); err == nil {
		t.Error("expected error marshaling unassigned code")
	}
}
