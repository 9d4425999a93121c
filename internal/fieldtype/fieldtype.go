package fieldtype

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ID is a wire-level field type code.
type ID uint8

// Block bases. An ID's element kind is its offset from the base of its block.
const (
	scalarBase    ID = 0
	arrayBase     ID = 48
	boundedBase   ID = 96
	unboundedBase ID = 144
)

const (
	NotSet ID = 0

	// Nested type defined in another .msg/.srv/.action file.
	NestedType ID = 1

	Int8   ID = 2
	UInt8  ID = 3
	Int16  ID = 4
	UInt16 ID = 5
	Int32  ID = 6
	UInt32 ID = 7
	Int64  ID = 8
	UInt64 ID = 9

	Float      ID = 10
	Double     ID = 11
	LongDouble ID = 12

	Char  ID = 13
	WChar ID = 14

	Boolean ID = 15
	Byte    ID = 16

	String  ID = 17
	WString ID = 18

	FixedString  ID = 19
	FixedWString ID = 20

	BoundedString  ID = 21
	BoundedWString ID = 22

	NestedTypeArray     ID = 49
	Int8Array           ID = 50
	UInt8Array          ID = 51
	Int16Array          ID = 52
	UInt16Array         ID = 53
	Int32Array          ID = 54
	UInt32Array         ID = 55
	Int64Array          ID = 56
	UInt64Array         ID = 57
	FloatArray          ID = 58
	DoubleArray         ID = 59
	LongDoubleArray     ID = 60
	CharArray           ID = 61
	WCharArray          ID = 62
	BooleanArray        ID = 63
	ByteArray           ID = 64
	StringArray         ID = 65
	WStringArray        ID = 66
	FixedStringArray    ID = 67
	FixedWStringArray   ID = 68
	BoundedStringArray  ID = 69
	BoundedWStringArray ID = 70

	NestedTypeBoundedSequence     ID = 97
	Int8BoundedSequence           ID = 98
	UInt8BoundedSequence          ID = 99
	Int16BoundedSequence          ID = 100
	UInt16BoundedSequence         ID = 101
	Int32BoundedSequence          ID = 102
	UInt32BoundedSequence         ID = 103
	Int64BoundedSequence          ID = 104
	UInt64BoundedSequence         ID = 105
	FloatBoundedSequence          ID = 106
	DoubleBoundedSequence         ID = 107
	LongDoubleBoundedSequence     ID = 108
	CharBoundedSequence           ID = 109
	WCharBoundedSequence          ID = 110
	BooleanBoundedSequence        ID = 111
	ByteBoundedSequence           ID = 112
	StringBoundedSequence         ID = 113
	WStringBoundedSequence        ID = 114
	FixedStringBoundedSequence    ID = 115
	FixedWStringBoundedSequence   ID = 116
	BoundedStringBoundedSequence  ID = 117
	BoundedWStringBoundedSequence ID = 118

	NestedTypeUnboundedSequence     ID = 145
	Int8UnboundedSequence           ID = 146
	UInt8UnboundedSequence          ID = 147
	Int16UnboundedSequence          ID = 148
	UInt16UnboundedSequence         ID = 149
	Int32UnboundedSequence          ID = 150
	UInt32UnboundedSequence         ID = 151
	Int64UnboundedSequence          ID = 152
	UInt64UnboundedSequence         ID = 153
	FloatUnboundedSequence          ID = 154
	DoubleUnboundedSequence         ID = 155
	LongDoubleUnboundedSequence     ID = 156
	CharUnboundedSequence           ID = 157
	WCharUnboundedSequence          ID = 158
	BooleanUnboundedSequence        ID = 159
	ByteUnboundedSequence           ID = 160
	StringUnboundedSequence         ID = 161
	WStringUnboundedSequence        ID = 162
	FixedStringUnboundedSequence    ID = 163
	FixedWStringUnboundedSequence   ID = 164
	BoundedStringUnboundedSequence  ID = 165
	BoundedWStringUnboundedSequence ID = 166
)

// elementNames are the element kinds shared by every block, indexed by
// offset from the block base. Offset 0 is unused except for NotSet.
var elementNames = []string{
	"",
	"NestedType",
	"Int8", "UInt8", "Int16", "UInt16", "Int32", "UInt32", "Int64", "UInt64",
	"Float", "Double", "LongDouble",
	"Char", "WChar",
	"Boolean",
	"Byte",
	"String", "WString",
	"FixedString", "FixedWString",
	"BoundedString", "BoundedWString",
}

var blockSuffixes = []struct {
	base   ID
	suffix string
}{
	{scalarBase, ""},
	{arrayBase, "Array"},
	{boundedBase, "BoundedSequence"},
	{unboundedBase, "UnboundedSequence"},
}

var (
	// names maps every assigned code to its variant name.
	names = map[ID]string{NotSet: "NotSet"}
	// byName maps lower-cased variant names back to codes.
	byName = map[string]ID{"notset": NotSet}
	// ordered holds all variants in ascending code order.
	ordered []ID
)

func init() {
	for _, b := range blockSuffixes {
		for off := 1; off < len(elementNames); off++ {
			id := b.base + ID(off)
			name := elementNames[off] + b.suffix
			names[id] = name
			byName[strings.ToLower(name)] = id
		}
	}
	ordered = make([]ID, 0, len(names))
	for id := range names {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
}

// UnknownFieldTypeError is returned when a name or code matches no variant.
type UnknownFieldTypeError struct {
	Input string
	Valid []string
}

func (e *UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("unknown field type %s, expected one of: %s", e.Input, strings.Join(e.Valid, ", "))
}

// All returns every variant in ascending code order.
func All() []ID {
	out := make([]ID, len(ordered))
	copy(out, ordered)
	return out
}

// Names returns every variant name in ascending code order.
func Names() []string {
	out := make([]string, len(ordered))
	for i, id := range ordered {
		out[i] = names[id]
	}
	return out
}

// Parse resolves a variant name, ignoring case.
func Parse(s string) (ID, error) {
	if id, ok := byName[strings.ToLower(s)]; ok {
		return id, nil
	}
	return NotSet, &UnknownFieldTypeError{Input: fmt.Sprintf("%q", s), Valid: Names()}
}

// FromCode resolves a numeric code.
func FromCode(code uint64) (ID, error) {
	if code <= uint64(BoundedWStringUnboundedSequence) {
		if _, ok := names[ID(code)]; ok {
			return ID(code), nil
		}
	}
	return NotSet, &UnknownFieldTypeError{Input: fmt.Sprintf("%d", code), Valid: Names()}
}

// String returns the variant name.
func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Code returns the numeric wire code.
func (id ID) Code() uint64 { return uint64(id) }

// Valid reports whether id is an assigned code.
func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

func (id ID) base() ID {
	switch {
	case id >= unboundedBase:
		return unboundedBase
	case id >= boundedBase:
		return boundedBase
	case id >= arrayBase:
		return arrayBase
	default:
		return scalarBase
	}
}

// Element returns the scalar variant this code is a container of, or the
// code itself for scalars. NotSet maps to NotSet.
func (id ID) Element() ID {
	if id == NotSet {
		return NotSet
	}
	return id - id.base()
}

// IsNested reports whether the code refers to a nested type, either
// directly or as the element of an array or sequence.
func (id ID) IsNested() bool { return id != NotSet && id.Element() == NestedType }

// IsArray reports whether the code is a fixed-size array.
func (id ID) IsArray() bool { return id.Valid() && id.base() == arrayBase }

// IsBoundedSequence reports whether the code is a bounded sequence.
func (id ID) IsBoundedSequence() bool { return id.Valid() && id.base() == boundedBase }

// IsUnboundedSequence reports whether the code is an unbounded sequence.
func (id ID) IsUnboundedSequence() bool { return id.Valid() && id.base() == unboundedBase }

// MarshalJSON encodes the variant name.
func (id ID) MarshalJSON() ([]byte, error) {
	if !id.Valid() {
		return nil, &UnknownFieldTypeError{Input: fmt.Sprintf("%d", uint8(id)), Valid: Names()}
	}
	return json.Marshal(id.String())
}

// UnmarshalJSON accepts either a variant name or a numeric code.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case json.Number:
		n, err := v.Int64()
		if err != nil || n < 0 {
			return &UnknownFieldTypeError{Input: v.String(), Valid: Names()}
		}
		parsed, err := FromCode(uint64(n))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	default:
		return fmt.Errorf("field type id must be a string or an integer, got %s", string(data))
	}
}
