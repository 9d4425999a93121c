package typedesc

import "github.com/ros2types/ros2types/internal/fieldtype"

// HashedTypeDescription is the content of a .json file generated next to a
// .msg/.srv/.action definition.
type HashedTypeDescription struct {
	TypeDescriptionMsg TypeDescription   `json:"type_description_msg"`
	TypeHashes         []TypeNameAndHash `json:"type_hashes"`
}

// TypeNameAndHash associates a type name with its content hash.
type TypeNameAndHash struct {
	TypeName   string `json:"type_name"`
	HashString string `json:"hash_string"`
}

// TypeDescription holds a type and every type it references, directly or
// transitively, in the order the description generator flattened them.
type TypeDescription struct {
	TypeDescription            IndividualTypeDescription   `json:"type_description"`
	ReferencedTypeDescriptions []IndividualTypeDescription `json:"referenced_type_descriptions"`
}

// IndividualTypeDescription describes a single type without its references.
type IndividualTypeDescription struct {
	TypeName string  `json:"type_name"`
	Fields   []Field `json:"fields"`
}

// Field is a single member of a type.
type Field struct {
	DefaultValue *string   `json:"default_value"`
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
}

// FieldType describes the wire type of a field. Capacity and StringCapacity
// only matter for arrays, bounded sequences and bounded strings;
// NestedTypeName only matters when TypeID refers to a nested type.
type FieldType struct {
	TypeID         fieldtype.ID `json:"type_id"`
	Capacity       uint32       `json:"capacity"`
	StringCapacity uint32       `json:"string_capacity"`
	NestedTypeName string       `json:"nested_type_name"`
}

// HashFor returns the hash recorded for typeName.
func (h *HashedTypeDescription) HashFor(typeName string) (string, bool) {
	for _, th := range h.TypeHashes {
		if th.TypeName == typeName {
			return th.HashString, true
		}
	}
	return "", false
}

// SelfName returns the name of the described type.
func (h *HashedTypeDescription) SelfName() string {
	return h.TypeDescriptionMsg.TypeDescription.TypeName
}

// NestedTypeNames returns the names of nested types referenced by the
// fields, in field order, without duplicates.
func (d *IndividualTypeDescription) NestedTypeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range d.Fields {
		if !f.Type.TypeID.IsNested() || f.Type.NestedTypeName == "" {
			continue
		}
		if seen[f.Type.NestedTypeName] {
			continue
		}
		seen[f.Type.NestedTypeName] = true
		names = append(names, f.Type.NestedTypeName)
	}
	return names
}
