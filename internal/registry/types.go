package registry

import (
	"fmt"
	"strings"

	"github.com/ros2types/ros2types/internal/ketree"
	"github.com/ros2types/ros2types/internal/typedesc"
)

// Source represents a directory to search for types (e.g., one ament prefix).
type Source struct {
	Name     string // e.g., "/opt/ros/jazzy"
	BasePath string // absolute path to the source root, e.g. "/opt/ros/jazzy/share"
}

// Kind is the structural category of a type, derived from its definition
// file extension.
type Kind int

const (
	KindMsg Kind = iota + 1
	KindSrv
	KindAction
)

var kindTags = map[Kind]string{
	KindMsg:    "msg",
	KindSrv:    "srv",
	KindAction: "action",
}

// String returns the upper-case kind name used in flattened schema headers.
func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return strings.ToUpper(tag)
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tag returns the lower-case segment that appears in full names and as the
// definition file extension.
func (k Kind) Tag() string { return kindTags[k] }

// ParseKind matches s case-insensitively against the kind tags.
func ParseKind(s string) (Kind, bool) {
	lower := strings.ToLower(s)
	for k, tag := range kindTags {
		if tag == lower {
			return k, true
		}
	}
	return 0, false
}

// KindFromExt maps a definition file extension (with or without the leading
// dot) to its kind. Matching is exact.
func KindFromExt(ext string) (Kind, bool) {
	ext = strings.TrimPrefix(ext, ".")
	for k, tag := range kindTags {
		if tag == ext {
			return k, true
		}
	}
	return 0, false
}

// TypeRecord is one loaded type. Records are built by NewTypeRecord and never
// modified afterwards.
type TypeRecord struct {
	FullName        string // e.g., "std_msgs/msg/String"
	Namespace       string // e.g., "std_msgs"
	ShortName       string // e.g., "String"
	Kind            Kind
	Description     *typedesc.HashedTypeDescription
	Hash            string // RIHS hash of this type, from Description.TypeHashes
	DescriptionPath string // path to the .json file
	DefinitionPath  string // path to the .msg/.srv/.action file
	DefinitionText  string // raw content of the definition file
}

// NewTypeRecord validates desc for a definition of the given kind and builds
// the record. The full name is the description's self type name; it must have
// the form <namespace>/<kind>/<name>, its middle segment must name kind, and
// desc must list a hash for it.
func NewTypeRecord(kind Kind, desc *typedesc.HashedTypeDescription, definitionText, descriptionPath, definitionPath string) (*TypeRecord, error) {
	fullName := desc.SelfName()
	invalid := func(reason string) error {
		return &ValidationError{Path: descriptionPath, TypeName: fullName, Reason: reason}
	}

	if fullName == "" {
		return nil, invalid("empty type name")
	}
	parts := strings.Split(fullName, ketree.Separator)
	if len(parts) != 3 {
		return nil, invalid("expected format <package>/<kind>/<name>, e.g. std_msgs/msg/String")
	}
	for _, p := range parts {
		if p == "" {
			return nil, invalid("empty name segment")
		}
		if strings.Contains(p, ketree.SingleWildcard) {
			return nil, invalid("wildcard in type name")
		}
	}

	segKind, ok := ParseKind(parts[1])
	if !ok {
		return nil, invalid(fmt.Sprintf("invalid kind segment %q, expected %q", parts[1], kind.Tag()))
	}
	if segKind != kind {
		return nil, invalid(fmt.Sprintf("kind mismatch: expected %q, found %q", kind.Tag(), parts[1]))
	}

	hash, ok := desc.HashFor(fullName)
	if !ok {
		return nil, invalid("no hash listed for this type")
	}

	return &TypeRecord{
		FullName:        fullName,
		Namespace:       parts[0],
		ShortName:       parts[2],
		Kind:            kind,
		Description:     desc,
		Hash:            hash,
		DescriptionPath: descriptionPath,
		DefinitionPath:  definitionPath,
		DefinitionText:  definitionText,
	}, nil
}

// ShortTypeName drops the kind segment: "std_msgs/msg/String" becomes
// "std_msgs/String".
func (r *TypeRecord) ShortTypeName() string {
	return r.Namespace + "/" + r.ShortName
}

// DependencyNode represents a node in the dependency tree.
type DependencyNode struct {
	TypeName string
	Record   *TypeRecord // nil when Missing
	Children []*DependencyNode
	Deduped  bool // true if this type was already seen earlier in the tree
	Missing  bool // true if the type is not in the registry
}
