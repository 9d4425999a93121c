// Package fieldtype enumerates the wire-level field type codes used by
// ROS 2 type descriptions. Codes are laid out in four parallel blocks
// (scalar, fixed-size array, bounded sequence, unbounded sequence) that
// share the same relative offsets, so the element kind of any code can be
// recovered by subtracting its block base.
//
// Both the numeric code and the variant name (case-insensitive) are
// accepted as input; any other value is rejected with the list of valid
// names.
package fieldtype
