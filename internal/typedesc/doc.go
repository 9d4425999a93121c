// Package typedesc handles parsing and validation of the structured type
// descriptions (HashedTypeDescription) that ROS 2 generates next to each
// .msg/.srv/.action file. Descriptions are validated against an embedded
// JSON Schema and then decoded strictly: unknown fields at any level are
// rejected rather than ignored.
package typedesc
