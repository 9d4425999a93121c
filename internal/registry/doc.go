// Package registry loads ROS 2 interface types from ament share directories
// and indexes them by full name. It walks source directories for
// .msg/.srv/.action definitions and their .json descriptions, builds
// validated TypeRecords, rejects conflicting redefinitions, and answers
// wildcard lookups. It also flattens a type's schema for recording tools and
// builds dependency trees over nested field types.
package registry
