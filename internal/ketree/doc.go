// Package ketree implements a key-expression tree: a prefix tree over
// '/'-separated keys whose nodes can carry a value (the node's "weight").
//
// Nodes live in a single growable slice and refer to their children by
// index, so the tree owns every value it holds and never needs pointers
// between nodes. Insertion and exact lookup are linear in the number of
// key segments.
//
// Queries accept patterns made of three kinds of segment:
//
//	literal   matches exactly that segment
//	*         matches exactly one arbitrary segment
//	**        matches zero or more arbitrary segments
//
// so "std_msgs/msg/**" selects everything under std_msgs/msg and "**"
// selects every value in the tree. A tree is not safe for concurrent
// mutation, but once fully built any number of goroutines may query it.
package ketree
