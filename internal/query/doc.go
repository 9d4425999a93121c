// Package query answers key-expression requests against a loaded registry,
// independently of the transport that carries them. A request names a
// pattern under the types key prefix (or the environment key prefix) and an
// optional format; the handler sends one reply per match through a Replier,
// or a single error reply when the request cannot be served.
package query
