// Package natsq serves registry requests over NATS request/reply.
//
// A client publishes a JSON Request on "<prefix>.query" (types) or
// "<prefix>.env" (environment) with a reply inbox. The responder answers
// with one message per match on that inbox, then a final message carrying
// the HeaderDone header. A failed request gets a single HeaderError message
// before the done marker.
package natsq

import "fmt"

// Headers carried by reply messages.
const (
	HeaderKey         = "Ros2types-Key"
	HeaderContentType = "Content-Type"
	HeaderVersion     = "Ros2types-Version"
	HeaderError       = "Ros2types-Error"
	HeaderDone        = "Ros2types-Done"
	HeaderRequestID   = "Ros2types-Request-Id"
)

const (
	querySuffix = ".query"
	envSuffix   = ".env"
	queueGroup  = "ros2types"
)

// Request is the payload of a request message.
type Request struct {
	Key    string `json:"key"`
	Format string `json:"format,omitempty"`
}

// RemoteError is an error reply from the responder.
type RemoteError struct {
	Message   string
	RequestID string
}

func (e *RemoteError) Error() string {
	if e.RequestID == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (request %s)", e.Message, e.RequestID)
}

// QuerySubject returns the subject type requests are published on.
func QuerySubject(prefix string) string { return prefix + querySuffix }

// EnvSubject returns the subject environment requests are published on.
func EnvSubject(prefix string) string { return prefix + envSuffix }
