package query

import "encoding/json"

// Reply is one answer to a request.
type Reply struct {
	Key      string // e.g., "@ros2_types/std_msgs/msg/String"
	Payload  []byte
	Encoding string
}

// MarshalJSON renders the reply as {"key","value","encoding"}. JSON payloads
// are embedded as-is; anything else becomes a string value.
func (r Reply) MarshalJSON() ([]byte, error) {
	out := struct {
		Key      string `json:"key"`
		Value    any    `json:"value"`
		Encoding string `json:"encoding"`
	}{Key: r.Key, Encoding: r.Encoding}

	if r.Encoding == EncodingJSON && json.Valid(r.Payload) {
		out.Value = json.RawMessage(r.Payload)
	} else {
		out.Value = string(r.Payload)
	}
	return json.Marshal(out)
}

// Replier delivers the replies of a single request. Replies for one request
// are sent sequentially, in match order.
type Replier interface {
	Reply(r Reply) error
	ReplyErr(msg string) error
}

// Buffer is a Replier that keeps replies in memory.
type Buffer struct {
	Replies []Reply
	Err     string
}

func (b *Buffer) Reply(r Reply) error {
	b.Replies = append(b.Replies, r)
	return nil
}

func (b *Buffer) ReplyErr(msg string) error {
	b.Err = msg
	return nil
}
