package natsq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/ros2types/ros2types/internal/query"
)

// DefaultTimeout bounds a request when the caller's context has no deadline.
const DefaultTimeout = 5 * time.Second

// Client sends requests to a Responder and collects the reply stream.
type Client struct {
	nc      *nats.Conn
	prefix  string
	version string
	log     zerolog.Logger
}

// NewClient returns a client publishing on nc.
func NewClient(nc *nats.Conn, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{nc: nc, prefix: o.prefix, version: o.version, log: o.log}
}

// Query requests the types matching key in the given format.
func (c *Client) Query(ctx context.Context, key, format string) ([]query.Reply, error) {
	return c.do(ctx, QuerySubject(c.prefix), Request{Key: key, Format: format})
}

// Env requests the environment variables matching key.
func (c *Client) Env(ctx context.Context, key string) ([]query.Reply, error) {
	return c.do(ctx, EnvSubject(c.prefix), Request{Key: key})
}

func (c *Client) do(ctx context.Context, subject string, req Request) ([]query.Reply, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	inbox := c.nc.NewRespInbox()
	sub, err := c.nc.SubscribeSync(inbox)
	if err != nil {
		return nil, fmt.Errorf("subscribing to reply inbox: %w", err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	msg := nats.NewMsg(subject)
	msg.Reply = inbox
	msg.Header.Set(HeaderVersion, c.version)
	msg.Data = data
	if err := c.nc.PublishMsg(msg); err != nil {
		return nil, fmt.Errorf("publishing request: %w", err)
	}

	var (
		replies []query.Reply
		remote  *RemoteError
	)
	for {
		m, err := sub.NextMsgWithContext(ctx)
		if err != nil {
			return replies, fmt.Errorf("waiting for replies on %s: %w", subject, err)
		}
		if m.Header.Get(HeaderDone) != "" {
			break
		}
		if m.Header.Get(HeaderError) != "" {
			remote = &RemoteError{Message: string(m.Data), RequestID: m.Header.Get(HeaderRequestID)}
			continue
		}
		if v := m.Header.Get(HeaderVersion); v != "" {
			if ok, err := Compatible(c.version, v); err != nil || !ok {
				return replies, fmt.Errorf("responder speaks protocol %s, client speaks %s", v, c.version)
			}
		}
		replies = append(replies, query.Reply{
			Key:      m.Header.Get(HeaderKey),
			Payload:  m.Data,
			Encoding: m.Header.Get(HeaderContentType),
		})
	}

	c.log.Debug().Str("subject", subject).Str("key", req.Key).Int("replies", len(replies)).Msg("request complete")
	if remote != nil {
		return replies, remote
	}
	return replies, nil
}
