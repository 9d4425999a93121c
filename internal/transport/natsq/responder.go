package natsq

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/ros2types/ros2types/internal/branding"
	"github.com/ros2types/ros2types/internal/query"
)

const transportName = "nats"

// Responder answers requests published on the query and env subjects.
type Responder struct {
	nc      *nats.Conn
	handler *query.Handler
	prefix  string
	log     zerolog.Logger
	obs     query.Observer

	mu   sync.Mutex
	subs []*nats.Subscription
	wg   sync.WaitGroup
}

// Option configures a Responder or a Client.
type Option func(*options)

type options struct {
	prefix  string
	log     zerolog.Logger
	obs     query.Observer
	version string
}

func defaultOptions() options {
	return options{
		prefix:  branding.SubjectPrefix(),
		log:     zerolog.Nop(),
		obs:     query.NopObserver{},
		version: ProtocolVersion,
	}
}

// WithSubjectPrefix sets the subject prefix (default from branding).
func WithSubjectPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver sets the receiver of per-request events.
func WithObserver(obs query.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.obs = obs
		}
	}
}

// WithProtocolVersion overrides the protocol version a client announces.
func WithProtocolVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// NewResponder returns a responder serving h on nc. Call Start to subscribe.
func NewResponder(nc *nats.Conn, h *query.Handler, opts ...Option) *Responder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Responder{
		nc:      nc,
		handler: h,
		prefix:  o.prefix,
		log:     o.log,
		obs:     o.obs,
	}
}

// Start subscribes to the query and env subjects in a queue group, so that
// several responders share the load. Each request is served on its own
// goroutine.
func (r *Responder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, subject := range []string{QuerySubject(r.prefix), EnvSubject(r.prefix)} {
		sub, err := r.nc.QueueSubscribe(subject, queueGroup, r.dispatch)
		if err != nil {
			r.unsubscribeLocked()
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
		r.subs = append(r.subs, sub)
	}
	// Flush ensures the subscriptions are registered on the server before
	// returning, so that requests published on other connections are routed.
	if err := r.nc.Flush(); err != nil {
		r.unsubscribeLocked()
		return fmt.Errorf("flushing subscriptions: %w", err)
	}

	r.log.Info().Str("query", QuerySubject(r.prefix)).Str("env", EnvSubject(r.prefix)).Msg("listening for requests")
	return nil
}

// Stop unsubscribes and waits for in-flight requests to finish.
func (r *Responder) Stop() {
	r.mu.Lock()
	r.unsubscribeLocked()
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Responder) unsubscribeLocked() {
	for _, sub := range r.subs {
		_ = sub.Unsubscribe()
	}
	r.subs = nil
}

func (r *Responder) dispatch(msg *nats.Msg) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.serve(msg)
	}()
}

func (r *Responder) serve(msg *nats.Msg) {
	start := time.Now()
	id := uuid.NewString()
	log := r.log.With().Str("request_id", id).Str("subject", msg.Subject).Logger()

	if msg.Reply == "" {
		log.Warn().Msg("dropping request without reply subject")
		return
	}
	rp := &inboxReplier{nc: r.nc, inbox: msg.Reply, requestID: id}

	var (
		req    Request
		sent   int
		err    error
		format = "invalid"
	)
	switch {
	case json.Unmarshal(msg.Data, &req) != nil:
		err = fmt.Errorf("invalid request payload: expected JSON {\"key\", \"format\"}")
		_ = rp.ReplyErr(err.Error())
	case !r.compatible(msg, rp, &err):
	case msg.Subject == EnvSubject(r.prefix):
		format = "env"
		sent, err = r.handler.HandleEnv(req.Key, rp)
	default:
		format = query.FormatLabel(req.Format)
		sent, err = r.handler.HandleTypes(req.Key, req.Format, rp)
	}

	if doneErr := rp.done(sent); doneErr != nil {
		log.Warn().Err(doneErr).Msg("error sending done marker")
	}
	r.obs.ObserveQuery(transportName, format, sent, err, time.Since(start))
	log.Debug().Str("key", req.Key).Str("format", req.Format).Int("replies", sent).AnErr("error", err).Msg("handled request")
}

// compatible checks the client's announced protocol version. On mismatch it
// sends an error reply, stores the error in errp and returns false.
func (r *Responder) compatible(msg *nats.Msg, rp *inboxReplier, errp *error) bool {
	remote := msg.Header.Get(HeaderVersion)
	if remote == "" {
		return true
	}
	ok, err := Compatible(ProtocolVersion, remote)
	if err == nil && ok {
		return true
	}
	if err == nil {
		err = fmt.Errorf("incompatible protocol version %s, responder speaks %s", remote, ProtocolVersion)
	}
	*errp = err
	_ = rp.ReplyErr(err.Error())
	return false
}

// inboxReplier publishes the replies of one request to its inbox.
type inboxReplier struct {
	nc        *nats.Conn
	inbox     string
	requestID string
}

func (p *inboxReplier) msg() *nats.Msg {
	m := nats.NewMsg(p.inbox)
	m.Header.Set(HeaderVersion, ProtocolVersion)
	m.Header.Set(HeaderRequestID, p.requestID)
	return m
}

func (p *inboxReplier) Reply(r query.Reply) error {
	m := p.msg()
	m.Header.Set(HeaderKey, r.Key)
	m.Header.Set(HeaderContentType, r.Encoding)
	m.Data = r.Payload
	return p.nc.PublishMsg(m)
}

func (p *inboxReplier) ReplyErr(text string) error {
	m := p.msg()
	m.Header.Set(HeaderError, "true")
	m.Header.Set(HeaderContentType, query.EncodingText)
	m.Data = []byte(text)
	return p.nc.PublishMsg(m)
}

func (p *inboxReplier) done(count int) error {
	m := p.msg()
	m.Header.Set(HeaderDone, strconv.Itoa(count))
	return p.nc.PublishMsg(m)
}
