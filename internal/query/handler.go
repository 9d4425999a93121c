package query

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ros2types/ros2types/internal/branding"
	"github.com/ros2types/ros2types/internal/ketree"
	"github.com/ros2types/ros2types/internal/registry"
)

// marshalJSON is swapped in tests to exercise serialization failures.
var marshalJSON = json.Marshal

// Handler serves type and environment requests from a loaded registry. It
// only reads the registry, so one Handler may serve concurrent requests.
type Handler struct {
	reg        *registry.Registry
	typePrefix string
	envPrefix  string
	envNames   *ketree.Tree[string]
	lookupEnv  func(string) (string, bool)
	log        zerolog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// WithEnvAllowList replaces the environment variables that may be read.
func WithEnvAllowList(names []string) Option {
	return func(h *Handler) { h.envNames = envTree(names) }
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(h *Handler) { h.lookupEnv = fn }
}

// NewHandler returns a handler over reg. The registry must be fully loaded.
func NewHandler(reg *registry.Registry, opts ...Option) *Handler {
	h := &Handler{
		reg:        reg,
		typePrefix: branding.TypesKeyPrefix(),
		envPrefix:  branding.EnvKeyPrefix(),
		envNames:   envTree(DefaultEnvAllowList),
		lookupEnv:  os.LookupEnv,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// TypesKey returns the request key for a type name pattern.
func (h *Handler) TypesKey(pattern string) string {
	return h.typePrefix + ketree.Separator + pattern
}

// EnvKey returns the request key for an environment name pattern.
func (h *Handler) EnvKey(pattern string) string {
	return h.envPrefix + ketree.Separator + pattern
}

// HandleTypes answers a type request: key is the types prefix followed by a
// name pattern, format one of Tokens (or empty). It sends one reply per
// matching type and returns the number of replies delivered. If format or
// key is invalid, a single error reply is sent and the error returned.
func (h *Handler) HandleTypes(key, format string, rp Replier) (int, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return 0, h.fail(rp, key, err)
	}
	pattern, err := stripPrefix(key, h.typePrefix)
	if err != nil {
		return 0, h.fail(rp, key, err)
	}
	if pattern == "" {
		return 0, nil
	}

	recs, err := h.reg.Query(pattern)
	if err != nil {
		return 0, h.fail(rp, key, err)
	}
	h.log.Debug().Str("key", key).Stringer("format", f).Int("matches", len(recs)).Msg("handling type request")

	sent := 0
	for _, rec := range recs {
		r := Reply{
			Key:      h.TypesKey(rec.FullName),
			Payload:  h.render(rec, f),
			Encoding: f.Encoding(),
		}
		if err := rp.Reply(r); err != nil {
			h.log.Warn().Err(err).Str("key", key).Str("reply", r.Key).Msg("error sending reply")
			continue
		}
		sent++
	}
	return sent, nil
}

// HandleEnv answers an environment request: key is the env prefix followed
// by a name pattern matched against the allow-list. Unset variables produce
// no reply.
func (h *Handler) HandleEnv(key string, rp Replier) (int, error) {
	pattern, err := stripPrefix(key, h.envPrefix)
	if err != nil {
		return 0, h.fail(rp, key, err)
	}
	if pattern == "" {
		return 0, nil
	}

	names, err := h.envNames.Query(pattern)
	if err != nil {
		return 0, h.fail(rp, key, err)
	}

	sent := 0
	for _, name := range names {
		value, ok := h.lookupEnv(name)
		if !ok {
			continue
		}
		r := Reply{Key: h.EnvKey(name), Payload: []byte(value), Encoding: EncodingText}
		if err := rp.Reply(r); err != nil {
			h.log.Warn().Err(err).Str("key", key).Str("reply", r.Key).Msg("error sending reply")
			continue
		}
		sent++
	}
	return sent, nil
}

func (h *Handler) render(rec *registry.TypeRecord, f Format) []byte {
	switch f {
	case FormatDescription:
		return h.renderJSON(rec.Description.TypeDescriptionMsg.TypeDescription)
	case FormatFull:
		return h.renderJSON(rec.Description.TypeDescriptionMsg)
	case FormatDefinition:
		return []byte(rec.DefinitionText)
	case FormatFlattened:
		schema, _ := h.reg.Flatten(rec)
		return []byte(schema)
	case FormatHash:
		return []byte(rec.Hash)
	case FormatPath:
		return []byte(rec.DefinitionPath)
	default:
		return nil
	}
}

func (h *Handler) renderJSON(v any) []byte {
	data, err := marshalJSON(v)
	if err != nil {
		h.log.Warn().Err(err).Msg("serializing type description")
		return []byte(fmt.Sprintf("Failed to serialize type description: %v", err))
	}
	return data
}

func (h *Handler) fail(rp Replier, key string, err error) error {
	h.log.Debug().Err(err).Str("key", key).Msg("rejecting request")
	if replyErr := rp.ReplyErr(err.Error()); replyErr != nil {
		h.log.Warn().Err(replyErr).Str("key", key).Msg("error sending error reply")
	}
	return err
}

// stripPrefix returns the pattern that follows prefix in key. The bare
// prefix yields an empty pattern, which matches nothing.
func stripPrefix(key, prefix string) (string, error) {
	if key == prefix {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(key, prefix+ketree.Separator); ok {
		return rest, nil
	}
	return "", fmt.Errorf("key %q is not under %s", key, prefix)
}
