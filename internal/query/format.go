package query

import (
	"fmt"
	"strings"
)

// Format selects the payload sent for each matched type.
type Format int

const (
	// FormatDescription is the type's own description as JSON.
	FormatDescription Format = iota
	// FormatFull is the type's description with every referenced type.
	FormatFull
	// FormatDefinition is the raw .msg/.srv/.action text.
	FormatDefinition
	// FormatFlattened is the definition followed by its dependencies'
	// definitions, as recording tools store schemas.
	FormatFlattened
	// FormatHash is the type's RIHS hash.
	FormatHash
	// FormatPath is the filesystem path of the definition file.
	FormatPath
)

// Reply payload encodings.
const (
	EncodingJSON = "application/json"
	EncodingText = "text/plain"
)

var formatTokens = []string{"description", "full", "definition", "flattened", "hash", "path"}

// aliases maps older format names onto their tokens.
var aliases = map[string]Format{
	"typedescription":     FormatDescription,
	"fulltypedescription": FormatFull,
	"mcap":                FormatFlattened,
}

// UnknownFormatError is returned for a format no token or alias matches.
type UnknownFormatError struct {
	Input string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("Unknown format '%s' - accepted values are: [%s]", e.Input, strings.Join(formatTokens, ", "))
}

// Tokens returns the accepted format tokens in declaration order.
func Tokens() []string {
	return append([]string(nil), formatTokens...)
}

// ParseFormat matches s case-insensitively against the format tokens and
// their aliases. An empty string selects FormatDescription.
func ParseFormat(s string) (Format, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return FormatDescription, nil
	}
	for i, tok := range formatTokens {
		if tok == lower {
			return Format(i), nil
		}
	}
	if f, ok := aliases[lower]; ok {
		return f, nil
	}
	return 0, &UnknownFormatError{Input: s}
}

// FormatLabel returns the canonical token for s, or "invalid" when s does
// not parse. It is meant for metric labels.
func FormatLabel(s string) string {
	f, err := ParseFormat(s)
	if err != nil {
		return "invalid"
	}
	return f.String()
}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatTokens) {
		return formatTokens[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Encoding returns the content type of replies in format f.
func (f Format) Encoding() string {
	switch f {
	case FormatDescription, FormatFull:
		return EncodingJSON
	default:
		return EncodingText
	}
}
