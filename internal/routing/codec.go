package routing

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Header token keys making up a header line. A line is one or more
// newline-joined "key:value" tokens.
const (
	TokenProvider = "x-portkey-provider"
	TokenConfig   = "x-portkey-config"
	TokenAPIKey   = "x-portkey-api-key"
	TokenMode     = "x-portkey-mode"
)

// configIDPrefix is the canonical prefix of server-side config IDs.
const configIDPrefix = "pc-"

// bareConfigIDMaxLength bounds the legacy heuristic: an untagged config token
// shorter than this is classified as a plain config ID rather than an
// embedded pass-through payload. Lines written by this tool carry an explicit
// mode token instead, but lines from older installers may not.
const bareConfigIDMaxLength = 30

// ErrInvalidIntent reports an intent that cannot be encoded: an empty
// provider slug or config ID, pass-through mode without a gateway API key, or
// an unknown mode.
var ErrInvalidIntent = errors.New("routing: invalid intent")

type oauthPayload struct {
	ForwardHeaders []string `json:"forward_headers"`
}

// Encode serializes intent into a header line. apiKey is the gateway API key
// and is required for pass-through mode, where it is emitted as its own
// token; the upstream subscription token is never embedded.
//
// Config and pass-through lines carry an explicit mode token because both use
// the config token and would otherwise be told apart only by a fragile
// prefix/length heuristic. Provider lines stay single-token.
func Encode(intent Intent, apiKey string) (string, error) {
	switch intent.Mode {
	case ModeProvider:
		slug := NormalizeProviderSlug(intent.Provider)
		if slug == "" {
			return "", fmt.Errorf("%w: provider slug is empty", ErrInvalidIntent)
		}
		return TokenProvider + ":@" + slug, nil

	case ModeConfig:
		id := strings.TrimSpace(intent.ConfigID)
		if id == "" {
			return "", fmt.Errorf("%w: config id is empty", ErrInvalidIntent)
		}
		return TokenConfig + ":" + id + "\n" + TokenMode + ":" + string(ModeConfig), nil

	case ModeOauth:
		if strings.TrimSpace(apiKey) == "" {
			return "", fmt.Errorf("%w: pass-through routing requires a gateway api key", ErrInvalidIntent)
		}
		headers := intent.ForwardHeaders
		if headers == nil {
			headers = []string{}
		}
		payload, err := json.Marshal(oauthPayload{ForwardHeaders: headers})
		if err != nil {
			return "", fmt.Errorf("encode forward headers: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(payload)
		return TokenAPIKey + ":" + apiKey + "\n" +
			TokenConfig + ":" + encoded + "\n" +
			TokenMode + ":" + string(ModeOauth), nil

	default:
		return "", fmt.Errorf("%w: mode %q", ErrInvalidIntent, intent.Mode)
	}
}

// Decode classifies a header line back into structured intent. It never
// fails: a line with no routing tokens, or a pass-through payload that cannot
// be parsed, decodes to ModeUnknown.
//
// Lines written by this tool carry a mode token which is trusted outright.
// Untagged lines fall back to the legacy heuristic for telling a plain config
// ID apart from an embedded payload.
func Decode(line string) Intent {
	tokens := parseTokens(line)

	if value, ok := tokens[TokenProvider]; ok {
		return Intent{Mode: ModeProvider, Provider: strings.TrimPrefix(value, "@")}
	}

	value, ok := tokens[TokenConfig]
	if !ok {
		return Intent{Mode: ModeUnknown}
	}

	switch Mode(tokens[TokenMode]) {
	case ModeConfig:
		return Intent{Mode: ModeConfig, ConfigID: value}
	case ModeOauth:
		return decodeOauthPayload(value)
	}

	if strings.HasPrefix(value, configIDPrefix) || len(value) < bareConfigIDMaxLength {
		return Intent{Mode: ModeConfig, ConfigID: value}
	}
	return decodeOauthPayload(value)
}

func decodeOauthPayload(value string) Intent {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return Intent{Mode: ModeUnknown}
	}
	var payload oauthPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return Intent{Mode: ModeUnknown}
	}
	return Intent{Mode: ModeOauth, ForwardHeaders: payload.ForwardHeaders}
}

// parseTokens splits a header line into its key/value tokens. The first
// occurrence of a key wins; lines and values are whitespace-trimmed.
func parseTokens(line string) map[string]string {
	tokens := map[string]string{}
	for _, raw := range strings.Split(line, "\n") {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if raw == "" {
			continue
		}
		key, value, found := strings.Cut(raw, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, exists := tokens[key]; exists {
			continue
		}
		tokens[key] = strings.TrimSpace(value)
	}
	return tokens
}
