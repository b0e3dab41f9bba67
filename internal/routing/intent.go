// Package routing translates between a structured routing intent and the
// single header line embedded in the agent CLI's custom-headers variable.
// Three routing modes exist: dispatch to a named upstream provider, apply a
// server-side gateway config, or pass an existing subscription token through
// the gateway with request logging.
package routing

import "strings"

// Mode selects which routing variant an Intent carries.
type Mode string

const (
	// ModeUnknown means no routing is configured, or the line could not be
	// classified. Callers treat it as "not set up yet", never as a failure.
	ModeUnknown Mode = "unknown"
	// ModeProvider routes every request to one upstream provider.
	ModeProvider Mode = "provider"
	// ModeConfig applies a server-side gateway config by ID.
	ModeConfig Mode = "config"
	// ModeOauth passes the caller's own subscription token through the
	// gateway, forwarding a declared set of request headers upstream.
	ModeOauth Mode = "oauth"
)

// Intent is the user's chosen upstream-dispatch strategy. Exactly one variant
// is populated, selected by Mode.
type Intent struct {
	Mode Mode

	// Provider is the canonical provider slug, stored without the leading
	// "@" and displayed with exactly one.
	Provider string

	// ConfigID is the opaque server-side config identifier.
	ConfigID string

	// ForwardHeaders lists the names of request headers the gateway forwards
	// upstream in pass-through mode. Only the names travel in the header
	// line; the token values themselves never do.
	ForwardHeaders []string
}

// ProviderIntent builds a provider-mode intent from a possibly "@"-prefixed slug.
func ProviderIntent(slug string) Intent {
	return Intent{Mode: ModeProvider, Provider: NormalizeProviderSlug(slug)}
}

// ConfigIntent builds a config-mode intent.
func ConfigIntent(id string) Intent {
	return Intent{Mode: ModeConfig, ConfigID: strings.TrimSpace(id)}
}

// OauthIntent builds a pass-through intent forwarding the named headers.
func OauthIntent(forwardHeaders []string) Intent {
	return Intent{Mode: ModeOauth, ForwardHeaders: forwardHeaders}
}

// DisplayProvider renders the provider slug with its single leading "@".
func (i Intent) DisplayProvider() string {
	if i.Provider == "" {
		return ""
	}
	return "@" + i.Provider
}

// NormalizeProviderSlug strips every leading "@" from slug, yielding the
// canonical internal form. Idempotent under repeated application.
func NormalizeProviderSlug(slug string) string {
	return strings.TrimLeft(strings.TrimSpace(slug), "@")
}
