package routing

import (
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncode_Provider(t *testing.T) {
	line, err := Encode(ProviderIntent("anthropic"), "")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if line != "x-portkey-provider:@anthropic" {
		t.Fatalf("Encode() = %q, want %q", line, "x-portkey-provider:@anthropic")
	}
}

func TestEncode_ProviderNormalizesLeadingAt(t *testing.T) {
	line, err := Encode(Intent{Mode: ModeProvider, Provider: "@@bedrock-prod"}, "")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if line != "x-portkey-provider:@bedrock-prod" {
		t.Fatalf("Encode() = %q, want %q", line, "x-portkey-provider:@bedrock-prod")
	}

	// Normalization must be idempotent: re-encoding a decoded line is stable.
	again, err := Encode(Decode(line), "")
	if err != nil {
		t.Fatalf("Encode(Decode()) error = %v", err)
	}
	if again != line {
		t.Fatalf("Encode(Decode()) = %q, want %q", again, line)
	}
}

func TestEncode_ConfigCarriesModeToken(t *testing.T) {
	line, err := Encode(ConfigIntent("pc-12345"), "")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	wantTokens := []string{"x-portkey-config:pc-12345", "x-portkey-mode:config"}
	if got := strings.Split(line, "\n"); !reflect.DeepEqual(got, wantTokens) {
		t.Fatalf("Encode() tokens = %v, want %v", got, wantTokens)
	}
}

func TestEncode_OauthEmitsKeyPayloadAndModeTokens(t *testing.T) {
	line, err := Encode(OauthIntent([]string{"authorization", "anthropic-beta"}), "pk-live-1")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	tokens := strings.Split(line, "\n")
	if len(tokens) != 3 {
		t.Fatalf("Encode() produced %d tokens, want 3: %q", len(tokens), line)
	}
	if tokens[0] != "x-portkey-api-key:pk-live-1" {
		t.Fatalf("Encode() api key token = %q", tokens[0])
	}
	if tokens[2] != "x-portkey-mode:oauth" {
		t.Fatalf("Encode() mode token = %q", tokens[2])
	}

	payload := strings.TrimPrefix(tokens[1], "x-portkey-config:")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("config token is not base64: %v", err)
	}
	if want := `{"forward_headers":["authorization","anthropic-beta"]}`; string(raw) != want {
		t.Fatalf("payload = %s, want %s", raw, want)
	}
	if strings.Contains(line, "sk-ant") {
		t.Fatal("encoded line must never carry an upstream token")
	}
}

func TestEncode_InvalidIntents(t *testing.T) {
	cases := []struct {
		name   string
		intent Intent
		apiKey string
	}{
		{"empty provider slug", Intent{Mode: ModeProvider, Provider: "@@"}, ""},
		{"empty config id", Intent{Mode: ModeConfig, ConfigID: "  "}, ""},
		{"oauth without api key", OauthIntent([]string{"authorization"}), "  "},
		{"unknown mode", Intent{Mode: ModeUnknown}, ""},
	}
	for _, tc := range cases {
		if _, err := Encode(tc.intent, tc.apiKey); !errors.Is(err, ErrInvalidIntent) {
			t.Fatalf("Encode(%s) error = %v, want ErrInvalidIntent", tc.name, err)
		}
	}
}

func TestDecode_RoundTripsProviderAndConfig(t *testing.T) {
	intents := []Intent{
		ProviderIntent("anthropic"),
		ProviderIntent("@bedrock-prod"),
		ConfigIntent("pc-12345"),
		ConfigIntent("pc-" + strings.Repeat("f", 60)),
	}
	for _, intent := range intents {
		line, err := Encode(intent, "")
		if err != nil {
			t.Fatalf("Encode(%#v) error = %v", intent, err)
		}
		if got := Decode(line); !reflect.DeepEqual(got, intent) {
			t.Fatalf("Decode(Encode(%#v)) = %#v", intent, got)
		}
	}
}

func TestDecode_OauthRoundTripsForwardHeadersOnly(t *testing.T) {
	intent := OauthIntent([]string{"authorization", "anthropic-version"})
	line, err := Encode(intent, "pk-live-1")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got := Decode(line)
	if got.Mode != ModeOauth {
		t.Fatalf("Decode() mode = %q, want oauth", got.Mode)
	}
	if !reflect.DeepEqual(got.ForwardHeaders, intent.ForwardHeaders) {
		t.Fatalf("Decode() forward headers = %v, want %v", got.ForwardHeaders, intent.ForwardHeaders)
	}
}

func TestDecode_ProviderStripsSingleLeadingAt(t *testing.T) {
	got := Decode("x-portkey-provider:@ant")
	if got.Mode != ModeProvider || got.Provider != "ant" {
		t.Fatalf("Decode() = %#v, want provider %q", got, "ant")
	}

	// Only one leading "@" is stripped on decode; the rest is taken literally.
	got = Decode("x-portkey-provider:bare")
	if got.Provider != "bare" {
		t.Fatalf("Decode() provider = %q, want %q", got.Provider, "bare")
	}
}

func TestDecode_LegacyHeuristicShortValueIsConfig(t *testing.T) {
	got := Decode("x-portkey-config:pc-99")
	if got.Mode != ModeConfig || got.ConfigID != "pc-99" {
		t.Fatalf("Decode() = %#v, want config pc-99", got)
	}
}

func TestDecode_LegacyHeuristicPrefixBeatsLength(t *testing.T) {
	id := configIDPrefix + strings.Repeat("a", 64)
	got := Decode("x-portkey-config:" + id)
	if got.Mode != ModeConfig || got.ConfigID != id {
		t.Fatalf("Decode() = %#v, want long prefixed config id", got)
	}
}

func TestDecode_LegacyHeuristicLongValueIsOauthPayload(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(`{"forward_headers":["authorization"]}`))
	got := Decode("x-portkey-config:" + payload)
	if got.Mode != ModeOauth {
		t.Fatalf("Decode() mode = %q, want oauth for untagged long payload", got.Mode)
	}
	if want := []string{"authorization"}; !reflect.DeepEqual(got.ForwardHeaders, want) {
		t.Fatalf("Decode() forward headers = %v, want %v", got.ForwardHeaders, want)
	}
}

func TestDecode_ModeTokenBeatsHeuristic(t *testing.T) {
	// Long, non-prefixed ID that the heuristic would misclassify as a payload.
	id := "team-production-fallback-config-2026"
	got := Decode("x-portkey-config:" + id + "\nx-portkey-mode:config")
	if got.Mode != ModeConfig || got.ConfigID != id {
		t.Fatalf("Decode() = %#v, want tagged config id %q", got, id)
	}
}

func TestDecode_MalformedOauthPayloadDegradesToUnknown(t *testing.T) {
	for _, line := range []string{
		"x-portkey-config:!!!not-base64!!!\nx-portkey-mode:oauth",
		"x-portkey-config:" + base64.StdEncoding.EncodeToString([]byte("not json")) + "\nx-portkey-mode:oauth",
	} {
		if got := Decode(line); got.Mode != ModeUnknown {
			t.Fatalf("Decode(%q) mode = %q, want unknown", line, got.Mode)
		}
	}
}

func TestDecode_NoRoutingTokens(t *testing.T) {
	for _, line := range []string{"", "anthropic-beta:output-128k", "garbage"} {
		if got := Decode(line); got.Mode != ModeUnknown {
			t.Fatalf("Decode(%q) mode = %q, want unknown", line, got.Mode)
		}
	}
}

func TestNormalizeProviderSlug_Idempotent(t *testing.T) {
	for _, slug := range []string{"anthropic", "@anthropic", "@@@vertex", " @openai "} {
		once := NormalizeProviderSlug(slug)
		if twice := NormalizeProviderSlug(once); twice != once {
			t.Fatalf("NormalizeProviderSlug(%q) not idempotent: %q then %q", slug, once, twice)
		}
		if strings.HasPrefix(once, "@") {
			t.Fatalf("NormalizeProviderSlug(%q) = %q still has a leading @", slug, once)
		}
	}
}
