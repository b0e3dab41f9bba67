package config

// VariableName is one of the recognized gateway variables. The catalogue is
// closed: the resolver ignores names outside it.
type VariableName string

const (
	// VarBaseURL points the agent CLI at the gateway instead of the upstream API.
	VarBaseURL VariableName = "ANTHROPIC_BASE_URL"
	// VarAuthToken carries the gateway API key as the CLI's bearer token.
	VarAuthToken VariableName = "ANTHROPIC_AUTH_TOKEN"
	// VarAPIKey is the plain upstream API key, honored when set explicitly.
	VarAPIKey VariableName = "ANTHROPIC_API_KEY"
	// VarCustomHeaders carries the serialized routing header line.
	VarCustomHeaders VariableName = "ANTHROPIC_CUSTOM_HEADERS"
	// VarModel overrides the CLI's primary model.
	VarModel VariableName = "ANTHROPIC_MODEL"
	// VarSmallFastModel overrides the CLI's background model.
	VarSmallFastModel VariableName = "ANTHROPIC_SMALL_FAST_MODEL"
	// VarSkipBedrockAuth disables Bedrock credential lookup for pass-through routing.
	VarSkipBedrockAuth VariableName = "CLAUDE_CODE_SKIP_BEDROCK_AUTH"
	// VarSkipVertexAuth disables Vertex credential lookup for pass-through routing.
	VarSkipVertexAuth VariableName = "CLAUDE_CODE_SKIP_VERTEX_AUTH"
)

// Catalogue returns every recognized variable in display order.
func Catalogue() []VariableName {
	return []VariableName{
		VarBaseURL,
		VarAuthToken,
		VarAPIKey,
		VarCustomHeaders,
		VarModel,
		VarSmallFastModel,
		VarSkipBedrockAuth,
		VarSkipVertexAuth,
	}
}

// IsRecognized reports whether name is part of the closed catalogue.
func IsRecognized(name VariableName) bool {
	switch name {
	case VarBaseURL, VarAuthToken, VarAPIKey, VarCustomHeaders,
		VarModel, VarSmallFastModel, VarSkipBedrockAuth, VarSkipVertexAuth:
		return true
	default:
		return false
	}
}

// Secret reports whether a variable's value should be masked when displayed.
func (name VariableName) Secret() bool {
	return name == VarAuthToken || name == VarAPIKey
}
