// Package config implements the layered configuration model used to decide
// which value of a gateway variable the agent CLI will actually see. Five
// layers are consulted: managed enterprise settings, the user's global
// settings file, the project's shared and local settings files, and the
// process environment. The reader collects per-layer values and the resolver
// picks a single winner by a fixed precedence order, flagging every variable
// that is defined in more than one layer.
package config

import (
	"path/filepath"
	"runtime"
)

// Layer identifies one of the five configuration sources consulted for a
// variable's value.
type Layer string

const (
	// LayerEnterprise is the administrator-managed settings file.
	LayerEnterprise Layer = "enterprise"
	// LayerGlobal is the user's settings file, shared across all projects.
	LayerGlobal Layer = "global"
	// LayerProjectShared is the project settings file committed with the repo.
	LayerProjectShared Layer = "project-shared"
	// LayerProjectLocal is the personal, gitignored project settings file.
	LayerProjectLocal Layer = "project-local"
	// LayerShellEnv is the process environment snapshot.
	LayerShellEnv Layer = "shell-env"
)

// Precedence lists every layer, highest precedence first. Shell exports are
// the most explicit override a user can make; enterprise is an administrator
// mandate that beats individual choices but not an explicit shell export;
// project-local beats project-shared beats global because specificity wins.
var Precedence = []Layer{
	LayerShellEnv,
	LayerEnterprise,
	LayerProjectLocal,
	LayerProjectShared,
	LayerGlobal,
}

// Valid reports whether l is one of the five known layers.
func (l Layer) Valid() bool {
	switch l {
	case LayerEnterprise, LayerGlobal, LayerProjectShared, LayerProjectLocal, LayerShellEnv:
		return true
	default:
		return false
	}
}

// Locations holds the resolved settings-file path for each file-backed layer
// for one resolution pass. An empty path means the layer has no backing
// location (a valid state, not an error).
type Locations struct {
	Enterprise    string
	Global        string
	ProjectShared string
	ProjectLocal  string
}

// Path returns the backing location for a file-backed layer. LayerShellEnv
// has no path.
func (loc Locations) Path(layer Layer) string {
	switch layer {
	case LayerEnterprise:
		return loc.Enterprise
	case LayerGlobal:
		return loc.Global
	case LayerProjectShared:
		return loc.ProjectShared
	case LayerProjectLocal:
		return loc.ProjectLocal
	default:
		return ""
	}
}

// EnterpriseSettingsCandidates returns the ordered, platform-dependent search
// list for the managed settings file. The first existing candidate wins.
func EnterpriseSettingsCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"/Library/Application Support/ClaudeCode/managed-settings.json"}
	case "windows":
		return []string{`C:\ProgramData\ClaudeCode\managed-settings.json`}
	default:
		return []string{
			"/etc/claude-code/managed-settings.json",
			"/etc/claude/managed-settings.json",
		}
	}
}

// ResolveLocations derives the per-layer settings paths for one resolution
// pass. projectRoot may be empty when no project root was discovered, in
// which case the two project layers get no backing location. The exists
// probe is injected so callers (and tests) control filesystem access.
func ResolveLocations(home, projectRoot string, enterpriseCandidates []string, exists func(string) bool) Locations {
	loc := Locations{}
	for _, candidate := range enterpriseCandidates {
		if exists(candidate) {
			loc.Enterprise = candidate
			break
		}
	}
	if home != "" {
		loc.Global = filepath.Join(home, ".claude", "settings.json")
	}
	if projectRoot != "" {
		loc.ProjectShared = filepath.Join(projectRoot, ".claude", "settings.json")
		loc.ProjectLocal = filepath.Join(projectRoot, ".claude", "settings.local.json")
	}
	return loc
}

// DefaultEnterpriseSettingsCandidates returns the search list for the current
// platform.
func DefaultEnterpriseSettingsCandidates() []string {
	return EnterpriseSettingsCandidates(runtime.GOOS)
}
