// Package wizard drives the setup flow: inspect the current layered
// configuration, let the user choose a routing intent and a write target,
// and apply the resulting variable set through the settings or shell-profile
// writers.
package wizard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"

	"github.com/portkey-ai/gateway-setup/internal/config"
	"github.com/portkey-ai/gateway-setup/internal/gateway"
	"github.com/portkey-ai/gateway-setup/internal/routing"
	"github.com/portkey-ai/gateway-setup/internal/settings"
	"github.com/portkey-ai/gateway-setup/internal/shellenv"
)

// Target names a place the composed variables can be written to.
type Target string

const (
	// TargetGlobal writes the user's global settings file.
	TargetGlobal Target = "global"
	// TargetProjectShared writes the project settings file committed with the repo.
	TargetProjectShared Target = "project"
	// TargetProjectLocal writes the personal, gitignored project settings file.
	TargetProjectLocal Target = "project-local"
	// TargetShell writes an export block into the user's shell profile.
	TargetShell Target = "shell"
	// TargetEnvFile writes a dotenv file for the user to source themselves.
	TargetEnvFile Target = "env-file"
)

// dashboardKeysURL is where users create a gateway API key.
const dashboardKeysURL = "https://app.portkey.ai/api-keys"

// defaultForwardHeaders are the request headers forwarded upstream in
// pass-through mode when the user does not name their own set.
var defaultForwardHeaders = []string{"authorization", "anthropic-beta", "anthropic-version"}

// Options carries flag values and streams into the flow. Zero values mean
// "ask" (interactive) or "use the default" (with Yes set).
type Options struct {
	Yes            bool
	APIKey         string
	Provider       string
	ConfigID       string
	Passthrough    bool
	ForwardHeaders []string
	Model          string
	SmallFastModel string
	GatewayURL     string
	ControlURL     string
	Target         string
	EnvFile        string
	CopyHeader     bool
	NoBrowser      bool

	In  io.Reader
	Out io.Writer
}

func (o *Options) normalize() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.GatewayURL == "" {
		o.GatewayURL = gateway.DefaultBaseURL
	}
	if o.ControlURL == "" {
		o.ControlURL = o.GatewayURL
	}
}

// environment is everything one resolution pass needs, discovered once up
// front: locations, snapshot, and a reader over both.
type environment struct {
	home      string
	cwd       string
	root      string
	hasRoot   bool
	locations config.Locations
	snapshot  map[string]string
	reader    *config.Reader
}

func discoverEnvironment() (environment, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return environment{}, fmt.Errorf("locate home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return environment{}, fmt.Errorf("locate working directory: %w", err)
	}

	env := environment{home: home, cwd: cwd}
	env.root, env.hasRoot = config.DiscoverProjectRoot(cwd, home)
	env.locations = config.ResolveLocations(home, env.root, config.DefaultEnterpriseSettingsCandidates(), func(path string) bool {
		_, statErr := os.Stat(path)
		return statErr == nil
	})
	env.snapshot = shellenv.Snapshot()
	env.reader = config.NewReader(env.locations, env.snapshot, settings.ReadDocument)
	return env, nil
}

// Run executes the setup flow.
func Run(ctx context.Context, opts Options) error {
	opts.normalize()
	prompter := NewPrompter(opts.In, opts.Out, opts.Yes)

	env, err := discoverEnvironment()
	if err != nil {
		return err
	}

	resolved := config.ResolveAll(env.reader)
	existing := existingIntent(resolved)
	fmt.Fprint(opts.Out, renderStatus(resolved, existing))
	fmt.Fprintln(opts.Out)

	apiKey, err := resolveAPIKey(prompter, opts, resolved)
	if err != nil {
		return err
	}

	intent, err := chooseIntent(ctx, prompter, opts, apiKey, existing)
	if err != nil {
		return err
	}

	headerLine, err := routing.Encode(intent, apiKey)
	if err != nil {
		return err
	}

	values, err := composeValues(prompter, opts, intent, apiKey, headerLine)
	if err != nil {
		return err
	}

	target, err := chooseTarget(prompter, opts, env)
	if err != nil {
		return err
	}

	destination, err := apply(opts, env, target, values)
	if err != nil {
		return err
	}

	fmt.Fprintln(opts.Out)
	fmt.Fprint(opts.Out, renderApplied(destination, values))
	if target == TargetShell {
		fmt.Fprintln(opts.Out, dimStyle.Render("  restart your shell or source the profile to pick the exports up"))
	}

	offerClipboard(prompter, opts, headerLine)
	return nil
}

// existingIntent decodes whatever routing line currently wins resolution.
func existingIntent(resolved []config.ResolvedVariable) routing.Intent {
	for _, v := range resolved {
		if v.Name == config.VarCustomHeaders && v.Present() {
			return routing.Decode(v.Value)
		}
	}
	return routing.Intent{Mode: routing.ModeUnknown}
}

// resolveAPIKey finds a gateway API key: the flag wins, then whatever auth
// token already resolves, then a prompt (with an offer to open the dashboard
// when the user has no key yet).
func resolveAPIKey(prompter *Prompter, opts Options, resolved []config.ResolvedVariable) (string, error) {
	if key := strings.TrimSpace(opts.APIKey); key != "" {
		return key, nil
	}
	def := ""
	for _, v := range resolved {
		if v.Name == config.VarAuthToken && v.Present() {
			def = v.Value
			break
		}
	}
	if def == "" && !opts.Yes && !opts.NoBrowser {
		openIt, err := prompter.Confirm("No gateway API key found. Open the dashboard to create one?", false)
		if err != nil {
			return "", err
		}
		if openIt {
			if err = open.Run(dashboardKeysURL); err != nil {
				log.WithError(err).Warn("could not open browser")
				fmt.Fprintln(opts.Out, dimStyle.Render("  create a key at "+dashboardKeysURL))
			}
		}
	}
	return prompter.Ask("Gateway API key", def)
}

// chooseIntent picks the routing intent from flags, or interactively with the
// provider/config catalog when the gateway is reachable.
func chooseIntent(ctx context.Context, prompter *Prompter, opts Options, apiKey string, existing routing.Intent) (routing.Intent, error) {
	switch {
	case opts.Provider != "":
		return routing.ProviderIntent(opts.Provider), nil
	case opts.ConfigID != "":
		return routing.ConfigIntent(opts.ConfigID), nil
	case opts.Passthrough:
		return routing.OauthIntent(forwardHeadersOrDefault(opts.ForwardHeaders)), nil
	}

	modes := []string{
		"Route to one provider",
		"Apply a gateway config",
		"Pass your existing subscription through (requests logged)",
	}
	def := 0
	switch existing.Mode {
	case routing.ModeConfig:
		def = 1
	case routing.ModeOauth:
		def = 2
	}
	choice, err := prompter.Select("How should requests route through the gateway?", modes, def)
	if err != nil {
		return routing.Intent{}, err
	}

	client := gateway.NewClient(apiKey, gateway.WithBaseURL(opts.ControlURL))
	switch choice {
	case 0:
		return chooseProvider(ctx, prompter, opts, client, existing)
	case 1:
		return chooseConfig(ctx, prompter, opts, client, existing)
	default:
		return routing.OauthIntent(forwardHeadersOrDefault(opts.ForwardHeaders)), nil
	}
}

func chooseProvider(ctx context.Context, prompter *Prompter, opts Options, client *gateway.Client, existing routing.Intent) (routing.Intent, error) {
	var providers []gateway.Provider
	err := runWithSpinner(opts.Out, "fetching providers", func() error {
		var fetchErr error
		providers, fetchErr = client.ListProviders(ctx)
		return fetchErr
	})
	if err != nil {
		log.WithError(err).Debug("provider catalog unavailable, falling back to free text")
	}

	if len(providers) == 0 {
		slug, askErr := prompter.Ask("Provider slug", existing.Provider)
		if askErr != nil {
			return routing.Intent{}, askErr
		}
		return routing.ProviderIntent(slug), nil
	}

	options := make([]string, len(providers))
	def := 0
	for i, p := range providers {
		options[i] = fmt.Sprintf("@%s %s", routing.NormalizeProviderSlug(p.Slug), dimStyle.Render(p.Name))
		if routing.NormalizeProviderSlug(p.Slug) == existing.Provider {
			def = i
		}
	}
	choice, err := prompter.Select("Provider", options, def)
	if err != nil {
		return routing.Intent{}, err
	}
	return routing.ProviderIntent(providers[choice].Slug), nil
}

func chooseConfig(ctx context.Context, prompter *Prompter, opts Options, client *gateway.Client, existing routing.Intent) (routing.Intent, error) {
	var configs []gateway.Config
	err := runWithSpinner(opts.Out, "fetching configs", func() error {
		var fetchErr error
		configs, fetchErr = client.ListConfigs(ctx)
		return fetchErr
	})
	if err != nil {
		log.WithError(err).Debug("config catalog unavailable, falling back to free text")
	}

	if len(configs) == 0 {
		id, askErr := prompter.Ask("Config ID", existing.ConfigID)
		if askErr != nil {
			return routing.Intent{}, askErr
		}
		return routing.ConfigIntent(id), nil
	}

	options := make([]string, len(configs))
	def := 0
	for i, c := range configs {
		options[i] = fmt.Sprintf("%s %s", c.ID, dimStyle.Render(c.Name))
		if c.ID == existing.ConfigID {
			def = i
		}
	}
	choice, err := prompter.Select("Gateway config", options, def)
	if err != nil {
		return routing.Intent{}, err
	}
	return routing.ConfigIntent(configs[choice].ID), nil
}

func forwardHeadersOrDefault(headers []string) []string {
	cleaned := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	if len(cleaned) == 0 {
		return defaultForwardHeaders
	}
	return cleaned
}

// composeValues builds the variable set a target will receive.
func composeValues(prompter *Prompter, opts Options, intent routing.Intent, apiKey, headerLine string) (map[string]string, error) {
	values := map[string]string{
		string(config.VarBaseURL):       strings.TrimRight(opts.GatewayURL, "/"),
		string(config.VarCustomHeaders): headerLine,
	}
	if intent.Mode == routing.ModeOauth {
		// The CLI keeps using its own subscription auth; the skip flags stop
		// it from reaching for cloud-provider credentials instead.
		values[string(config.VarSkipBedrockAuth)] = "1"
		values[string(config.VarSkipVertexAuth)] = "1"
	} else {
		values[string(config.VarAuthToken)] = apiKey
	}

	model := opts.Model
	if model == "" && !opts.Yes {
		answer, err := prompter.Ask("Model override (blank to keep the CLI default)", "-")
		if err != nil {
			return nil, err
		}
		if answer != "-" {
			model = answer
		}
	}
	if model != "" {
		values[string(config.VarModel)] = model
	}
	if opts.SmallFastModel != "" {
		values[string(config.VarSmallFastModel)] = opts.SmallFastModel
	}
	return values, nil
}

// chooseTarget decides where the values go. Project targets require a
// discovered project root.
func chooseTarget(prompter *Prompter, opts Options, env environment) (Target, error) {
	if opts.Target != "" {
		target := Target(opts.Target)
		switch target {
		case TargetGlobal, TargetShell, TargetEnvFile:
			return target, nil
		case TargetProjectShared, TargetProjectLocal:
			if !env.hasRoot {
				return "", fmt.Errorf("target %q needs a project root, none found above %s", target, env.cwd)
			}
			return target, nil
		default:
			return "", fmt.Errorf("unknown target %q", opts.Target)
		}
	}

	options := []string{
		fmt.Sprintf("Global settings %s", dimStyle.Render(env.locations.Global)),
		fmt.Sprintf("Shell profile %s", dimStyle.Render(shellenv.ProfilePath(shellenv.DetectShell(env.snapshot), env.home))),
		"Env file (write portkey.env, source it yourself)",
	}
	targets := []Target{TargetGlobal, TargetShell, TargetEnvFile}
	if env.hasRoot {
		options = append(options,
			fmt.Sprintf("Project settings, shared with the team %s", dimStyle.Render(env.locations.ProjectShared)),
			fmt.Sprintf("Project settings, just for you %s", dimStyle.Render(env.locations.ProjectLocal)),
		)
		targets = append(targets, TargetProjectShared, TargetProjectLocal)
	}

	choice, err := prompter.Select("Where should this configuration live?", options, 0)
	if err != nil {
		return "", err
	}
	return targets[choice], nil
}

// apply writes the values to the chosen target and returns the destination
// path for the summary.
func apply(opts Options, env environment, target Target, values map[string]string) (string, error) {
	switch target {
	case TargetGlobal:
		return env.locations.Global, settings.WriteEnvValues(env.locations.Global, values)

	case TargetProjectShared:
		return env.locations.ProjectShared, settings.WriteEnvValues(env.locations.ProjectShared, values)

	case TargetProjectLocal:
		if err := settings.WriteEnvValues(env.locations.ProjectLocal, values); err != nil {
			return "", err
		}
		added, err := settings.EnsureLocalSettingsIgnored(env.root)
		if err != nil {
			log.WithError(err).Warn("could not update .gitignore")
		} else if added {
			fmt.Fprintln(opts.Out, dimStyle.Render("  added .claude/settings.local.json to .gitignore"))
		}
		return env.locations.ProjectLocal, nil

	case TargetShell:
		profile := shellenv.ProfilePath(shellenv.DetectShell(env.snapshot), env.home)
		return profile, shellenv.AppendExports(profile, values)

	case TargetEnvFile:
		path := opts.EnvFile
		if path == "" {
			path = "portkey.env"
		}
		return path, shellenv.WriteEnvFile(path, values)

	default:
		return "", fmt.Errorf("unknown target %q", target)
	}
}

// offerClipboard copies the header line for users who want to paste it into
// some other tool's configuration.
func offerClipboard(prompter *Prompter, opts Options, headerLine string) {
	want := opts.CopyHeader
	if !want && !opts.Yes {
		answer, err := prompter.Confirm("Copy the routing header to the clipboard?", false)
		if err != nil {
			return
		}
		want = answer
	}
	if !want {
		return
	}
	if err := clipboard.WriteAll(headerLine); err != nil || clipboard.Unsupported {
		if err != nil {
			log.WithError(err).Debug("clipboard write failed")
		}
		fmt.Fprintln(opts.Out, dimStyle.Render("  clipboard unavailable; header line:\n  "+strings.ReplaceAll(headerLine, "\n", "\n  ")))
		return
	}
	fmt.Fprintln(opts.Out, okStyle.Render("✓")+" routing header copied")
}
