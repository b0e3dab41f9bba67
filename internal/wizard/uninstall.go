package wizard

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/portkey-ai/gateway-setup/internal/config"
	"github.com/portkey-ai/gateway-setup/internal/settings"
	"github.com/portkey-ai/gateway-setup/internal/shellenv"
)

// Uninstall removes every catalogue variable from the writable layers: the
// global and project settings files, and the managed export block in each
// shell profile this tool could have written. The enterprise layer is
// administrator-owned and is left alone.
func Uninstall(opts Options) error {
	opts.normalize()
	prompter := NewPrompter(opts.In, opts.Out, opts.Yes)

	env, err := discoverEnvironment()
	if err != nil {
		return err
	}

	proceed, err := prompter.Confirm("Remove gateway routing from all writable configuration layers?", false)
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(opts.Out, dimStyle.Render("nothing removed"))
		return nil
	}

	names := make([]string, 0, len(config.Catalogue()))
	for _, name := range config.Catalogue() {
		names = append(names, string(name))
	}

	for _, path := range []string{env.locations.Global, env.locations.ProjectShared, env.locations.ProjectLocal} {
		if path == "" {
			continue
		}
		if err = settings.RemoveEnvValues(path, names); err != nil {
			return fmt.Errorf("clean %s: %w", path, err)
		}
	}

	for _, shell := range []string{"zsh", "bash", "fish", ""} {
		profile := shellenv.ProfilePath(shell, env.home)
		if err = shellenv.RemoveExports(profile); err != nil {
			log.WithError(err).WithField("profile", profile).Warn("could not clean shell profile")
		}
	}

	fmt.Fprintln(opts.Out, okStyle.Render("✓")+" gateway routing removed")

	// Shell exports in the current session outlive the profile edit; surface
	// anything that still resolves so the user is not surprised.
	leftover := config.ResolveAll(config.NewReader(env.locations, env.snapshot, settings.ReadDocument))
	for _, v := range leftover {
		if v.Present() && v.WinningLayer == config.LayerShellEnv {
			fmt.Fprintln(opts.Out, warnStyle.Render("⚠")+" "+string(v.Name)+" is still exported in this shell session")
		}
	}
	return nil
}
