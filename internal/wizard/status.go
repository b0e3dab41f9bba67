package wizard

import (
	"fmt"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"

	"github.com/portkey-ai/gateway-setup/internal/config"
)

// Status prints the resolution table: every gateway variable any layer
// defines, the winning layer, conflict markers, and the decoded routing
// intent. With CopyHeader set, the winning header line also lands on the
// clipboard.
func Status(opts Options) error {
	opts.normalize()

	env, err := discoverEnvironment()
	if err != nil {
		return err
	}

	resolved := config.ResolveAll(env.reader)
	intent := existingIntent(resolved)
	fmt.Fprint(opts.Out, renderStatus(resolved, intent))

	if !opts.CopyHeader {
		return nil
	}
	for _, v := range resolved {
		if v.Name != config.VarCustomHeaders || !v.Present() {
			continue
		}
		if err = clipboard.WriteAll(v.Value); err != nil || clipboard.Unsupported {
			log.WithError(err).Debug("clipboard write failed")
			return fmt.Errorf("clipboard unavailable")
		}
		fmt.Fprintln(opts.Out, okStyle.Render("✓")+" routing header copied")
		return nil
	}
	return fmt.Errorf("no routing header set in any layer")
}
