package version

import (
	"context"
	"fmt"
	"time"

	"github.com/lectio-cli/lectio/color"
	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/icon"
	"github.com/lectio-cli/lectio/key"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/style"
	"github.com/lectio-cli/lectio/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release is published. Lookup failures are only logged.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.WithFields(log.Fields{"url": ReleasesURL}).WithError(err).Debug("version check failed")
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/lectio-cli/lectio/releases/tag/v"+latest),
	)
}
