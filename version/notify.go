package version

import (
	"context"
	"fmt"
	"time"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/util"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

const checkTimeout = 3 * time.Second

// Notify prints a note when a newer release is out.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	erase := util.PrintErasable(icon.Get(icon.Progress) + " Looking for a new release...")
	release, err := Latest(ctx)
	erase()
	if err != nil {
		log.Warnf("version check: %v", err)
		return
	}

	if release.Newer() {
		fmt.Println()
		fmt.Println(announce(release))
		fmt.Println()
	}
}

func announce(r *Release) string {
	headline := fmt.Sprintf("%s %s is out", style.Fg(color.Moon)(icon.Get(icon.Moon)), style.Bold(constant.Bedtime+" "+r.Version))
	if !r.Published.IsZero() {
		headline += style.Faint(", released " + humanize.Time(r.Published))
	}
	return headline + "\n" + style.Faint(fmt.Sprintf("You have %s. %s", constant.Version, r.URL))
}
