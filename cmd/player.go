package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/bedtime-cli/bedtime/catalog"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/mini"
	"github.com/bedtime-cli/bedtime/player"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/story"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/bedtime-cli/bedtime/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// listenOptions override the configured session for one run.
type listenOptions struct {
	ref     string
	plain   bool
	history bool

	sleep  mo.Option[int]
	volume mo.Option[float64]
	rate   mo.Option[float64]
	fade   mo.Option[bool]
}

// language prefers the --language flag over the user's preferences.
func language() string {
	if rootCmd.PersistentFlags().Changed("language") {
		return viper.GetString(key.CatalogLanguage)
	}
	return userPreferences().Language
}

// newBackend returns the configured audio backend.
func newBackend() (player.Backend, error) {
	switch name := viper.GetString(key.AudioBackend); name {
	case constant.BackendNative, "":
		return player.NewNative(), nil
	case constant.BackendMPV:
		mpv := player.NewMPV()
		if !mpv.Available() {
			printMissingDependencyError("mpv")
			return nil, fmt.Errorf("mpv is not installed")
		}
		mpv.Headers = map[string]string{"User-Agent": constant.UserAgent}
		return mpv, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", name)
	}
}

func newSession(o listenOptions) (*session.Session, error) {
	backend, err := newBackend()
	if err != nil {
		return nil, err
	}

	opts := session.FromConfig(userPreferences())
	if minutes, ok := o.sleep.Get(); ok {
		opts.SleepMinutes = minutes
	}
	if volume, ok := o.volume.Get(); ok {
		opts.Volume = mo.Some(volume)
	}
	if rate, ok := o.rate.Get(); ok {
		opts.Rate = mo.Some(rate)
	}
	if fade, ok := o.fade.Get(); ok {
		opts.FadeIn, opts.FadeOut = 0, 0
		if fade {
			opts.FadeIn = time.Duration(viper.GetInt(key.AudioFadeInMs)) * time.Millisecond
			opts.FadeOut = time.Duration(viper.GetInt(key.AudioFadeOutMs)) * time.Millisecond
		}
	}

	return session.New(player.NewController(backend), opts), nil
}

// listen starts the full screen player, or the line mode with plain.
func listen(ctx context.Context, o listenOptions) error {
	c, err := catalog.New()
	if err != nil {
		return err
	}

	var st *story.Story
	if o.ref != "" {
		if st, err = catalog.Find(ctx, c, o.ref, language()); err != nil {
			return err
		}
		if !st.HasAudio() {
			return fmt.Errorf("%s: %w", st.Title, session.ErrNoAudio)
		}
	}

	s, err := newSession(o)
	if err != nil {
		return err
	}
	defer s.Close()

	if o.plain {
		return mini.Run(ctx, &mini.Options{
			Catalog:  c,
			Session:  s,
			Language: language(),
			Story:    st,
			History:  o.history,
		})
	}

	return tui.Run(ctx, &tui.Options{
		Catalog:     c,
		Session:     s,
		Language:    language(),
		Preferences: userPreferences(),
		Story:       st,
		History:     o.history,
	})
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install " + dep
	case constant.Linux:
		installCmd = "sudo apt install " + dep
	case constant.Windows:
		installCmd = "scoop install " + dep
	}

	theme := style.Theme()
	box := style.Box(theme.Error).Margin(1, 0)

	title := style.New().Bold(true).Foreground(theme.Error).Render(fmt.Sprintf("%s Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(theme.Text).Render(fmt.Sprintf(
		"The %s audio backend needs '%s' in your PATH.\nSwitch back with: %s config set %s %s",
		dep, dep, constant.Bedtime, key.AudioBackend, constant.BackendNative,
	))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(theme.Accent).Bold(true).Render(installCmd))
	}

	_, _ = fmt.Fprintln(os.Stderr, box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			body,
			suggestion,
		),
	))
}
