package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/bedtime-cli/bedtime/color"
	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/bedtime-cli/bedtime/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a config key with its default value and help text.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the part of the key before the first dot, e.g. "audio".
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Bedtime + "_" + EnvKeyReplacer.Replace(f.Key))
}

func (f *Field) typeName() string {
	return reflect.TypeOf(f.Value).String()
}

// Pretty describes the field for the terminal.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(fieldTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"section":     f.Section(),
		"env":         f.Env(),
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.typeName(),
	})
}

var fields = []Field{
	{key.AudioVolume, constant.DefaultVolume, "Volume the narration starts at, from 0.0 (muted) to 1.0"},
	{key.AudioRate, constant.DefaultPlaybackRate, "Playback speed the narration starts at, from 0.5 to 2.0"},
	{key.AudioAutoPlay, true, "Start the narration as soon as its audio is loaded"},
	{key.AudioFadeIn, true, "Fade the narration in when playback starts"},
	{key.AudioFadeInMs, int(constant.DefaultFadeIn.Milliseconds()), "Fade in length in milliseconds"},
	{key.AudioFadeOutMs, int(constant.DefaultFadeOut.Milliseconds()), "Fade out length in milliseconds"},
	{key.AudioBackend, constant.BackendNative, "Audio backend, native or mpv (mpv must be installed)"},

	{key.SleepDefaultMinutes, constant.DefaultSleepTimer, "Sleep timer started with every story, in minutes. 0 turns it off"},
	{key.SleepFadeOut, true, "Fade the narration out when the sleep timer ends"},

	{key.CatalogSource, constant.CatalogMock, "Where stories come from, mock (built in) or remote"},
	{key.CatalogEndpoint, "", "Base URL of the remote catalog API"},
	{key.CatalogLanguage, constant.English, "Story language, one of en, pl, ru"},
	{key.CatalogTimeoutSeconds, 10, "Timeout of one catalog request in seconds"},
	{key.CatalogRetryAttempts, 3, "Attempts made for a failing catalog request"},
	{key.CatalogPageSize, 20, "Stories shown per page"},

	{key.HistorySaveOnListen, true, "Remember read and played stories"},
	{key.HistoryLimit, 50, "Stories kept in the history"},

	{key.OfflineMaxAudioMB, 50, "Largest narration that can be downloaded, in megabytes"},
	{key.OfflineMaxStorageMB, 500, "Disk space downloads may take, in megabytes"},

	{key.SearchShowQuerySuggestions, true, "Suggest earlier searches while typing"},
	{key.ReaderWidth, 80, "Line width of the reader. 0 uses the terminal width"},
	{key.IconsVariant, "plain", "Icons, one of plain, emoji, kaomoji, squares, nerd (needs a nerd font)"},

	{key.LogsWrite, false, "Write logs to the logs directory"},
	{key.LogsLevel, "info", "Lowest level logged, from panic to trace"},
	{key.LogsJson, false, "Write logs as JSON"},

	{key.CliColored, true, "Colored help output"},
	{key.CliVersionCheck, true, "Look for new releases"},
}

// Default maps every config key to its field.
var Default = make(map[string]Field, len(fields))

// EnvExposed are the keys that can be set through the environment.
var EnvExposed []string

func init() {
	for _, f := range fields {
		if _, ok := Default[f.Key]; ok {
			panic("config: duplicate key " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

func highlight(v any) string {
	switch v := v.(type) {
	case bool:
		return style.Fg(lo.Ternary(v, color.Green, color.Red))(fmt.Sprint(v))
	case string:
		if v == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(v)
	default:
		return style.Fg(color.Cyan)(fmt.Sprint(v))
	}
}

var fieldTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"purple":  style.Fg(color.Purple),
	"blue":    style.Fg(color.Blue),
	"hl":      highlight,
	"current": viper.Get,
}).Parse(`{{ bold (purple .Key) }} {{ faint (printf "%T" .Value) }}
{{ .Description }}
  {{ blue "current" }} {{ hl (current .Key) }}
  {{ blue "default" }} {{ hl .Value }}
  {{ blue "env" }}     {{ faint .Env }}`))
