// Package icon renders UI symbols in the variant chosen by the user.
package icon

import (
	"github.com/bedtime-cli/bedtime/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

var variants = []string{plain, emoji, nerd, kaomoji, squares}

// AvailableVariants lists the accepted values of icons.variant, plain first.
func AvailableVariants() []string {
	return append([]string(nil), variants...)
}

// ValidVariant reports whether v names a known variant.
func ValidVariant(v string) bool {
	return lo.Contains(variants, v)
}

// iconDef maps a variant to its rendering.
type iconDef map[string]string

// Get renders i in the configured variant. Unknown variants render as plain.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	if s, ok := def[viper.GetString(key.IconsVariant)]; ok {
		return s
	}
	return def[plain]
}
