// Package icon renders status symbols in the variant the user picked.
//
// Symbols come as emoji, nerd-font glyphs, plain ASCII, kaomoji or Unicode squares.
package icon

import (
	"github.com/lectio-cli/lectio/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every supported variant name.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns i rendered in the configured variant, or an empty string for an unknown variant.
func Get(i Icon) string {
	return icons[i].Get()
}
