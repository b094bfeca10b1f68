package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagBindings ties command-line flags to config paths.
type FlagBindings struct {
	fs   *pflag.FlagSet
	keys map[string]string
}

// BindFlags associates flags of fs with config paths, keyed by flag name.
// Call it before fs.Parse; LoadConfig reads the parsed values.
func BindFlags(fs *pflag.FlagSet, keys map[string]string) *FlagBindings {
	return &FlagBindings{fs: fs, keys: keys}
}

// FlagSet returns the bound flag set.
func (b *FlagBindings) FlagSet() *pflag.FlagSet { return b.fs }

// apply overrides config values with flags that were set explicitly.
// Unset flags keep their defaults out of the way of file and env values.
func (b *FlagBindings) apply(v *viper.Viper) {
	for name, key := range b.keys {
		f := b.fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		v.Set(key, f.Value.String())
	}
}
