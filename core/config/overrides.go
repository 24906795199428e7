package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. APPROUTE_WATCH_DEBOUNCE.
const EnvPrefix = "APPROUTE"

// Override keys, named after their yaml paths.
const (
	KeyPrivatePrefix = "private_prefix"
	KeyDebounce      = "watch.debounce"
	KeyVCS           = "watch.vcs"
	KeySampleLimit   = "create.sample_limit"
	KeyDefaultMethod = "create.default_method"
)

// NewViper returns a viper instance reading APPROUTE_* environment variables
// for every override key. Callers bind CLI flags onto the same keys.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{KeyPrivatePrefix, KeyDebounce, KeyVCS, KeySampleLimit, KeyDefaultMethod} {
		v.BindEnv(key)
	}
	return v
}

// ApplyOverrides copies every key set in v onto cfg and validates the result.
func ApplyOverrides(cfg *Config, v *viper.Viper) error {
	if v.IsSet(KeyPrivatePrefix) {
		cfg.PrivatePrefix = v.GetString(KeyPrivatePrefix)
	}
	if v.IsSet(KeyDebounce) {
		cfg.Watch.Debounce = v.GetDuration(KeyDebounce)
	}
	if v.IsSet(KeyVCS) {
		cfg.Watch.VCS = v.GetBool(KeyVCS)
	}
	if v.IsSet(KeySampleLimit) {
		cfg.Create.SampleLimit = v.GetInt(KeySampleLimit)
	}
	if v.IsSet(KeyDefaultMethod) {
		cfg.Create.DefaultMethod = strings.ToUpper(v.GetString(KeyDefaultMethod))
	}
	return cfg.Validate()
}
