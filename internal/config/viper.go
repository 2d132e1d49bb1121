package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers the CLI flags that populate a Config and binds them
// into v, following the defaults table in spec §6.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) {
	d := defaultConfig()

	fs.String("array-size", "10240", "number of records to generate (accepts K/M suffix)")
	fs.Int("payload-size", d.PayloadSize, "bytes per record payload")
	fs.Int("base-case-size", d.BaseCaseSize, "leaf sort range length (0 derives ceil(N/P))")
	fs.Int("workers", d.Workers, "per-node worker count")
	fs.Int64("seed", d.Seed, "deterministic generator seed")

	_ = v.BindPFlag("array_size_raw", fs.Lookup("array-size"))
	_ = v.BindPFlag("payload_size", fs.Lookup("payload-size"))
	_ = v.BindPFlag("base_case_size", fs.Lookup("base-case-size"))
	_ = v.BindPFlag("workers", fs.Lookup("workers"))
	_ = v.BindPFlag("seed", fs.Lookup("seed"))
}

// Load builds a validated Config from v, parsing the array-size K/M
// suffix via ParseSize.
func Load(v *viper.Viper) (Config, error) {
	cfg := defaultConfig()

	raw := v.GetString("array_size_raw")
	if raw != "" {
		n, err := ParseSize(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.ArraySize = n
	}
	if v.IsSet("payload_size") {
		cfg.PayloadSize = v.GetInt("payload_size")
	}
	if v.IsSet("base_case_size") {
		cfg.BaseCaseSize = v.GetInt("base_case_size")
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if v.IsSet("seed") {
		cfg.Seed = v.GetInt64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
