package cmd

import "github.com/hpcsort/mergesort/internal/config"

func loadConfigFromViper() (config.Config, error) {
	return config.Load(v)
}
