package cmd

import "github.com/spf13/viper"

// viperGetInt/String/Bool read a Viper key already populated by
// initConfig's default/file/env layering; fallback is used only if the
// key was never set (keeps callers resilient to tests that skip
// initConfig).
func viperGetInt(key string, fallback int) int {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetInt(key)
}

func viperGetString(key string, fallback string) string {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetString(key)
}

func viperGetBool(key string, fallback bool) bool {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetBool(key)
}
