// Package config loads deploy-time settings from environment variables into
// tagged Go structs.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each parsed
// configuration type for the lifetime of the process.
//
// # Usage
//
//	var smCfg statemachine.Config
//	config.MustLoad(&smCfg)
//
//	machine := statemachine.MustNew(getState, setState,
//	    statemachine.WithConfig(smCfg),
//	)
//
// Storage backends expose their own tagged structs (history.RedisConfig,
// history.PostgresConfig) that are loaded the same way.
//
// ResetCache forces the next Load to parse the environment again, which is
// what tests use after t.Setenv.
package config
