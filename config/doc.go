// Package config loads service configuration with viper.
//
// Load resolves a config.yml and an optional .env file from the usual
// locations, overlays environment variables onto nested keys, unmarshals
// into the target struct, then applies defaults and validates it when the
// struct implements Defaulter and Validator.
package config
