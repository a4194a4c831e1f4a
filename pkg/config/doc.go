// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration is declared with caarlos0/env struct tags:
//
//	type EmailConfig struct {
//		SenderEmail string `env:"SENDER_EMAIL,required"`
//		ReplyEmail  string `env:"REPLY_EMAIL"`
//	}
//
// Load caches parsed values per type, so the same struct type can be loaded
// from several places without re-reading the environment. MustLoad panics on
// failure and is meant for startup-critical configuration.
package config
