// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds gateway configuration. Values come from an optional TOML
// file with environment variables taking precedence, so container
// deployments can run without a file at all.
type Config struct {
	ListenAddr     string   `toml:"listen_addr"`
	DatabaseURL    string   `toml:"database_url"`
	RedisURL       string   `toml:"redis_url"`
	UploadDir      string   `toml:"upload_dir"`
	AllowedOrigins []string `toml:"allowed_origins"`
	Dev            bool     `toml:"dev"`
}

func Default() *Config {
	return &Config{
		ListenAddr:  ":3001",
		DatabaseURL: "postgres://localhost/eternity_chat?sslmode=disable",
		RedisURL:    "localhost:6379",
		UploadDir:   "uploads",
		AllowedOrigins: []string{
			"http://localhost:3000",
		},
	}
}

// Load reads config from path (if non-empty) and applies environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("DEV_MODE"); v == "1" || v == "true" {
		cfg.Dev = true
	}

	return cfg, nil
}
