package config

import (
	"encoding/json"
	"os"
	"time"

	"fintrack/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are time.ParseDuration strings ("15m", "720h"); parsed values are
// copied into the runtime Config.
type JsonConfig struct {
	Addr                 string `json:"addr"`
	DatabaseFile         string `json:"database_file"`
	SecretKey            string `json:"secret_key"`
	AccessTokenValidity  string `json:"access_token_validity"`
	RefreshTokenValidity string `json:"refresh_token_validity"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Without the flag nothing is loaded. Read, unmarshal or
// duration-parse errors panic; config problems should stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidity != "" {
		d, err := time.ParseDuration(jc.AccessTokenValidity)
		if err != nil {
			panic(err)
		}
		cfg.AccessTokenValidity = d
	}
	if jc.RefreshTokenValidity != "" {
		d, err := time.ParseDuration(jc.RefreshTokenValidity)
		if err != nil {
			panic(err)
		}
		cfg.RefreshTokenValidity = d
	}
}
