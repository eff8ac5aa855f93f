package config

import (
	"encoding/json"
	"os"
	"time"

	"fintrack/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// is a time.ParseDuration string ("10s", "1m"); parsed values are copied
// into the runtime Config.
type JsonConfig struct {
	ServerURL      string `json:"server_url"`
	DatabaseFile   string `json:"database_file"`
	RequestTimeout string `json:"request_timeout"`
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabaseFile != "" {
		cfg.DatabaseFile = jc.DatabaseFile
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
