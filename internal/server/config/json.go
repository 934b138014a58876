package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophfav/internal/flagx"
	"github.com/dmitrijs2005/gophfav/internal/timex"
)

// JsonConfig is the on-disk representation of Config. Pointer fields let a
// file override only what it mentions; durations use timex.Duration so both
// "24h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	Storage                     *string         `json:"storage"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	MongoURI                    *string         `json:"mongo_uri"`
	MongoDatabase               *string         `json:"mongo_database"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	FavouritesLimit             *int            `json:"favourites_limit"`
	LogBackend                  *string         `json:"log_backend"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Nothing happens when no file is given. An unreadable file or invalid JSON
// panics, since the server cannot start with a broken configuration.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.Storage, c.Storage)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.FavouritesLimit != nil {
		config.FavouritesLimit = *c.FavouritesLimit
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
