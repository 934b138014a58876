package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-k string   storage backend: postgres, mongo or memory
//	-d string   PostgreSQL DSN
//	-m string   MongoDB URI
//	-b string   MongoDB database name
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes (0 disables expiry)
//	-l int      favourites limit per user
//	-g string   log backend: slog or logrus
//	-v string   log level: debug, info, warn or error
//
// Only these flags are looked at (see flagx.FilterArgs), so -c/-config and
// anything else on the command line is left for other parsers.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-d", "-m", "-b", "-s", "-t", "-l", "-g", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.Storage, "k", config.Storage, "storage backend (postgres, mongo, memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "b", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.IntVar(&config.FavouritesLimit, "l", config.FavouritesLimit, "favourites limit per user")
	fs.StringVar(&config.LogBackend, "g", config.LogBackend, "log backend (slog, logrus)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is in whole minutes; leave finer-grained values from other sources alone unless it was given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
