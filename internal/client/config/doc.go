// Package config loads runtime configuration for the gophfav CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server HTTP API
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_addr": "http://127.0.0.1:8080",
//	  "request_timeout": "10s"
//	}
package config
