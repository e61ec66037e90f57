// Package config loads runtime configuration for the opo console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (a .env file is loaded by main).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the API
//	-t int      request timeout (seconds)
//	-s string   path of the credential store
//
// Environment
//
//	OPO_API_BASE_URL, OPO_REQUEST_TIMEOUT ("10s"), OPO_STORE_PATH, OPO_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "request_timeout": "10s",
//	  "store_path": "/var/lib/opo/session.db",
//	  "log_level": "debug"
//	}
package config
