// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, environment variables, an optional
// config file). The Gemini API key is the one setting without a default:
// when it is missing, Load fails and the application must not start.
package config
