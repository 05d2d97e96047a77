// Package logging builds the zap logger shared by the CLI and the HTTP API.
package logging
