// Package storage keeps the design catalogue served by the HTTP API.
package storage
