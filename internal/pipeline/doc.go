// Package pipeline runs a full allocation: it allocates the large and small
// pools independently, encodes the bouquets, and reports diagnostics through
// the structured logger.
package pipeline
