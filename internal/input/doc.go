// Package input acquires raw input lines from a file or a stream and splits
// them into per-size pools of designs and flower stock.
package input
