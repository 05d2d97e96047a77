// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of storage, the allocation pipeline, handlers,
// routers, and HTTP server instances, and the one-shot batch run, keeping the
// main package focused on CLI parsing and orchestration.
package application
