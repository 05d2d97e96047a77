// Package api serves bouquet allocation over HTTP: the design catalogue,
// allocation runs, health and metrics, behind request ID, rate limit, access
// log, recovery and CORS middleware.
package api
