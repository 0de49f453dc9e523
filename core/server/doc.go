// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the
// listen port, the API key guarding the routes and the graceful shutdown bound.
package server
