// Package servers implements the game server registry.
//
// A server record names the modpack installed on a game server and points at
// two manifest objects: the live manifest describing what is on disk and the
// target manifest of the version it should run. The compare feature reads
// these keys to plan updates; this package only stores them.
//
// # HTTP Endpoints
//
//   - GET /servers : List servers.
//   - GET /servers/:id : Get one server.
//   - PUT /servers/:id : Create or replace a server.
package servers
