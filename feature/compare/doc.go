// Package compare exposes the diff engine over stored manifests, local
// directories and registered servers.
//
// Planning a server update compares its live manifest (left, treated as the
// customized side) with its target manifest (right). The single diff yields
// both the change list that brings the server to the target and the report
// of user files that the update must preserve or reconcile.
//
// # HTTP Endpoints
//
//   - GET /compare/manifests?left=&right=[&custom=true] : Compare two stored manifests.
//   - GET /compare/servers/:id : Plan the update of a registered server.
package compare
