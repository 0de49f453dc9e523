// Package manifest builds, encodes and stores pack manifests.
//
// A manifest is a JSON array of records (path, name, sha1, size) describing a
// file tree without its bytes:
//
//	[
//	  {"path": "/mods/", "name": "jei.jar", "sha1": "4a1f...", "size": 1048576}
//	]
//
// Build generates one from a tree, Decode validates one at ingestion, Store
// keeps them in object storage and Cache avoids refetching distribution
// manifests shared by many servers.
package manifest
