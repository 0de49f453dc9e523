// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation protecting every route registered after it.
//   - rayid: a request id (RayID) stored in the context and echoed in the
//     response headers for log correlation.
package middleware
