// Package clientip extracts the originating client IP from HTTP requests,
// honoring the common reverse-proxy headers before falling back to the
// connection's remote address.
//
// Mount the middleware once and read the IP anywhere downstream:
//
//	r.Use(clientip.Middleware)
//	...
//	ip := clientip.GetIPFromContext(r.Context())
package clientip
