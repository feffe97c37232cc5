// Package middleware provides HTTP middleware for the API.
//
// Middlewares compose with Chain and run in the order given:
//
//	handler = middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//		middleware.CORS(origins),
//		middleware.Compress,
//	)
//
// Authentication is split in two: Auth validates the bearer token and puts
// the claims in the request context, RequireRole gates on the role carried
// by those claims. A request that never authenticated gets 401 from Auth; an
// authenticated request with the wrong role gets 403 from RequireRole.
package middleware
