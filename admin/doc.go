// Package admin serves a read-only HTTP view of a running beankit
// application.
//
// Routes:
//
//	GET /health        aggregated component health (503 when unhealthy)
//	GET /beans         live context beans in construction order
//	GET /beans/:type   one context bean by type name, e.g. /beans/app.Service
//
// Bean type names contain dots and may contain a leading "*", which can be
// omitted in the path.
package admin
