// Package api holds the application state and the routes of registry-api.
//
// GET / proxies the upstream configuration document. Upstream statuses are
// mapped onto the error taxonomy of package errors:
//
//	2xx             body passed through
//	401             Unauthorized (401)
//	403             Forbidden (401)
//	404, no upstream NotFound (404)
//	anything else   Internal (500)
package api
