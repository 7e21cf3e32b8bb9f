// Package requestid provides correlation ID middleware for request tracing
// across services, with optional access logging of request metrics.
package requestid
