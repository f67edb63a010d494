package consts

import "time"

// Routes served by the site
const (
	// RouteHome is the site root where the homepage is mounted
	RouteHome = "/"
	// RouteDocumentationIntro is the first page of the documentation
	RouteDocumentationIntro = "/documentation/introduction"
	// RouteHealth reports liveness
	RouteHealth = "/health"
	// StaticStylesPrefix is where scoped stylesheets are served from
	StaticStylesPrefix = "/static/styles/"
)

// External destinations
const (
	// RepositoryURL is the vkrun source repository
	RepositoryURL = "https://github.com/vkrunjs/vkrun"
)

// Server defaults
const (
	// DefaultAddr is the listen address when none is configured
	DefaultAddr = ":8080"
	// DefaultReadTimeout is the default HTTP read timeout
	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout is the default HTTP write timeout
	DefaultWriteTimeout = 15 * time.Second
	// DefaultIdleTimeout is the default keep-alive timeout
	DefaultIdleTimeout = 60 * time.Second
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 5 * time.Second
)
