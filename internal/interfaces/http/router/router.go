package router

import "github.com/gin-gonic/gin"

// RouteRegistrar is implemented by every HTTP handler; each one mounts its
// own routes on the group it receives.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects handlers and mounts them under a versioned /api prefix.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// NewRouter creates a Router serving under /api/v1.
func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		engine:     engine,
		apiVersion: "v1",
	}
}

// APIVersion overrides the default v1 path segment.
func (r *Router) APIVersion(version string) *Router {
	r.apiVersion = version
	return r
}

// Register queues handlers for Setup.
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registered handler.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
