package httpapi

import "github.com/gin-gonic/gin"

// Register wires HTTP routes to handlers.
// Keep this file free of business logic.
func Register(r *gin.Engine, h Handlers) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(h.NotFound)
	r.NoMethod(h.MethodNotAllowed)

	api := r.Group("/api")
	api.GET("/health", h.Health)

	calling := api.Group("/calling")
	{
		calling.POST("/token", h.CreateToken)

		// Provider webhooks (public).
		// NOTE: these should be protected by Twilio signature validation
		// in production.
		calling.POST("/voice", h.Voice)
		calling.POST("/call-status", h.CallStatus)

		calling.GET("/config", h.GetConfig)
	}
}
