package routes

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"fundpitch-backend/shared/config"

	"github.com/gin-gonic/gin"
)

// getServiceURLs returns service URLs from configuration
func getServiceURLs() map[string]string {
	cfg := config.GetConfig()
	return map[string]string{
		"auth":         cfg.AuthServiceURL,
		"core":         cfg.CoreServiceURL,
		"invite":       cfg.InviteServiceURL,
		"notification": cfg.NotificationServiceURL,
		"media":        cfg.MediaServiceURL,
	}
}

// ProxyToService handles requests and proxies them to the appropriate service
func ProxyToService(serviceName string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		serviceURLs := getServiceURLs()

		serviceURL, exists := serviceURLs[serviceName]
		if !exists {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found", "service": serviceName})
			return
		}

		target, err := url.Parse(serviceURL)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid service URL", "service": serviceName})
			return
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ServeHTTP(ctx.Writer, ctx.Request)
	}
}
