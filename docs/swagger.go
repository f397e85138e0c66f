// Package docs FundPitch API documentation
package docs

// Swagger documentation info
// @title FundPitch API
// @version 1.0
// @description Central API documentation - For all FundPitch microservices

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// Auth Service Endpoints
// @tag.name auth
// @tag.description OTP login, admin login and user-type change flow

// Core Service Endpoints
// @tag.name users
// @tag.description User directory
// @tag.name company
// @tag.description Company profiles and their child collections
// @tag.name individual
// @tag.description Individual profiles and showcase documents
// @tag.name profile
// @tag.description Profile completion percentages

// Invite Service Endpoints
// @tag.name invites
// @tag.description Direct and chained invites
// @tag.name network
// @tag.description Inbox, network, advisor and client projections
// @tag.name expressions
// @tag.description Investment offers to companies
// @tag.name endorsements
// @tag.description Testimonials for companies

// Media Service Endpoints
// @tag.name media
// @tag.description Presigned uploads and downloads

// Notification Service Endpoints
// @tag.name notifications
// @tag.description Email, WhatsApp and live invite events
