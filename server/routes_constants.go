package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes
	RouteAuthGoogle   = "/auth/google"
	RouteAuthCallback = "/auth/google/callback"
	RouteAuthLogout   = "/auth/logout"

	// Authenticated pages
	RouteDashboard = "/dashboard"
)
