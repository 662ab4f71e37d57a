// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/restobook/restaurant-reservation/internal/handler"
	"github.com/restobook/restaurant-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers to
// verify that the service is running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /api/auth; /api/me requires a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout needs only a refresh token in the body, not a JWT, so a
	// client with an expired access token can still end its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/api")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the restaurant, table, customer and
// reservation routes. All of them require a valid access token.
// Restaurant, table and customer mutations are restricted to ADMIN;
// reservations are open to both roles since front-of-house staff take
// bookings all day.
func RegisterBooking(
	e *echo.Echo,
	jwtSecret string,
	restaurants *handler.RestaurantHandler,
	tables *handler.TableHandler,
	customers *handler.CustomerHandler,
	reservations *handler.ReservationHandler,
	cache echo.MiddlewareFunc,
) {
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole("ADMIN", "STAFF"))

	admin := middleware.RequireRole("ADMIN")

	get := func(g *echo.Group, path string, h echo.HandlerFunc) {
		if cache != nil {
			g.GET(path, h, cache)
			return
		}
		g.GET(path, h)
	}

	get(api, "/restaurants", restaurants.List)
	get(api, "/restaurants/:id", restaurants.Get)
	api.POST("/restaurants", restaurants.Create, admin)
	api.PUT("/restaurants/:id", restaurants.Update, admin)
	api.DELETE("/restaurants/:id", restaurants.Delete, admin)

	get(api, "/tables", tables.List)
	get(api, "/tables/:id", tables.Get)
	api.POST("/tables", tables.Create, admin)
	api.PUT("/tables/:id", tables.Update, admin)
	api.DELETE("/tables/:id", tables.Delete, admin)

	get(api, "/customers", customers.List)
	get(api, "/customers/:id", customers.Get)
	api.POST("/customers", customers.Create, admin)
	api.PUT("/customers/:id", customers.Update, admin)
	api.DELETE("/customers/:id", customers.Delete, admin)

	// Reservation reads stay uncached: stale availability would show
	// phantom free slots right after an admission.
	api.GET("/reservations", reservations.List)
	api.GET("/reservations/:id", reservations.Get)
	api.POST("/reservations", reservations.Create)
	api.PUT("/reservations/:id", reservations.Update)
	api.DELETE("/reservations/:id", reservations.Delete)
}
