package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sharedeck/internal/admin"
	"sharedeck/internal/allocation"
	"sharedeck/internal/auth"
	"sharedeck/internal/card"
	"sharedeck/internal/deck"
	"sharedeck/internal/middleware"
	"sharedeck/internal/planner"
	"sharedeck/internal/pricing"
	"sharedeck/internal/purchase"
	"sharedeck/internal/store"
	"sharedeck/internal/user"
)

type Handlers struct {
	Users       *user.Handler
	Cards       *card.Handler
	Decks       *deck.Handler
	Stores      *store.Handler
	Purchases   *purchase.Handler
	Prices      *pricing.Handler
	Plans       *planner.Handler
	Allocations *allocation.Handler
	Admin       *admin.Handler
}

type Deps struct {
	Tokens         *auth.JWTManager
	Resolver       middleware.UserResolver
	AllowedOrigins []string
	Handlers
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(d.Tokens))

	// Token only: the user row may not exist yet.
	api.POST("/users/sync", d.Users.Sync)

	authed := api.Group("")
	authed.Use(middleware.CurrentUser(d.Resolver))
	{
		authed.GET("/users/me", d.Users.Me)

		authed.GET("/cards", d.Cards.ListCards)
		authed.GET("/custom-cards", d.Cards.ListCustomCards)
		authed.POST("/custom-cards", d.Cards.CreateCustomCard)

		authed.GET("/decks", d.Decks.List)
		authed.POST("/decks", d.Decks.Create)
		authed.GET("/decks/grouped", d.Decks.Grouped)
		authed.GET("/decks/:id", d.Decks.Get)
		authed.PUT("/decks/:id", d.Decks.Update)
		authed.DELETE("/decks/:id", d.Decks.Delete)

		authed.GET("/stores", d.Stores.List)
		authed.POST("/stores", d.Stores.Create)
		authed.PATCH("/stores/:id", d.Stores.Update)
		authed.DELETE("/stores/:id", d.Stores.Delete)

		authed.GET("/purchase-lists", d.Purchases.ListLists)
		authed.POST("/purchase-lists", d.Purchases.CreateList)
		authed.GET("/purchase-lists/:id", d.Purchases.GetList)
		authed.PATCH("/purchase-lists/:id", d.Purchases.UpdateList)
		authed.DELETE("/purchase-lists/:id", d.Purchases.DeleteList)
		authed.GET("/purchase-lists/:id/items", d.Purchases.ListItems)
		authed.POST("/purchase-lists/:id/items", d.Purchases.CreateItem)
		authed.PATCH("/purchase-lists/:id/items/:item_id", d.Purchases.UpdateItem)
		authed.DELETE("/purchase-lists/:id/items/:item_id", d.Purchases.DeleteItem)
		authed.GET("/purchase-lists/:id/optimal-plan", d.Plans.OptimalPlan)

		authed.GET("/items/:id/prices", d.Prices.List)
		authed.PUT("/items/:id/prices/:store_id", d.Prices.Put)
		authed.DELETE("/items/:id/prices/:store_id", d.Prices.Delete)

		authed.GET("/items/:id/allocations", d.Allocations.List)
		authed.POST("/items/:id/allocations", d.Allocations.Create)
		authed.PATCH("/allocations/:id", d.Allocations.Update)
		authed.DELETE("/allocations/:id", d.Allocations.Delete)
	}

	adminGroup := authed.Group("/admin")
	adminGroup.Use(middleware.RequireRole(user.RoleAdmin))
	{
		adminGroup.GET("/stats", d.Admin.Stats)
		adminGroup.POST("/scrape-cards", d.Admin.ScrapeCards)
		adminGroup.GET("/check-image-urls", d.Admin.CheckImageURLs)
		adminGroup.POST("/migrate-image-urls", d.Admin.MigrateImageURLs)
	}

	return r
}
