package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigbadbobbo/foodtruck-api/configs"
	"github.com/bigbadbobbo/foodtruck-api/controllers"
	"github.com/bigbadbobbo/foodtruck-api/entity"
	"github.com/bigbadbobbo/foodtruck-api/middlewares"
	"github.com/bigbadbobbo/foodtruck-api/pkg/resp"
	"github.com/bigbadbobbo/foodtruck-api/services"
	"github.com/bigbadbobbo/foodtruck-api/ws"
)

const (
	user     = entity.RoleUser
	operator = entity.RoleOperator
	admin    = entity.RoleAdmin
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, reg *services.Registry, hub *ws.Hub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/image", cfg.FileUploadPath)

	// Controllers
	authCtrl := controllers.NewAuthController(reg.Auth)
	userCtrl := controllers.NewUserController(reg.Users)
	truckCtrl := controllers.NewFoodTruckController(reg.FoodTrucks)
	itemCtrl := controllers.NewFoodItemController(reg.FoodItems)
	ratingCtrl := controllers.NewRatingController(reg.Ratings)
	groupCtrl := controllers.NewUserGroupController(reg.UserGroups)
	memberCtrl := controllers.NewMembershipController(reg.Memberships)
	personalCtrl := controllers.NewPersonalOrderController(reg.PersonalOrders)
	groupOrderCtrl := controllers.NewGroupOrderController(reg.GroupOrders)
	memberOrderCtrl := controllers.NewGroupMemberOrderController(reg.GroupMemberOrders)
	msgCtrl := controllers.NewMessageController(reg.Messages)

	protect := func(roles ...string) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}
	// inside groups that already ran protect()
	only := middlewares.RequireRole

	// websocket push for messages
	r.GET("/ws/messages", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)

	r.NoRoute(func(c *gin.Context) { resp.NotFound(c, "Route not found") })

	api := r.Group("/api/v1")

	// Auth
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", protect(), authCtrl.Me)
		a.PUT("/updatedetails", protect(), authCtrl.UpdateDetails)
		a.PUT("/updatePassword", protect(), authCtrl.UpdatePassword)
		a.PUT("/updateLocation", protect(), authCtrl.UpdateLocation)
	}

	// Users (admin)
	u := api.Group("/users")
	{
		u.GET("", protect(admin), userCtrl.List)
		u.POST("", protect(admin), userCtrl.Create)
		u.GET("/:id", protect(admin), userCtrl.Get)
		u.PUT("/:id", protect(admin), userCtrl.Update)
		u.DELETE("/:id", protect(admin), userCtrl.Delete)

		u.GET("/:id/ratings", ratingCtrl.ListFor(entity.RatingUser))
		u.POST("/:id/ratings", protect(operator, admin), ratingCtrl.CreateFor(entity.RatingUser))
		u.GET("/:id/usergroups", groupCtrl.ListByOwner)
		u.GET("/:id/memberships", memberCtrl.ListByUser)
		u.GET("/:id/personalorders", protect(), personalCtrl.ListByUser)
	}

	// Food trucks
	ft := api.Group("/foodtrucks")
	{
		ft.GET("", truckCtrl.List)
		ft.GET("/radius/:lat/:lng/:distance", truckCtrl.InRadius)
		ft.GET("/:id", truckCtrl.Get)
		ft.POST("", protect(operator, admin), truckCtrl.Create)
		ft.PUT("/:id", protect(operator, admin), truckCtrl.Update)
		ft.DELETE("/:id", protect(operator, admin), truckCtrl.Delete)
		ft.PUT("/:id/photo", protect(operator, admin), truckCtrl.UploadPhoto)

		ft.GET("/:id/fooditems", itemCtrl.ListByTruck)
		ft.POST("/:id/fooditems", protect(operator, admin), itemCtrl.Create)
		ft.GET("/:id/ratings", ratingCtrl.ListFor(entity.RatingFoodTruck))
		ft.POST("/:id/ratings", protect(user, admin), ratingCtrl.CreateFor(entity.RatingFoodTruck))
		ft.GET("/:id/personalorders", protect(), personalCtrl.ListByTruck)
		ft.POST("/:id/personalorders", protect(user, admin), personalCtrl.Create)
	}

	// Food items
	fi := api.Group("/fooditems")
	{
		fi.GET("", itemCtrl.List)
		fi.GET("/:id", itemCtrl.Get)
		fi.PUT("/:id", protect(operator, admin), itemCtrl.Update)
		fi.DELETE("/:id", protect(operator, admin), itemCtrl.Delete)
		fi.PUT("/:id/photo", protect(operator, admin), itemCtrl.UploadPhoto)
	}

	// Ratings; authorship is checked in the service
	rt := api.Group("/ratings")
	{
		rt.GET("", ratingCtrl.List)
		rt.GET("/:id", ratingCtrl.Get)
		rt.PUT("/:id", protect(), ratingCtrl.Update)
		rt.DELETE("/:id", protect(), ratingCtrl.Delete)
	}

	// User groups
	ug := api.Group("/usergroups")
	{
		ug.GET("", groupCtrl.List)
		ug.GET("/:id", groupCtrl.Get)
		ug.POST("", protect(user, admin), groupCtrl.Create)
		ug.PUT("/:id", protect(user, admin), groupCtrl.Update)
		ug.DELETE("/:id", protect(user, admin), groupCtrl.Delete)
		ug.PUT("/:id/photo", protect(user, admin), groupCtrl.UploadPhoto)

		ug.GET("/:id/ratings", ratingCtrl.ListFor(entity.RatingUserGroup))
		ug.POST("/:id/ratings", protect(operator, admin), ratingCtrl.CreateFor(entity.RatingUserGroup))
		ug.GET("/:id/memberships", memberCtrl.ListByGroup)
		ug.POST("/:id/memberships", protect(user, admin), memberCtrl.Join)
	}

	// Memberships
	ms := api.Group("/memberships")
	{
		ms.GET("", memberCtrl.List)
		ms.GET("/:id", memberCtrl.Get)
		ms.DELETE("/:id", protect(user, admin), memberCtrl.Delete)
	}

	// Personal orders
	po := api.Group("/personalorders", protect())
	{
		po.GET("", personalCtrl.List)
		po.GET("/:id", personalCtrl.Get)
		po.DELETE("/:id", only(user, admin), personalCtrl.Delete)
		po.GET("/:id/items", personalCtrl.ListItems)
		po.POST("/:id/items", only(user, admin), personalCtrl.AddItem)
	}

	poi := api.Group("/personalorderitems", protect())
	{
		poi.GET("", personalCtrl.ListAllItems)
		poi.GET("/:id", personalCtrl.GetItem)
		poi.DELETE("/:id", only(user, admin), personalCtrl.DeleteItem)
	}

	// Group orders
	gor := api.Group("/grouporders", protect())
	{
		gor.GET("", groupOrderCtrl.List)
		gor.GET("/:id", groupOrderCtrl.Get)
		gor.GET("/:id/memberorders", groupOrderCtrl.ListMemberOrders)
		gor.POST("", only(user, admin), groupOrderCtrl.Create)
		gor.PUT("/:id", only(user, admin), groupOrderCtrl.Update)
		gor.DELETE("/:id", only(user, admin), groupOrderCtrl.Delete)
	}

	gmo := api.Group("/groupmemberorders", protect())
	{
		gmo.GET("", memberOrderCtrl.List)
		gmo.GET("/:id", memberOrderCtrl.Get)
		gmo.POST("", only(user, admin), memberOrderCtrl.Create)
		gmo.PUT("/:id", only(user, admin), memberOrderCtrl.Update)
		gmo.DELETE("/:id", only(user, admin), memberOrderCtrl.Delete)
	}

	// Messages
	msg := api.Group("/messages", protect())
	{
		msg.GET("", msgCtrl.List)
		msg.GET("/:id", msgCtrl.Get)
		msg.POST("", msgCtrl.Send)
	}
}
