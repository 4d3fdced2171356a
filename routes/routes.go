package routes

import (
	"net/http"

	"bmicalc/controllers"
	"bmicalc/middlewares"
	"bmicalc/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Calc      *services.BMICalculator
	Store     services.ProfileStore
	Hub       *services.RealtimeHub
	JWTSecret []byte
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	bmi := controllers.NewBMIController(d.Calc)
	r.POST("/bmi/calculate", bmi.Calculate)
	r.GET("/bmi/categories", bmi.Categories)

	if d.Store == nil {
		return r
	}

	authCtl := controllers.NewAuthController(services.NewAuthService(d.Store, d.JWTSecret))
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	userCtl := controllers.NewUserController(services.NewProfileService(d.Store, d.Calc, d.Hub))
	rtCtl := controllers.NewRealtimeController(d.Hub, d.Calc)

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware(d.JWTSecret, d.Store))
	{
		user.GET("/profile", userCtl.GetProfile)
		user.PUT("/profile", userCtl.UpdateProfile)
		user.GET("/bmi", userCtl.GetBMI)
		user.GET("/bmi/ws", rtCtl.BMIWS)
	}

	return r
}
