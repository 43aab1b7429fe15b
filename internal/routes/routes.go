package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souma9830/travel-agency-website/internal/handlers"
	"github.com/souma9830/travel-agency-website/internal/middleware"
	"github.com/souma9830/travel-agency-website/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	tokens services.TokenService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	oauthHandler *handlers.OAuthHandler,
) *gin.Engine {

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working")
	})

	auth := r.Group("/api/auth")
	{
		// ---- public
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/send-reset-otp", authHandler.SendResetOtp)
		auth.POST("/forgot-otp", authHandler.ForgotOtp)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/logout", authHandler.Logout)

		// ---- protected (session token in `token` header)
		auth.GET("/get-profile", middleware.UserAuth(tokens), userHandler.GetProfile)
		auth.POST("/update-profile", middleware.UserAuth(tokens), userHandler.UpdateProfile)
	}

	oauth := r.Group("/api/oauth")
	{
		oauth.GET("/google", oauthHandler.GoogleAuth)
		oauth.GET("/callback/google", oauthHandler.GoogleCallback)
	}

	return r
}
