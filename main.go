package main

import (
	"os"

	"boat-rental-server/routes"
	"boat-rental-server/storage"
	"boat-rental-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeImageStorage()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/logout", routes.Logout)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/facebook", routes.FacebookLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/{id}", routes.GetUser)
		user.Patch("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateProfile)
	}

	boat := app.Party("/api/boat")
	{
		boat.Get("/{id}", routes.GetBoat)
		boat.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBoat)
		boat.Get("/my/list", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyBoats)
		boat.Patch("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateBoat)
		boat.Delete("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteBoat)
		boat.Post("/{id}/images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.AddBoatImages)
		boat.Delete("/{id}/images", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.RemoveBoatImage)
	}

	booking := app.Party("/api/booking")
	{
		booking.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		booking.Get("/my-rentals", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyRentals)
		booking.Get("/my-boats", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyBoatBookings)
		booking.Patch("/cancel/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelBooking)
	}

	review := app.Party("/api/review")
	{
		review.Post("/submit-review/{boatId}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitReview)
		review.Get("/check-review/{boatId}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CheckReviewed)
		review.Get("/{boatId}", routes.ListBoatReviews)
	}

	search := app.Party("/api/search")
	{
		search.Get("/", routes.SearchBoats)
		search.Get("/locations", routes.ListLocations)
	}

	notifications := app.Party("/api/notifications")
	{
		notifications.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetNotifications)
		notifications.Patch("/{id}/read", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.MarkNotificationRead)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	app.Listen(":" + port)
}
