package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fulltechdev/kiame-hotel/routes"
	"github.com/fulltechdev/kiame-hotel/storage"
	"github.com/fulltechdev/kiame-hotel/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
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

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
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

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/profile", accessTokenVerifierMiddleware, routes.GetUserProfile)
		user.Patch("/profile", accessTokenVerifierMiddleware, routes.UpdateUserProfile)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Get("/search", routes.SearchRooms)
		rooms.Get("/{id:uint}", routes.GetRoom)
	}

	availability := app.Party("/api/availability")
	{
		availability.Get("/room/{id:uint}", routes.GetRoomAvailability)
	}

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateReservation)
		reservations.Post("/quote", routes.QuoteReservation)
		reservations.Get("/user/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserReservations)
		reservations.Patch("/{id:uint}/status", accessTokenVerifierMiddleware, routes.UpdateReservationStatus)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Post("/users", routes.AdminCreateUser)
		admin.Post("/rooms", routes.AdminCreateRoom)
		admin.Patch("/rooms/{id:uint}", routes.AdminUpdateRoom)
		admin.Delete("/rooms/{id:uint}", routes.AdminDeleteRoom)
		admin.Post("/availability", routes.AdminCreateAvailabilityWindow)
		admin.Delete("/availability/{id:uint}", routes.AdminDeleteAvailabilityWindow)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Get("/reservations/{id:uint}", routes.AdminGetReservation)
		admin.Post("/reservations", routes.AdminCreateReservation)
		admin.Patch("/reservations/{id:uint}/status", routes.UpdateReservationStatus)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
