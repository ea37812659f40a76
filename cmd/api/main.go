package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"equiprent/internal/database"
	"equiprent/internal/middleware"
	"equiprent/internal/modules/auth"
	"equiprent/internal/modules/booking"
	"equiprent/internal/modules/equipment"
	"equiprent/internal/modules/notification"
	"equiprent/internal/modules/qr"
	"equiprent/internal/modules/qrscan"
	jwtsvc "equiprent/internal/pkg/jwt"
	"equiprent/internal/repository"
)

func main() {
	// .env is optional; real deployments pass everything via ENV.
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "equiprent.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db,
		&repository.UserModel{},
		&repository.EquipmentModel{},
		&repository.BookingModel{},
		&repository.NotificationModel{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	if err := bookingRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	equipmentService := equipment.NewService(equipmentRepo, userRepo)
	equipmentHandler := equipment.NewHandler(equipmentService)

	bookingService := booking.NewService(bookingRepo, equipmentRepo)
	bookingHandler := booking.NewHandler(bookingService)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	qrService := qr.NewService(equipmentRepo, bookingRepo)
	qrHandler := qr.NewHandler(qrService)

	qrScanService := qrscan.NewService(equipmentRepo, bookingRepo, userRepo, notificationService)
	qrScanHandler := qrscan.NewHandler(qrScanService)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		equipmentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			equipmentHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			qrHandler.RegisterRoutes(protected)
			qrScanHandler.RegisterRoutes(protected)
		}
	}

	addr := ":" + envOr("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
