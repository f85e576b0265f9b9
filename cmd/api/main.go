package main

import (
	"log"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/middleware"
	"stayhub/internal/modules/auth"
	"stayhub/internal/modules/booking"
	"stayhub/internal/modules/refund"
	"stayhub/internal/modules/revenue"
	"stayhub/internal/modules/voucher"
	"stayhub/internal/modules/wallet"
	jwtsvc "stayhub/internal/pkg/jwt"
	"stayhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)
	paymentRepo := repository.NewPaymentTransactionRepository(db)
	txManager := repository.NewTxManager(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j, nil)
	authHandler := auth.NewHandler(authService)

	walletService := wallet.NewService(walletRepo, nil)
	revenueService := revenue.NewService(revenueRepo, bookingRepo, hotelRepo, nil)
	refundService := refund.NewService(walletService, revenueService, nil)
	voucherService := voucher.NewService(voucherRepo, nil)

	bookingService := booking.NewService(
		bookingRepo,
		roomTypeRepo,
		hotelRepo,
		userRepo,
		paymentRepo,
		voucherService,
		refundService,
		txManager,
		nil,
	)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		authed := v1.Group("/")
		authed.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterGuestRoutes(authed)
		}

		host := v1.Group("/host")
		host.Use(middleware.JWTAuth(j), middleware.HostOnly())
		{
			bookingHandler.RegisterHostRoutes(host)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			bookingHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
