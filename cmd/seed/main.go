package main

import (
	"context"
	"log"
	"os"
	"time"

	"stayhub/internal/database"
	"stayhub/internal/domain"
	"stayhub/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "stayhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM voucher_usages")
	db.Exec("DELETE FROM vouchers")
	db.Exec("DELETE FROM wallet_transactions")
	db.Exec("DELETE FROM hotel_revenues")
	db.Exec("DELETE FROM payment_transactions")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM room_types")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	hotels := repository.NewHotelRepository(db)
	roomTypes := repository.NewRoomTypeRepository(db)
	vouchers := repository.NewVoucherRepository(db)

	guest := &domain.User{
		Username:     "guest",
		Email:        "guest@example.com",
		PasswordHash: mustHash("guest12345"),
		Name:         "Nguyen Van A",
		Tel:          "+84901234567",
		Role:         domain.RoleGuest,
	}
	host := &domain.User{
		Username:     "host",
		Email:        "host@example.com",
		PasswordHash: mustHash("host12345"),
		Name:         "Tran Thi B",
		Role:         domain.RoleHost,
	}
	admin := &domain.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: mustHash("admin12345"),
		Name:         "Platform Admin",
		Role:         domain.RoleAdmin,
	}
	for _, u := range []*domain.User{guest, host, admin} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("seed user failed:", err)
		}
	}

	hotel := &domain.Hotel{
		OwnerID:        host.ID,
		Name:           "Riverside Boutique",
		City:           "Da Nang",
		Address:        "12 Bach Dang",
		Active:         true,
		CommissionRate: 0.12,
	}
	if err := hotels.Create(ctx, hotel); err != nil {
		log.Fatal("seed hotel failed:", err)
	}

	for _, rt := range []*domain.RoomType{
		{HotelID: hotel.ID, Name: "Standard Double", MaxOccupancy: 2, TotalRooms: 10, AvailableRooms: 10, PricePerNight: 850_000},
		{HotelID: hotel.ID, Name: "Family Suite", MaxOccupancy: 4, TotalRooms: 4, AvailableRooms: 4, PricePerNight: 1_900_000},
	} {
		if err := roomTypes.Create(ctx, rt); err != nil {
			log.Fatal("seed room type failed:", err)
		}
	}

	maxDiscount := int64(200_000)
	usageLimit := 100
	v := &domain.Voucher{
		Code:          "WELCOME10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 10,
		MaxDiscount:   &maxDiscount,
		StartDate:     time.Now().AddDate(0, 0, -1),
		EndDate:       time.Now().AddDate(0, 3, 0),
		UsageLimit:    &usageLimit,
		Status:        domain.VoucherActive,
	}
	if err := vouchers.Create(ctx, v); err != nil {
		log.Fatal("seed voucher failed:", err)
	}

	log.Println("Seed completed")
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	return string(hash)
}
