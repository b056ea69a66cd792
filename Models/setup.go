package Models

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// RDB caches user lookups for the auth middleware. Nil when REDIS_ADDR is unset.
var RDB *redis.Client

var Ctx = context.Background()

func ConnectDataBase() {

	err := godotenv.Load(".env")

	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	DbHost := os.Getenv("DB_HOST")
	DbUser := os.Getenv("DB_USER")
	DbPassword := os.Getenv("DB_PASSWORD")
	DbName := os.Getenv("DB_NAME")
	DbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", DbHost, DbUser, DbPassword, DbName, DbPort)
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Fatal("connection error:", err)
	}

	Migrate(DB)
	ConnectCache()
}

// Migrate runs AutoMigrate in dependency order. Split out so tests can run it
// against sqlite.
func Migrate(db *gorm.DB) {
	// First migrate models with no dependencies
	db.AutoMigrate(&User{})
	db.AutoMigrate(&Professional{})
	db.AutoMigrate(&Service{})
	db.AutoMigrate(&Discount{})
	db.AutoMigrate(&InsuranceDiscount{})

	// Then migrate models that depend on the above
	db.AutoMigrate(&Attention{})
	db.AutoMigrate(&Settlement{})

	// Finally the settlement detail and audit tables
	db.AutoMigrate(&SettlementLineItem{})
	db.AutoMigrate(&SettlementDiscount{})
	db.AutoMigrate(&AuditLog{})
}

func ConnectCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := RDB.Ping(Ctx).Err(); err != nil {
		log.Println("redis unavailable, user cache disabled:", err)
		RDB = nil
	}
}
