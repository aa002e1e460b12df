// Command seed loads the default treatments, capsters and a sample customer.
// It is safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"capster-board/config"
	"capster-board/models"
	"capster-board/repository"
	"capster-board/services"
	"capster-board/utils"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var (
	defaultTreatments = []string{"Haircut", "Shave", "Haircut + Shave"}
	defaultCapsters   = []string{"Budi", "Siti", "Andi"}
	sampleCustomers   = []models.Customer{{Name: "John Doe", WhatsApp: "+628123456789"}}
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for STAFF_PASSWORD_HASH and exit")
	newSecret := flag.Bool("jwt-secret", false, "print a random JWT_SECRET and exit")
	flag.Parse()

	switch {
	case *hashPassword != "":
		hash, err := utils.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		fmt.Println(hash)
		return
	case *newSecret:
		fmt.Println(utils.GenerateJWTSecret())
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(settings.LogLevel)

	if err := run(settings, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := config.ConnectDB(settings.DatabaseURL)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var cache services.MastersCache
	if client, err := config.NewRedisClient(ctx, settings.RedisAddr, settings.RedisPassword, settings.RedisDB); err != nil {
		logger.Warn("redis unavailable, cached masters may be stale", "error", err)
	} else if client != nil {
		defer client.Close()
		cache = services.NewRedisMastersCache(client, settings.MastersCacheTTL, logger)
	}

	if err := seed(ctx, db, cache, logger); err != nil {
		return err
	}
	logger.Info("seed complete",
		"treatments", len(defaultTreatments),
		"capsters", len(defaultCapsters),
		"customers", len(sampleCustomers),
	)
	return nil
}

func seed(ctx context.Context, db *gorm.DB, cache services.MastersCache, logger *slog.Logger) error {
	masters := services.NewMastersService(repository.NewMasterRepository(db), cache, logger)
	if err := masters.Seed(ctx, defaultTreatments, defaultCapsters); err != nil {
		return fmt.Errorf("seed masters: %w", err)
	}
	if err := repository.NewCustomerRepository(db).UpsertByWhatsApp(ctx, sampleCustomers); err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}
	return nil
}
