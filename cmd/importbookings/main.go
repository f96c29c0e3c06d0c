// Command importbookings stores a traveler's saved bookings in Redis, creating
// the traveler account first when it does not exist. It is a development aid.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sith-voyages/internal/data/entity"
	"sith-voyages/internal/data/repository"
	"sith-voyages/pkg/database"
	"sith-voyages/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute returns the process exit code so deferred cleanup runs before exit.
func execute(args []string) int {
	flags := flag.NewFlagSet("importbookings", flag.ContinueOnError)
	var (
		file     = flags.String("file", "", "JSON file holding a bookings array or a v1 envelope")
		username = flags.String("username", "", "traveler username")
		email    = flags.String("email", "", "traveler e-mail, used when the account is created")
		fullName = flags.String("name", "", "traveler full name, used when the account is created")
		password = flags.String("password", "", "password for a newly created account")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *file == "" || *username == "" {
		flags.Usage()
		return 2
	}

	config, err := utils.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using development logger.", err)
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), config, logger, *file, *username, *email, *fullName, *password); err != nil {
		logger.Error("Import failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger, file, username, email, fullName, password string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	// validate before touching any store
	bookings, err := repository.DecodeSavedBookings(raw)
	if err != nil {
		return err
	}

	if err := database.Migrate(config.Database); err != nil {
		return err
	}

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	kv, err := database.InitRedis(ctx, config.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	repo := repository.NewRepository(db, kv, config, logger)

	user, err := ensureUser(ctx, repo.User, username, email, fullName, password)
	if err != nil {
		return err
	}

	if err := repo.SavedBooking.Put(ctx, user.ID, bookings); err != nil {
		return err
	}

	out, _ := json.Marshal(map[string]any{"user_id": user.ID, "imported": len(bookings)})
	fmt.Println(string(out))
	return nil
}

func ensureUser(ctx context.Context, users repository.UserRepository, username, email, fullName, password string) (*entity.User, error) {
	user, err := users.FindByUsername(ctx, username)
	if err != nil || user != nil {
		return user, err
	}

	if email == "" || password == "" {
		return nil, fmt.Errorf("user %s does not exist; pass -email and -password to create it", username)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user = &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleTraveler,
		IsActive:     true,
	}
	if fullName != "" {
		user.FullName = &fullName
	}

	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
