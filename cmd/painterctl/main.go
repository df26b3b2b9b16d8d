// painterctl is the administrative CLI for the timesheet service. It runs
// schema migration and idempotent seeding before the service accepts
// traffic, and covers the odd account cleanup.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"painterlog/internal/config"
	"painterlog/internal/db"
	"painterlog/internal/model"
	"painterlog/internal/repository"
)

const seedBcryptCost = 10

var rootCmd = &cobra.Command{
	Use:   "painterctl",
	Short: "Administrative CLI for the painter timesheet service",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the test account and starter locations (idempotent)",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete-user <username>",
	Short: "Delete a user and, via cascade, their locations and entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteUser,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(deleteUserCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openAndMigrate() (*gorm.DB, error) {
	cfg := config.Load()
	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.DailyEntry{},
		&model.DailyLocation{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return gormDB, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if _, err := openAndMigrate(); err != nil {
		return err
	}
	log.Println("Schema is up to date")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	gormDB, err := openAndMigrate()
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(gormDB)
	locationRepo := repository.NewLocationRepository(gormDB)
	ctx := context.Background()

	user, err := userRepo.FindByUsername(ctx, "test_painter")
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), seedBcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		user = &model.User{
			Username:     "test_painter",
			PasswordHash: string(hash),
			FullName:     "Test Painter",
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create seed user: %w", err)
		}
		log.Printf("Created user %q", user.Username)
	} else if err != nil {
		return fmt.Errorf("find seed user: %w", err)
	} else {
		log.Printf("User %q already exists", user.Username)
	}

	starters := []model.Location{
		{UserID: user.ID, Name: "Main Office", Address: "123 Main St", Active: true},
		{UserID: user.ID, Name: "Downtown Site", Address: "456 Center Ave", Active: true},
	}
	created := 0
	for _, starter := range starters {
		if _, err := locationRepo.FindActiveByName(ctx, user.ID, starter.Name); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("find starter location %q: %w", starter.Name, err)
		}
		starter := starter
		if err := locationRepo.Create(ctx, &starter); err != nil {
			return fmt.Errorf("create starter location %q: %w", starter.Name, err)
		}
		created++
	}

	log.Printf("Seed completed: %d starter locations created", created)
	return nil
}

func runDeleteUser(cmd *cobra.Command, args []string) error {
	gormDB, err := openAndMigrate()
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	user, err := userRepo.FindByUsername(ctx, args[0])
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("user %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	if err := userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	log.Printf("Deleted user %q and all associated data", user.Username)
	return nil
}
