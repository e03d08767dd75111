package main

import (
	"context"
	"fmt"
	"time"

	"github.com/seatwise/seatwise-backend/internal/config"
	"github.com/seatwise/seatwise-backend/internal/database"
	"github.com/seatwise/seatwise-backend/internal/logger"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	studentService := service.NewStudentService(studentRepo)

	fmt.Println("=== Seeding 50 Students ===")

	names := []string{
		"Alex Morgan", "Bailey Chen", "Casey Rivera", "Dana Whitfield", "Eli Navarro",
		"Frankie Osei", "Gray Thompson", "Harper Liu", "Indira Shah", "Jordan Blake",
		"Kai Nakamura", "Lee Okafor", "Morgan Reyes", "Noa Fischer", "Oakley James",
		"Parker Singh", "Quinn Delgado", "Riley Foster", "Sage Antoniou", "Taylor Brooks",
		"Uma Patel", "Val Kowalski", "Wren Mitchell", "Xiomara Velez", "Yael Cohen",
		"Zion Carter", "Avery Lindqvist", "Blake Ortega", "Cameron Diallo", "Devon Price",
		"Emery Lombardi", "Finley Adeyemi", "Gael Moreno", "Hollis Grant", "Imani Clarke",
		"Jules Bernard", "Kendall Oyelaran", "Logan Pierce", "Marlow Haddad", "Nico Vasquez",
		"Oren Kaplan", "Peyton Marsh", "Reese Whitaker", "Shay Donnelly", "Tatum Ellis",
		"Uriel Mendes", "Vesper Noble", "Willow Hartman", "Xan Petrov", "Yuki Tanaka",
	}

	// One shared hash keeps the seed fast; every account gets the same
	// throwaway password.
	hash, err := bcrypt.GenerateFromPassword([]byte("seatwise-demo"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	successCount := 0
	for i := 0; i < 50; i++ {
		student := &model.Student{
			StudentNumber: fmt.Sprintf("S%05d", i+1),
			Name:          names[i],
			PasswordHash:  string(hash),
		}

		if err := studentService.Create(ctx, student); err != nil {
			fmt.Printf("Error creating student %s (%s): %v\n", student.Name, student.StudentNumber, err)
		} else {
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/50 students.\n", successCount)
}
