package main

import (
	"log"
	"os"
	"time"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/mapper"
	"ai-classroom-be/internal/model"
	"ai-classroom-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds one demo Space with the default Gem so a fresh install has a
// classroom to chat against.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	teacherId := os.Getenv("SEED_TEACHER_ID")
	if teacherId == "" {
		teacherId = "teacher-demo"
	}

	space := entity.Space{
		Id:          uuid.New(),
		Title:       constant.DefaultSpaceTitle,
		Description: "Demo classroom seeded for local development.",
		TeacherId:   teacherId,
		Gem: entity.Gem{
			Id:                 uuid.NewString(),
			PersonaName:        constant.DefaultPersonaName,
			SystemInstructions: constant.DefaultSystemInstructions,
			OpeningLine:        constant.DefaultOpeningLine,
			Constraints:        constant.DefaultGemConstraints,
		},
		CreatedAt: time.Now(),
	}

	spaceMapper := mapper.NewSpaceMapper()
	m := spaceMapper.ToModel(&space)

	var existing model.Space
	if err := db.Where("teacher_id = ? AND title = ?", teacherId, space.Title).First(&existing).Error; err == nil {
		color.Yellow("Space %q already seeded for teacher %s (id %s), skipping", space.Title, teacherId, existing.Id)
		return
	}

	if err := db.Create(m).Error; err != nil {
		log.Fatal("Error: Failed to seed space:", err)
	}

	color.Green("✅ Seeded space %q", space.Title)
	color.Cyan("   id:         %s", space.Id)
	color.Cyan("   teacher_id: %s", teacherId)
	color.Cyan("   persona:    %s", space.Gem.PersonaName)
}
