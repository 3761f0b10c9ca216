package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionStore(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	ctx := context.Background()

	// One space scoping the whole run
	space := &entity.Space{
		Id:        uuid.New(),
		Title:     "Integration Space " + uuid.NewString(),
		TeacherId: "integration-teacher",
		Gem: entity.Gem{
			Id:          uuid.NewString(),
			PersonaName: "The Literary Analyst",
			Constraints: []string{"No full essays"},
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.SpaceRepository().Create(ctx, space))

	userId := "integration-student-" + uuid.NewString()

	t.Run("Append and replay in order", func(t *testing.T) {
		contents := []string{"first", "second", "third"}
		for i, content := range contents {
			interaction := &entity.Interaction{
				Id:        uuid.New(),
				SpaceId:   space.Id,
				UserId:    userId,
				Role:      "user",
				Content:   content,
				CreatedAt: time.Now().Add(time.Duration(i) * time.Millisecond),
			}
			require.NoError(t, uow.InteractionRepository().Create(ctx, interaction))
		}

		replayed, err := uow.InteractionRepository().FindAll(ctx,
			specification.BySpaceID{SpaceID: space.Id},
			specification.ByUserID{UserID: userId},
			specification.ChronologicalAsc{},
		)
		require.NoError(t, err)
		require.Len(t, replayed, 3)

		for i, interaction := range replayed {
			assert.Equal(t, contents[i], interaction.Content)
			if i > 0 {
				assert.False(t, interaction.CreatedAt.Before(replayed[i-1].CreatedAt))
			}
		}
	})

	t.Run("Attach tags and read back", func(t *testing.T) {
		interaction := &entity.Interaction{
			Id:        uuid.New(),
			SpaceId:   space.Id,
			UserId:    userId,
			Role:      "user",
			Content:   "The green light means hope",
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.InteractionRepository().Create(ctx, interaction))

		tags := []entity.Tag{
			{Type: "CONCEPT_MASTERY", Value: "Identified Symbolism", Confidence: 0.92},
			{Type: "EMOTIONAL_STATE", Value: "Curious", Confidence: 0.7},
		}
		require.NoError(t, uow.InteractionRepository().AttachTags(ctx, interaction.Id, tags))

		stored, err := uow.InteractionRepository().FindOne(ctx, specification.ByID{ID: interaction.Id})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, tags, stored.Tags)
		assert.Equal(t, interaction.Content, stored.Content)
	})

	t.Run("Update gem and read back", func(t *testing.T) {
		next := space.Gem
		next.PersonaName = "The Poet"
		next.KnowledgeBase = "--- Imported from notes.txt ---\n\nchapter two"
		require.NoError(t, uow.SpaceRepository().UpdateGem(ctx, space.Id, next))

		stored, err := uow.SpaceRepository().FindOne(ctx, specification.ByID{ID: space.Id})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "The Poet", stored.Gem.PersonaName)
		assert.Contains(t, stored.Gem.KnowledgeBase, "Imported from notes.txt")
	})
}
