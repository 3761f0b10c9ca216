package contract

import (
	"context"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	// AttachTags is the single post-creation mutation an interaction
	// ever receives.
	AttachTags(ctx context.Context, id uuid.UUID, tags []entity.Tag) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
