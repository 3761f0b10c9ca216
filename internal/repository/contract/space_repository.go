package contract

import (
	"context"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SpaceRepository interface {
	Create(ctx context.Context, space *entity.Space) error
	// UpdateGem replaces the embedded persona configuration. It is the
	// only mutation allowed on a Space after creation.
	UpdateGem(ctx context.Context, id uuid.UUID, gem entity.Gem) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Space, error)
}
