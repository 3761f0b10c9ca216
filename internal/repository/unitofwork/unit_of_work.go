package unitofwork

import (
	"context"

	"ai-classroom-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SpaceRepository() contract.SpaceRepository
	InteractionRepository() contract.InteractionRepository
}
