package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/mapper"
	"ai-classroom-be/internal/model"
	"ai-classroom-be/internal/repository/contract"
	"ai-classroom-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SpaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SpaceMapper
}

func NewSpaceRepository(db *gorm.DB) contract.SpaceRepository {
	return &SpaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewSpaceMapper(),
	}
}

func (r *SpaceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SpaceRepositoryImpl) Create(ctx context.Context, space *entity.Space) error {
	m := r.mapper.ToModel(space)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*space = *r.mapper.ToEntity(m)
	return nil
}

func (r *SpaceRepositoryImpl) UpdateGem(ctx context.Context, id uuid.UUID, gem entity.Gem) error {
	raw, err := json.Marshal(gem)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Space{}).
		Where("id = ?", id).
		Update("gem", datatypes.JSON(raw)).Error
}

func (r *SpaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Space, error) {
	var m model.Space
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SpaceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Space, error) {
	var models []*model.Space
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Space, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
