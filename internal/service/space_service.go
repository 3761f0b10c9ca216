package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-classroom-be/internal/constant"
	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/mapper"
	"ai-classroom-be/internal/repository/memory"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
)

var ErrSpaceNotFound = errors.New("space not found")

type ISpaceService interface {
	Create(ctx context.Context, req *dto.CreateSpaceRequest) (*dto.SpaceResponse, error)
	List(ctx context.Context, teacherId string) ([]*dto.SpaceResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SpaceResponse, error)
	UpdateGem(ctx context.Context, id uuid.UUID, gem dto.GemPayload) error
	// AppendKnowledge adds imported document text to the Gem's knowledge
	// base under a provenance header.
	AppendKnowledge(ctx context.Context, id uuid.UUID, filename, text string) (*dto.SpaceResponse, error)
}

type spaceService struct {
	uowFactory unitofwork.RepositoryFactory
	spaceCache *memory.SpaceCache
	gemMapper  *mapper.GemMapper
}

func NewSpaceService(uowFactory unitofwork.RepositoryFactory, spaceCache *memory.SpaceCache) ISpaceService {
	return &spaceService{
		uowFactory: uowFactory,
		spaceCache: spaceCache,
		gemMapper:  mapper.NewGemMapper(),
	}
}

func (s *spaceService) Create(ctx context.Context, req *dto.CreateSpaceRequest) (*dto.SpaceResponse, error) {
	gem := defaultGem()
	if req.Gem != nil {
		gem = s.gemMapper.ToEntity(*req.Gem)
	}
	if gem.Id == "" {
		gem.Id = uuid.NewString()
	}

	space := entity.Space{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		TeacherId:   req.TeacherId,
		Gem:         gem,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SpaceRepository().Create(ctx, &space); err != nil {
		return nil, err
	}

	return s.toResponse(&space), nil
}

func (s *spaceService) List(ctx context.Context, teacherId string) ([]*dto.SpaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	spaces, err := uow.SpaceRepository().FindAll(ctx,
		specification.ByTeacherID{TeacherID: teacherId},
		specification.RecentFirst{},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		out = append(out, s.toResponse(space))
	}
	return out, nil
}

func (s *spaceService) Show(ctx context.Context, id uuid.UUID) (*dto.SpaceResponse, error) {
	space, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(space), nil
}

func (s *spaceService) UpdateGem(ctx context.Context, id uuid.UUID, gem dto.GemPayload) error {
	space, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	next := s.gemMapper.ToEntity(gem)
	if next.Id == "" {
		next.Id = space.Gem.Id
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SpaceRepository().UpdateGem(ctx, id, next); err != nil {
		return err
	}

	s.spaceCache.Invalidate(id.String())
	return nil
}

func (s *spaceService) AppendKnowledge(ctx context.Context, id uuid.UUID, filename, text string) (*dto.SpaceResponse, error) {
	space, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	gem := space.Gem
	imported := fmt.Sprintf("--- Imported from %s ---\n\n%s", filename, text)
	if gem.KnowledgeBase == "" {
		gem.KnowledgeBase = imported
	} else {
		gem.KnowledgeBase = gem.KnowledgeBase + "\n\n" + imported
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SpaceRepository().UpdateGem(ctx, id, gem); err != nil {
		return nil, err
	}

	s.spaceCache.Invalidate(id.String())

	space.Gem = gem
	return s.toResponse(space), nil
}

func (s *spaceService) find(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	space, err := uow.SpaceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, ErrSpaceNotFound
	}
	return space, nil
}

func (s *spaceService) toResponse(space *entity.Space) *dto.SpaceResponse {
	return &dto.SpaceResponse{
		Id:          space.Id.String(),
		Title:       space.Title,
		Description: space.Description,
		TeacherId:   space.TeacherId,
		Gem:         s.gemMapper.ToPayload(space.Gem),
		CreatedAt:   space.CreatedAt,
	}
}

func defaultGem() entity.Gem {
	return entity.Gem{
		Id:                 uuid.NewString(),
		PersonaName:        constant.DefaultPersonaName,
		SystemInstructions: constant.DefaultSystemInstructions,
		OpeningLine:        constant.DefaultOpeningLine,
		Constraints:        append([]string(nil), constant.DefaultGemConstraints...),
	}
}
