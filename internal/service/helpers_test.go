package service

import (
	"context"

	"github.com/google/uuid"

	"ai-classroom-be/internal/entity"
	"ai-classroom-be/internal/repository/contract"
	"ai-classroom-be/internal/repository/specification"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/pkg/generation"
)

// testLogger satisfies logger.ILogger without touching the filesystem.
type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

// fakeProvider scripts the generation client.
type fakeProvider struct {
	completeFn  func(ctx context.Context, history []generation.Message) (string, error)
	textFn      func(ctx context.Context, prompt string) (string, error)
	audioFn     func(ctx context.Context, prompt string, audio []byte, mime string) (string, error)
	lastHistory []generation.Message
	lastPrompt  string
}

func (p *fakeProvider) Complete(ctx context.Context, history []generation.Message) (string, error) {
	p.lastHistory = history
	if p.completeFn != nil {
		return p.completeFn(ctx, history)
	}
	return "ok", nil
}

func (p *fakeProvider) CompleteText(ctx context.Context, prompt string) (string, error) {
	p.lastPrompt = prompt
	if p.textFn != nil {
		return p.textFn(ctx, prompt)
	}
	return "ok", nil
}

func (p *fakeProvider) CompleteWithAudio(ctx context.Context, prompt string, audio []byte, mime string) (string, error) {
	p.lastPrompt = prompt
	if p.audioFn != nil {
		return p.audioFn(ctx, prompt, audio, mime)
	}
	return "ok", nil
}

func (p *fakeProvider) Close() error { return nil }

// fakeSpaceRepo serves canned spaces and records Gem updates.
type fakeSpaceRepo struct {
	spaces     map[uuid.UUID]*entity.Space
	findErr    error
	updatedGem *entity.Gem
}

func newFakeSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{spaces: make(map[uuid.UUID]*entity.Space)}
}

func (r *fakeSpaceRepo) Create(_ context.Context, space *entity.Space) error {
	r.spaces[space.Id] = space
	return nil
}

func (r *fakeSpaceRepo) UpdateGem(_ context.Context, id uuid.UUID, gem entity.Gem) error {
	r.updatedGem = &gem
	if space, ok := r.spaces[id]; ok {
		space.Gem = gem
	}
	return nil
}

func (r *fakeSpaceRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Space, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return r.spaces[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeSpaceRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Space, error) {
	out := make([]*entity.Space, 0, len(r.spaces))
	for _, space := range r.spaces {
		out = append(out, space)
	}
	return out, nil
}

// fakeInteractionRepo records appends and serves a scripted read set.
type fakeInteractionRepo struct {
	created      []*entity.Interaction
	findAllSet   []*entity.Interaction
	findAllErr   error
	createErr    error
	attachedID   uuid.UUID
	attachedTags []entity.Tag
	attachErr    error
}

func (r *fakeInteractionRepo) Create(_ context.Context, interaction *entity.Interaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, interaction)
	return nil
}

func (r *fakeInteractionRepo) AttachTags(_ context.Context, id uuid.UUID, tags []entity.Tag) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	r.attachedID = id
	r.attachedTags = tags
	return nil
}

func (r *fakeInteractionRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Interaction, error) {
	if len(r.findAllSet) == 0 {
		return nil, nil
	}
	return r.findAllSet[0], nil
}

func (r *fakeInteractionRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Interaction, error) {
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}
	return r.findAllSet, nil
}

func (r *fakeInteractionRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.findAllSet)), nil
}

// fakeUow wires the fake repositories into the unit of work contract.
type fakeUow struct {
	spaceRepo       *fakeSpaceRepo
	interactionRepo *fakeInteractionRepo
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) SpaceRepository() contract.SpaceRepository {
	return u.spaceRepo
}

func (u *fakeUow) InteractionRepository() contract.InteractionRepository {
	return u.interactionRepo
}

type fakeUowFactory struct {
	uow *fakeUow
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{
		uow: &fakeUow{
			spaceRepo:       newFakeSpaceRepo(),
			interactionRepo: &fakeInteractionRepo{},
		},
	}
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeQueuePublisher records tagging task payloads.
type fakeQueuePublisher struct {
	payloads [][]byte
	err      error
}

func (p *fakeQueuePublisher) Publish(_ context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}
