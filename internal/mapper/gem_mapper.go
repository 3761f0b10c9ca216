package mapper

import (
	"ai-classroom-be/internal/dto"
	"ai-classroom-be/internal/entity"
)

type GemMapper struct{}

func NewGemMapper() *GemMapper {
	return &GemMapper{}
}

func (m *GemMapper) ToEntity(p dto.GemPayload) entity.Gem {
	return entity.Gem{
		Id:                 p.Id,
		PersonaName:        p.PersonaName,
		SystemInstructions: p.SystemInstructions,
		OpeningLine:        p.OpeningLine,
		KnowledgeBase:      p.KnowledgeBase,
		Constraints:        p.Constraints,
	}
}

func (m *GemMapper) ToPayload(g entity.Gem) dto.GemPayload {
	return dto.GemPayload{
		Id:                 g.Id,
		PersonaName:        g.PersonaName,
		SystemInstructions: g.SystemInstructions,
		OpeningLine:        g.OpeningLine,
		KnowledgeBase:      g.KnowledgeBase,
		Constraints:        g.Constraints,
	}
}
