package mapper

import (
	"doc-assistant-be/internal/entity"
	"doc-assistant-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:          s.Id,
		UserId:      s.UserId,
		SessionName: s.SessionName,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:          s.Id,
		UserId:      s.UserId,
		SessionName: s.SessionName,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *ChatMapper) ChatLogToEntity(l *model.ChatLog) *entity.ChatLog {
	if l == nil {
		return nil
	}
	return &entity.ChatLog{
		Id:          l.Id,
		SessionId:   l.SessionId,
		UserMessage: l.UserMessage,
		BotResponse: l.BotResponse,
		Timestamp:   l.Timestamp,
	}
}

func (m *ChatMapper) ChatLogToModel(l *entity.ChatLog) *model.ChatLog {
	if l == nil {
		return nil
	}
	return &model.ChatLog{
		Id:          l.Id,
		SessionId:   l.SessionId,
		UserMessage: l.UserMessage,
		BotResponse: l.BotResponse,
		Timestamp:   l.Timestamp,
	}
}
