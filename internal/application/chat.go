package app

import (
	"context"
	"errors"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

// ErrNoAnalysis — в сессии пользователя ещё нет разобранного снимка.
var ErrNoAnalysis = errors.New("no scan analysis in session")

// ChatService отвечает на вопросы пользователя об итогах анализа.
type ChatService struct {
	users     *UserService
	explainer port.Explainer
}

func NewChatService(users *UserService, explainer port.Explainer) *ChatService {
	return &ChatService{users: users, explainer: explainer}
}

// Ask передаёт вопрос ассистенту вместе с контекстом последнего анализа
// и дописывает обмен в журнал диалога.
func (s *ChatService) Ask(ctx context.Context, userID, chatID int64, question string) (string, error) {
	if s.explainer == nil {
		return "", errors.New("explainer is not configured")
	}

	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return "", err
	}
	if user.LastAnalysis == nil {
		return "", ErrNoAnalysis
	}

	answer, err := s.explainer.Chat(ctx, user.LastAnalysis, user.History, question)
	if err != nil {
		return "", err
	}

	if err := s.users.AppendExchange(ctx, userID, chatID, question, answer); err != nil {
		return "", err
	}
	return answer, nil
}
