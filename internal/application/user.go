package app

import (
	"context"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) BeginScan(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingScan)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// AttachAnalysis сохраняет результат анализа в сессии и переводит
// пользователя в режим диалога.
func (s *UserService) AttachAnalysis(ctx context.Context, userID, chatID int64, a *entity.ScanAnalysis) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetAnalysis(a)
	user.SetState(entity.StateChatting)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AppendExchange дописывает пару вопрос-ответ в журнал диалога.
func (s *UserService) AppendExchange(ctx context.Context, userID, chatID int64, question, answer string) error {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return err
	}

	user.AppendMessage(entity.RoleUser, question)
	user.AppendMessage(entity.RoleAssistant, answer)
	return s.repo.Save(ctx, user)
}
