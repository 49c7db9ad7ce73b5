package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/infrastructure/storage"
)

func TestChatService_Ask(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	users := NewUserService(repo)
	svc := NewChatService(users, &stubExplainer{answer: "опухоль в области гипофиза"})
	ctx := context.Background()

	_, err := users.AttachAnalysis(ctx, 1, 10, &entity.ScanAnalysis{
		Prediction: entity.Prediction{Label: "Pituitary", Confidence: 0.9},
	})
	require.NoError(t, err)

	answer, err := svc.Ask(ctx, 1, 10, "где находится опухоль?")
	require.NoError(t, err)
	require.Equal(t, "опухоль в области гипофиза", answer)

	// обмен дописан в журнал
	user, err := users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, user.History, 2)
	require.Equal(t, entity.RoleUser, user.History[0].Role)
	require.Equal(t, "где находится опухоль?", user.History[0].Content)
	require.Equal(t, entity.RoleAssistant, user.History[1].Role)
}

func TestChatService_NoAnalysis(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	users := NewUserService(repo)
	svc := NewChatService(users, &stubExplainer{answer: "ответ"})

	_, err := svc.Ask(context.Background(), 2, 20, "что на снимке?")
	require.ErrorIs(t, err, ErrNoAnalysis)
}

func TestChatService_NoExplainer(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	users := NewUserService(repo)
	svc := NewChatService(users, nil)

	_, err := svc.Ask(context.Background(), 1, 10, "вопрос")
	require.Error(t, err)
}
