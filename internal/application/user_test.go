package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/entity"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/infrastructure/storage"
)

func TestUserService_BeginScanAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginScan(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingScan, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_AttachAnalysis(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	a := &entity.ScanAnalysis{FileName: "scan.jpg"}
	user, err := svc.AttachAnalysis(ctx, 3, 30, a)
	require.NoError(t, err)
	require.Equal(t, entity.StateChatting, user.State)
	require.Same(t, a, user.LastAnalysis)
}
