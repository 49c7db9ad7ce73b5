package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Empty(t, u.History)
	require.Nil(t, u.LastAnalysis)
}

func TestUser_AppendMessage(t *testing.T) {
	u := NewUser(1, 10)
	u.AppendMessage(RoleUser, "что это за класс?")
	u.AppendMessage(RoleAssistant, "глиома")

	require.Len(t, u.History, 2)
	require.Equal(t, RoleUser, u.History[0].Role)
	require.Equal(t, RoleAssistant, u.History[1].Role)
	require.Equal(t, "глиома", u.History[1].Content)
}

func TestUser_SetAnalysis(t *testing.T) {
	u := NewUser(1, 10)
	a := &ScanAnalysis{FileName: "scan.jpg"}
	u.SetAnalysis(a)
	require.Same(t, a, u.LastAnalysis)
}
