package container

import (
	app "github.com/Ashan-264/Brain-Tumor-classifier/internal/application"
	"github.com/Ashan-264/Brain-Tumor-classifier/internal/domain/port"
)

type Container struct {
	UserService     *app.UserService
	AnalysisService *app.AnalysisService
	ChatService     *app.ChatService
}

func New(userRepo port.UserRepository, classifier port.Classifier, explainer port.Explainer, gate port.ScanGate, store port.ScanStore) *Container {
	userService := app.NewUserService(userRepo)
	analysisService := app.NewAnalysisService(userService, classifier, explainer, gate, store)
	chatService := app.NewChatService(userService, explainer)

	return &Container{
		UserService:     userService,
		AnalysisService: analysisService,
		ChatService:     chatService,
	}
}
