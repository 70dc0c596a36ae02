package modules

import (
	"ariavt-server/internal/modules/analysis"
	analysisrepo "ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/modules/auth"
	"ariavt-server/internal/modules/image"
	imagerepo "ariavt-server/internal/modules/image/repo"
	"ariavt-server/internal/modules/patient"
	patientrepo "ariavt-server/internal/modules/patient/repo"
	"ariavt-server/internal/modules/settings"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/modules/system"
	systemrepo "ariavt-server/internal/modules/system/repo"
	"ariavt-server/internal/modules/user"
	userrepo "ariavt-server/internal/modules/user/repo"
	"ariavt-server/internal/platform/selection"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/storage"
)

type AppModules struct {
	Auth     *auth.Module
	User     *user.Module
	Image    *image.Module
	Analysis *analysis.Module
	Patient  *patient.Module
	Settings *settings.Module
	System   *system.Module
}

// Stores 各模块的持久化依赖。
type Stores struct {
	Users    userrepo.UserStore
	Images   imagerepo.ImageStore
	Services analysisrepo.ServiceStore
	Results  analysisrepo.ResultStore
	Patients patientrepo.PatientStore
	Settings settingsrepo.SettingStore
	System   systemrepo.SystemStore
}

func New(
	appService *platformservice.AppService,
	stores Stores,
	files storage.Storage,
	selections selection.Store,
) *AppModules {
	userService := user.NewService(appService, stores.Users)
	analysisModule := analysis.New(appService, stores.Services, stores.Results, files)
	imageModule := image.New(appService, stores.Images, files, analysisModule.Results, selections)
	userModule := user.New(userService, imageModule.Service)

	return &AppModules{
		Auth:     auth.New(appService, stores.Users),
		User:     userModule,
		Image:    imageModule,
		Analysis: analysisModule,
		Patient:  patient.New(stores.Patients),
		Settings: settings.New(appService, stores.Settings),
		System:   system.New(stores.System),
	}
}
