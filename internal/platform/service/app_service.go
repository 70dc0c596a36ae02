package service

import (
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"sync"
)

// AppService 跨模块共享的运行时能力：数据库配置项的读取与缓存。
type AppService struct {
	settingStore  settingsrepo.SettingStore
	settingsCache sync.Map
}

func NewAppService(settingStore settingsrepo.SettingStore) *AppService {
	return &AppService{settingStore: settingStore}
}
