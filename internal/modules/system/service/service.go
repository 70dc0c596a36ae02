package service

import (
	"ariavt-server/internal/modules/system/repo"
)

type Service struct {
	systemStore repo.SystemStore
}

func New(systemStore repo.SystemStore) *Service {
	return &Service{systemStore: systemStore}
}
