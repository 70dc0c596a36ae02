package service

import (
	"context"
	"testing"

	"ariavt-server/internal/model"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	modulerepo "ariavt-server/internal/modules/user/repo"
	"ariavt-server/internal/platform/access"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/testutils"

	"gorm.io/gorm"
)

type recordingPurger struct {
	ids []uint
}

func (p *recordingPurger) PurgeUser(_ context.Context, userID uint) error {
	p.ids = append(p.ids, userID)
	return nil
}

func setupTestService(t *testing.T) (*Service, *gorm.DB, *recordingPurger) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	svc := New(platformservice.NewAppService(settingsrepo.NewSettingRepository(gdb)), modulerepo.NewUserRepository(gdb))
	purger := &recordingPurger{}
	svc.SetImageService(purger)
	return svc, gdb, purger
}

func actorOf(u *model.User) access.Actor {
	return access.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}
