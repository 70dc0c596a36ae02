package service

import (
	"ariavt-server/internal/common"
	moduledto "ariavt-server/internal/modules/system/dto"
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// GetServerStats 获取后台仪表盘统计数据。
func (s *Service) GetServerStats(ctx context.Context) (*moduledto.ServerStatsResponse, error) {
	counts, err := s.systemStore.CountTables(ctx)
	if err != nil {
		log.WithError(err).Error("stats: count tables")
		return nil, common.NewInternalError("统计数据失败")
	}

	totalSize, err := s.systemStore.SumImageSize(ctx)
	if err != nil {
		log.WithError(err).Error("stats: sum image size")
		return nil, common.NewInternalError("统计图片数据失败")
	}

	return &moduledto.ServerStatsResponse{
		UserCount:    counts.Users,
		ImageCount:   counts.Images,
		PatientCount: counts.Patients,
		ServiceCount: counts.Services,
		ResultCount:  counts.Results,
		StorageUsage: totalSize,
		SystemInfo: moduledto.SystemInfoResponse{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}, nil
}
