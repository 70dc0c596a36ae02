package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	moduledto "ariavt-server/internal/modules/settings/dto"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// AdminListSettings 获取全部系统设置。
func (s *Service) AdminListSettings() ([]model.Setting, error) {
	settings, err := s.settingStore.FindAll()
	if err != nil {
		log.WithError(err).Error("list settings failed")
		return nil, common.NewInternalError("获取配置失败")
	}

	sortSettingsForAdmin(settings)
	maskSensitiveSettings(settings)
	return settings, nil
}

// AdminUpdateSettings 批量更新系统设置，并在成功后清理配置缓存。
func (s *Service) AdminUpdateSettings(items []moduledto.UpdateSettingRequest) error {
	repoItems := make([]settingsrepo.UpdateSettingItem, 0, len(items))
	for _, item := range items {
		if err := validateSettingUpdate(item); err != nil {
			return err
		}
		repoItems = append(repoItems, settingsrepo.UpdateSettingItem{
			Key:   strings.TrimSpace(item.Key),
			Value: strings.TrimSpace(item.Value),
		})
	}

	if err := s.settingStore.UpdateSettings(repoItems, maskedSettingValue); err != nil {
		log.WithError(err).Error("update settings failed")
		return common.NewInternalError("更新失败")
	}

	s.ClearCache()
	return nil
}

func validateSettingUpdate(item moduledto.UpdateSettingRequest) error {
	if strings.TrimSpace(item.Key) == "" {
		return common.NewValidationError("配置键不能为空")
	}

	value := strings.TrimSpace(item.Value)
	switch item.Key {
	case consts.ConfigMaxUploadSize,
		consts.ConfigBatchUploadMaxFiles,
		consts.ConfigMaxRequestBodySize,
		consts.ConfigAnalysisTimeoutSeconds,
		consts.ConfigAnalysisMaxResponseSize,
		consts.ConfigRateLimitAuthBurst,
		consts.ConfigRateLimitUploadBurst,
		consts.ConfigRateLimitAnalysisBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return common.NewValidationError(item.Key + " 必须为正整数")
		}
	case consts.ConfigRateLimitAuthRPS,
		consts.ConfigRateLimitUploadRPS,
		consts.ConfigRateLimitAnalysisRPS:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return common.NewValidationError(item.Key + " 必须为正数")
		}
	case consts.ConfigRateLimitEnabled:
		if _, err := strconv.ParseBool(value); err != nil {
			return common.NewValidationError(item.Key + " 必须为 true 或 false")
		}
	}

	return nil
}
