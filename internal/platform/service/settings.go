package service

import (
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const valueNotFound = "||__NOT_FOUND__||"

var DefaultSettings = []model.Setting{
	{Key: consts.ConfigMaxUploadSize, Value: "20", Desc: "单个文件最大大小 (MB)", Category: "upload"},
	{Key: consts.ConfigAllowFileExtensions, Value: ".jpg,.jpeg,.png,.gif,.webp,.bmp,.tif,.tiff", Desc: "允许上传的文件扩展名", Category: "upload"},
	{Key: consts.ConfigBatchUploadMaxFiles, Value: "50", Desc: "批量上传单次最多文件数", Category: "upload"},
	{Key: consts.ConfigMaxRequestBodySize, Value: "2", Desc: "非文件上传接口最大请求体限制 (MB)", Category: "security"},
	{Key: consts.ConfigRateLimitEnabled, Value: "true", Desc: "是否开启接口限流", Category: "security"},
	{Key: consts.ConfigRateLimitAuthRPS, Value: "0.5", Desc: "认证接口每秒请求限制 (RPS)", Category: "security"},
	{Key: consts.ConfigRateLimitAuthBurst, Value: "5", Desc: "认证接口突发请求限制", Category: "security"},
	{Key: consts.ConfigRateLimitUploadRPS, Value: "1.0", Desc: "上传接口每秒请求限制 (RPS)", Category: "security"},
	{Key: consts.ConfigRateLimitUploadBurst, Value: "10", Desc: "上传接口突发请求限制", Category: "security"},
	{Key: consts.ConfigRateLimitAnalysisRPS, Value: "2.0", Desc: "分析接口每秒请求限制 (RPS)", Category: "security"},
	{Key: consts.ConfigRateLimitAnalysisBurst, Value: "10", Desc: "分析接口突发请求限制", Category: "security"},
	{Key: consts.ConfigAnalysisTimeoutSeconds, Value: "30", Desc: "调用外部分析服务的超时时间 (秒)", Category: "analysis"},
	{Key: consts.ConfigAnalysisMaxResponseSize, Value: "50", Desc: "外部分析服务返回内容最大大小 (MB)", Category: "analysis"},
}

func (s *AppService) ClearCache() {
	s.settingsCache.Range(func(key, value interface{}) bool {
		s.settingsCache.Delete(key)
		return true
	})
}

// InitializeSettings 启动时补齐默认配置项。
func (s *AppService) InitializeSettings() error {
	if err := s.settingStore.InitializeDefaults(DefaultSettings); err != nil {
		return err
	}
	s.ClearCache()
	return nil
}

func (s *AppService) GetString(key string) string {
	if val, ok := s.settingsCache.Load(key); ok {
		if strVal, ok := val.(string); ok {
			if strVal == valueNotFound {
				return ""
			}
			return strVal
		}
		s.settingsCache.Delete(key)
	}

	setting, err := s.settingStore.FindByKey(key)
	if err == nil {
		s.settingsCache.Store(key, setting.Value)
		return setting.Value
	}

	for _, def := range DefaultSettings {
		if def.Key != key {
			continue
		}
		row := def
		// 并发首读可能重复插入，主键冲突可忽略
		if createErr := s.settingStore.Create(&row); createErr != nil {
			log.WithError(createErr).WithField("key", key).Debug("default setting insert skipped")
		}
		s.settingsCache.Store(key, def.Value)
		return def.Value
	}

	s.settingsCache.Store(key, valueNotFound)
	return ""
}

func (s *AppService) GetInt(key string) int {
	val, err := strconv.Atoi(s.GetString(key))
	if err != nil {
		return 0
	}
	return val
}

func (s *AppService) GetInt64(key string) int64 {
	val, err := strconv.ParseInt(s.GetString(key), 10, 64)
	if err != nil {
		return 0
	}
	return val
}

func (s *AppService) GetFloat64(key string) float64 {
	val, err := strconv.ParseFloat(s.GetString(key), 64)
	if err != nil {
		return 0
	}
	return val
}

// GetBool 支持 strconv.ParseBool 接受的全部写法，解析失败为 false。
func (s *AppService) GetBool(key string) bool {
	val, err := strconv.ParseBool(s.GetString(key))
	if err != nil {
		return false
	}
	return val
}

// MaxUploadBytes 单文件上传上限，配置非法时回退为 20MB。
func (s *AppService) MaxUploadBytes() int64 {
	mb := s.GetInt64(consts.ConfigMaxUploadSize)
	if mb <= 0 {
		mb = 20
	}
	return mb << 20
}
