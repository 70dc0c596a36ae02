package service

import (
	"ariavt-server/internal/model"
	platformservice "ariavt-server/internal/platform/service"
	"sort"
)

const maskedSettingValue = "**********"

var defaultSettingOrder = func() map[string]int {
	order := make(map[string]int, len(platformservice.DefaultSettings))
	for i, setting := range platformservice.DefaultSettings {
		order[setting.Key] = i
	}
	return order
}()

func maskSensitiveSettings(settings []model.Setting) {
	for i := range settings {
		if settings[i].Sensitive {
			settings[i].Value = maskedSettingValue
		}
	}
}

// sortSettingsForAdmin 已知项按默认定义顺序，其余按 key 排在后面。
func sortSettingsForAdmin(settings []model.Setting) {
	sort.SliceStable(settings, func(i, j int) bool {
		li, lok := defaultSettingOrder[settings[i].Key]
		ri, rok := defaultSettingOrder[settings[j].Key]
		switch {
		case lok && rok:
			return li < ri
		case lok != rok:
			return lok
		default:
			return settings[i].Key < settings[j].Key
		}
	})
}
