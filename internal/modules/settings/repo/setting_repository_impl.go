package repo

import (
	"ariavt-server/internal/model"
	"fmt"

	"gorm.io/gorm"
)

type SettingRepository struct {
	db *gorm.DB
}

func (r *SettingRepository) InitializeDefaults(defaults []model.Setting) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range defaults {
			var count int64
			if err := tx.Model(&model.Setting{}).Where(map[string]interface{}{"key": def.Key}).Count(&count).Error; err != nil {
				return fmt.Errorf("count setting %q: %w", def.Key, err)
			}
			if count == 0 {
				row := def
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("create setting %q: %w", def.Key, err)
				}
				continue
			}
			if err := tx.Model(&model.Setting{}).Where(map[string]interface{}{"key": def.Key}).Updates(map[string]interface{}{
				"category":  def.Category,
				"desc":      def.Desc,
				"sensitive": def.Sensitive,
			}).Error; err != nil {
				return fmt.Errorf("sync setting metadata %q: %w", def.Key, err)
			}
		}
		return nil
	})
}

func (r *SettingRepository) FindByKey(key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.Where(map[string]interface{}{"key": key}).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepository) Create(setting *model.Setting) error {
	return r.db.Create(setting).Error
}

func (r *SettingRepository) FindAll() ([]model.Setting, error) {
	var settings []model.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings 在一个事务中逐项 upsert；敏感项提交掩码值时视为未修改。
func (r *SettingRepository) UpdateSettings(items []UpdateSettingItem, maskedValue string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if item.Value == maskedValue {
				var current model.Setting
				if err := tx.Where(map[string]interface{}{"key": item.Key}).First(&current).Error; err == nil && current.Sensitive {
					continue
				}
			}

			var count int64
			if err := tx.Model(&model.Setting{}).Where(map[string]interface{}{"key": item.Key}).Count(&count).Error; err != nil {
				return fmt.Errorf("count setting %q: %w", item.Key, err)
			}
			if count == 0 {
				if err := tx.Create(&model.Setting{Key: item.Key, Value: item.Value}).Error; err != nil {
					return fmt.Errorf("create setting %q: %w", item.Key, err)
				}
				continue
			}
			if err := tx.Model(&model.Setting{}).Where(map[string]interface{}{"key": item.Key}).Update("value", item.Value).Error; err != nil {
				return fmt.Errorf("update setting %q: %w", item.Key, err)
			}
		}
		return nil
	})
}
