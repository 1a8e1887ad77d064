package repository

import (
	"errors"

	"go-pos-dashboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(key string) (string, error)
	GetAll() (map[string]string, error)
	Set(key, value string) error
	TaxConfig() (model.TaxConfig, error)
	SeedDefaults() error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Get(key string) (string, error) {
	var setting model.Setting
	if err := r.db.First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *settingRepo) GetAll() (map[string]string, error) {
	var settings []model.Setting
	if err := r.db.Find(&settings).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}

func (r *settingRepo) Set(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}

func (r *settingRepo) TaxConfig() (model.TaxConfig, error) {
	enabled, err := r.Get(model.SettingGSTEnabled)
	if err != nil {
		return model.TaxConfig{}, err
	}
	percent, err := r.Get(model.SettingGSTPercent)
	if err != nil {
		return model.TaxConfig{}, err
	}
	return model.TaxConfigFrom(enabled, percent), nil
}

// SeedDefaults creates the default settings rows if they don't exist
func (r *settingRepo) SeedDefaults() error {
	for _, s := range model.DefaultSettings {
		var existing model.Setting
		if err := r.db.First(&existing, "key = ?", s.Key).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&s).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
