package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go_5_kanji_keep/internal/model"
	"go_5_kanji_keep/internal/preference"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStorageRepository はクライアントローカルの key/value ストアです。
// preference.Persister を満たします。
type LocalStorageRepository struct {
	mu sync.Mutex // sqlite は書き込みが直列なので、ここでまとめて直列化する
	db *gorm.DB
}

func NewLocalStorageRepository(db *gorm.DB) *LocalStorageRepository {
	return &LocalStorageRepository{db: db}
}

func (r *LocalStorageRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var item model.LocalStorageItem
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, preference.ErrNotFound
		}
		return nil, fmt.Errorf("LocalStorageRepository.Load: %w", result.Error)
	}
	return []byte(item.Value), nil
}

func (r *LocalStorageRepository) Save(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := model.LocalStorageItem{Key: key, Value: string(value)}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&item)
	if result.Error != nil {
		return fmt.Errorf("LocalStorageRepository.Save: %w", result.Error)
	}
	return nil
}

func (r *LocalStorageRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.LocalStorageItem{}).Error; err != nil {
		return fmt.Errorf("LocalStorageRepository.Delete: %w", err)
	}
	return nil
}

var _ preference.Persister = (*LocalStorageRepository)(nil)
