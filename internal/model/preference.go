// internal/model/preference.go
package model

// PreferencesStorageKey は設定を永続化するときの固定キー
const PreferencesStorageKey = "app-storage"

// Preferences はクライアントごとの表示設定です。
type Preferences struct {
	DarkMode  bool `json:"darkMode"`
	StudyMode bool `json:"studyMode"`
}

// LocalStorageItem はクライアントローカルのキー・バリューストアの1行です (local_storage テーブル)
type LocalStorageItem struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli"`
}

func (LocalStorageItem) TableName() string {
	return "local_storage"
}
