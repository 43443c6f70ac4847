package storage

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted snapshot row.
type Entry struct {
	ClientID string `gorm:"primaryKey;type:varchar(64)"`
	Scope    string `gorm:"primaryKey;type:varchar(16)"`
	Key      string `gorm:"primaryKey;type:varchar(64);column:entry_key"`
	Value    string `gorm:"type:text"`
}

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db: db,
	}
}

// Get returns the value stored under the key.
func (s *GORMStore) Get(clientID string, scope Scope, key string) (string, error) {
	var entry Entry
	err := s.db.First(&entry, "client_id = ? AND scope = ? AND entry_key = ?", clientID, string(scope), key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("%s/%s for client %s: %w", scope, key, clientID, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read snapshot %s/%s: %w", scope, key, err)
	}
	return entry.Value, nil
}

// Set upserts the value stored under the key.
func (s *GORMStore) Set(clientID string, scope Scope, key, value string) error {
	entry := Entry{
		ClientID: clientID,
		Scope:    string(scope),
		Key:      key,
		Value:    value,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "scope"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s/%s: %w", scope, key, err)
	}
	return nil
}

// Delete removes a single entry. Deleting an absent entry is not an error.
func (s *GORMStore) Delete(clientID string, scope Scope, key string) error {
	err := s.db.Delete(&Entry{}, "client_id = ? AND scope = ? AND entry_key = ?", clientID, string(scope), key).Error
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s/%s: %w", scope, key, err)
	}
	return nil
}

// ClearScope removes every entry the client holds in the scope.
func (s *GORMStore) ClearScope(clientID string, scope Scope) error {
	err := s.db.Delete(&Entry{}, "client_id = ? AND scope = ?", clientID, string(scope)).Error
	if err != nil {
		return fmt.Errorf("failed to clear %s scope: %w", scope, err)
	}
	return nil
}
