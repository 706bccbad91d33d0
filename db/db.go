package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"frappeinsight/models"
)

const (
	keyChatHistory  = "chat_history"
	keyFrappeConfig = "frappe_config"
	keyMemory       = "long_term_memory"
)

// DB is the persistent session store. Chat history, connection config and
// long-term memory are stored as JSON blobs under fixed keys and always
// cleared together on reset.
type DB struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

func (d *DB) setJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON unmarshals the value at key into out. A missing key is not an
// error; found reports whether the key existed.
func (d *DB) getJSON(key string, out interface{}) (found bool, err error) {
	err = d.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return found, err
}

func (d *DB) delete(key string) error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

func (d *DB) SaveChatHistory(messages []models.Message) error {
	return d.setJSON(keyChatHistory, messages)
}

func (d *DB) LoadChatHistory() ([]models.Message, error) {
	var messages []models.Message
	if _, err := d.getJSON(keyChatHistory, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (d *DB) SaveFrappeConfig(cfg *models.FrappeConfig) error {
	if cfg == nil {
		return d.delete(keyFrappeConfig)
	}
	return d.setJSON(keyFrappeConfig, cfg)
}

// LoadFrappeConfig returns nil when no connection config is stored (demo mode).
func (d *DB) LoadFrappeConfig() (*models.FrappeConfig, error) {
	var cfg models.FrappeConfig
	found, err := d.getJSON(keyFrappeConfig, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (d *DB) SaveMemory(facts []string) error {
	return d.setJSON(keyMemory, facts)
}

func (d *DB) LoadMemory() ([]string, error) {
	var facts []string
	if _, err := d.getJSON(keyMemory, &facts); err != nil {
		return nil, err
	}
	return facts, nil
}

// Reset removes all persisted session state in one transaction.
func (d *DB) Reset() error {
	return d.badgerDB.Update(func(txn *badger.Txn) error {
		for _, key := range []string{keyChatHistory, keyFrappeConfig, keyMemory} {
			if err := txn.Delete([]byte(key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
}
