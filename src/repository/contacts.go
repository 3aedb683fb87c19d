package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	cfg "github.com/ruopp93-dot/INKCRAFTE/src/configuration"
)

type (
	// ContactRecord is the single contact/profile document. Avatar holds
	// the asset ref (a filename for the local store, an object key for
	// the remote one); AvatarPublicID is set only for remote assets.
	ContactRecord struct {
		Name           string `json:"name"`
		Phone          string `json:"phone"`
		Instagram      string `json:"instagram"`
		Telegram       string `json:"telegram"`
		Whatsapp       string `json:"whatsapp"`
		Avatar         string `json:"avatar"`
		AvatarPublicID string `json:"avatarPublicId"`
	}

	// ContactPatch carries a partial update; nil fields keep their prior
	// values. Avatar fields are deliberately absent: they change only
	// through SetAvatar/ClearAvatar.
	ContactPatch struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		Instagram *string `json:"instagram"`
		Telegram  *string `json:"telegram"`
		Whatsapp  *string `json:"whatsapp"`
	}

	ContactDB interface {
		Load() ContactRecord
		Save(record ContactRecord) error
		Update(patch ContactPatch) (ContactRecord, error)
		SetAvatar(ref, publicID string) (ContactRecord, error)
		ClearAvatar() (ContactRecord, error)
	}

	// FileContactDB keeps the record in a single JSON file, overwritten
	// whole on every save. Writers inside one process are serialized by
	// the mutex; concurrent processes are last-write-wins.
	FileContactDB struct {
		mu   sync.Mutex
		path string
	}

	dbDocument struct {
		Contact ContactRecord `json:"contact"`
	}
)

// DefaultContact is the record created on first boot and the fallback
// when the backing file is unreadable.
func DefaultContact() ContactRecord {
	return ContactRecord{
		Name:  "Тату-мастер",
		Phone: "+7 000 000-00-00",
	}
}

func NewContactDataBase(config *cfg.Properties) (ContactDB, error) {
	if config == nil {
		return nil, fmt.Errorf("config is not valid")
	}
	if err := os.MkdirAll(config.Store.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("can not create data dir: %w", err)
	}
	db := &FileContactDB{path: filepath.Join(config.Store.DataDir, "db.json")}
	if _, err := os.Stat(db.path); os.IsNotExist(err) {
		if err := db.Save(DefaultContact()); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Load returns the on-disk record, falling back to defaults when the
// file is absent or unreadable.
func (f *FileContactDB) Load() ContactRecord {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("can not read %s, using defaults: %v", f.path, err)
		}
		return DefaultContact()
	}
	var doc dbDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("invalid contact db %s, using defaults: %v", f.path, err)
		return DefaultContact()
	}
	return doc.Contact
}

func (f *FileContactDB) Save(record ContactRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(record)
}

func (f *FileContactDB) write(record ContactRecord) error {
	data, err := json.MarshalIndent(dbDocument{Contact: record}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("can not write %s: %w", f.path, err)
	}
	return nil
}

// Update merges patch into the current record. Unset fields keep their
// prior values; avatar fields are never settable through this path.
func (f *FileContactDB) Update(patch ContactPatch) (ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record := f.loadLocked()
	if patch.Name != nil {
		record.Name = *patch.Name
	}
	if patch.Phone != nil {
		record.Phone = *patch.Phone
	}
	if patch.Instagram != nil {
		record.Instagram = *patch.Instagram
	}
	if patch.Telegram != nil {
		record.Telegram = *patch.Telegram
	}
	if patch.Whatsapp != nil {
		record.Whatsapp = *patch.Whatsapp
	}
	return record, f.write(record)
}

func (f *FileContactDB) SetAvatar(ref, publicID string) (ContactRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record := f.loadLocked()
	record.Avatar = ref
	record.AvatarPublicID = publicID
	return record, f.write(record)
}

func (f *FileContactDB) ClearAvatar() (ContactRecord, error) {
	return f.SetAvatar("", "")
}

func (f *FileContactDB) loadLocked() ContactRecord {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return DefaultContact()
	}
	var doc dbDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("invalid contact db %s, using defaults: %v", f.path, err)
		return DefaultContact()
	}
	return doc.Contact
}
