package Client

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SessionStore persists a logged-in session between runs.
type SessionStore interface {
	Save(session *Session) error
	Load() (*Session, error)
	Clear() error
}

// FileStore keeps the session as a JSON file under the user config
// directory. Load never fails hard: a missing or corrupt file just means no
// stored session.
type FileStore struct {
	Path string
}

func NewFileStore() (*FileStore, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: filepath.Join(configDir, "odontall", "session.json")}, nil
}

type storedSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UserInfo     *UserInfo `json:"user_info,omitempty"`
}

func (fs *FileStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(fs.Path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(storedSession{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		UserInfo:     session.User,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(fs.Path, data, 0o600)
}

func (fs *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return nil, nil
	}
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, nil
	}
	if stored.AccessToken == "" {
		return nil, nil
	}
	return &Session{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		User:         stored.UserInfo,
	}, nil
}

func (fs *FileStore) Clear() error {
	err := os.Remove(fs.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore holds the session in memory only. Used in tests and by callers
// that do not want anything written to disk.
type MemoryStore struct {
	session *Session
}

func (ms *MemoryStore) Save(session *Session) error {
	copied := *session
	ms.session = &copied
	return nil
}

func (ms *MemoryStore) Load() (*Session, error) {
	if ms.session == nil {
		return nil, nil
	}
	copied := *ms.session
	return &copied, nil
}

func (ms *MemoryStore) Clear() error {
	ms.session = nil
	return nil
}
