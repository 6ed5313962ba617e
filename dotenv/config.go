// Package dotenv loads and persists arenadl settings in a .env file using
// github.com/joho/godotenv.
package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/arenadl"
	"github.com/joho/godotenv"
)

// Keys understood in the environment and the .env file.
const (
	ChannelKey = "ARENA_CHANNEL_SLUG"
	TokenKey   = "ARENA_ACCESS_TOKEN"
)

// DefaultPath is the .env file in the working directory.
const DefaultPath = ".env"

// Settings are the values read from the environment.
type Settings struct {
	Channel string
	Token   string
}

// ConfigStore reads settings from the process environment, falling back to
// a .env file, and writes the access token back to that file.
type ConfigStore struct {
	path   string
	getenv func(string) string
}

// NewConfigStore returns a store backed by the file at path.
// A nil getenv uses os.Getenv.
func NewConfigStore(path string, getenv func(string) string) *ConfigStore {
	if path == "" {
		path = DefaultPath
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return &ConfigStore{path: path, getenv: getenv}
}

// Path returns the .env file location.
func (s *ConfigStore) Path() string {
	return s.path
}

// Load returns the current settings. The environment wins over the file.
// A missing file is not an error.
func (s *ConfigStore) Load() (Settings, error) {
	file, err := s.read()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Channel: s.lookup(ChannelKey, file),
		Token:   s.lookup(TokenKey, file),
	}, nil
}

// SaveToken stores token in the .env file, keeping any other entries.
// The file is readable by the owner only.
func (s *ConfigStore) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return arenadl.Errorf(arenadl.EINVALID, "access token required")
	}

	env, err := s.read()
	if err != nil {
		return err
	}
	env[TokenKey] = token

	if err := godotenv.Write(env, s.path); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return os.Chmod(s.path, 0600)
}

func (s *ConfigStore) read() (map[string]string, error) {
	env, err := godotenv.Read(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return env, nil
}

func (s *ConfigStore) lookup(key string, file map[string]string) string {
	if v := strings.TrimSpace(s.getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(file[key])
}
