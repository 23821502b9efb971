package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/validation"

	"gopkg.in/yaml.v3"
)

// FileStore keeps the dataset as a single backup document. Files ending in
// .yaml or .yml are YAML, anything else is JSON.
type FileStore struct {
	path   string
	yaml   bool
	logger logging.Logger
	now    func() time.Time
}

// NewFileStore returns a FileStore for path. The file is created on the first
// Save.
func NewFileStore(path string, logger logging.Logger, now func() time.Time) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path must not be empty")
	}
	if now == nil {
		now = time.Now
	}
	ext := strings.ToLower(filepath.Ext(path))
	return &FileStore{
		path:   path,
		yaml:   ext == ".yaml" || ext == ".yml",
		logger: logger,
		now:    now,
	}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the backup document. A missing file is an empty dataset.
func (s *FileStore) Load(_ context.Context) (*models.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.debug("Data file not found, starting empty")
		return models.NewDataset(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading data file %s: %w", s.path, err)
	}

	if info, err := os.Stat(s.path); err == nil && s.logger != nil {
		if permErr := validation.IsValidFilePermissions(info.Mode().Perm()); permErr != nil {
			s.logger.Warn(permErr.Error(), logging.Field{Key: logging.FieldFile, Value: s.path})
		}
	}

	var backup models.Backup
	if len(strings.TrimSpace(string(data))) > 0 {
		if s.yaml {
			err = yaml.Unmarshal(data, &backup)
		} else {
			err = json.Unmarshal(data, &backup)
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing data file %s: %w", s.path, err)
		}
	}

	ds := backup.Dataset()
	s.debug("Loaded dataset", logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	return ds, nil
}

// Save writes the dataset atomically: to a temporary file in the same
// directory, then renamed over the previous one. Datasets with duplicate
// ids are refused, as the SQLite backend refuses them.
func (s *FileStore) Save(_ context.Context, ds *models.Dataset) error {
	if ds == nil {
		ds = models.NewDataset()
	}
	if err := validation.UniqueIDs(ds); err != nil {
		return err
	}
	backup := models.NewBackup(ds, s.now())

	var data []byte
	var err error
	if s.yaml {
		data, err = yaml.Marshal(backup)
	} else {
		data, err = json.MarshalIndent(backup, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error marshaling dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing data file: %w", err)
	}
	if err := tmp.Chmod(models.PermissionDataFile); err != nil {
		tmp.Close()
		return fmt.Errorf("error setting data file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing data file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("error replacing data file: %w", err)
	}

	s.debug("Saved dataset", logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) debug(msg string, fields ...logging.Field) {
	if s.logger == nil {
		return
	}
	fields = append(fields, logging.Field{Key: logging.FieldFile, Value: s.path})
	s.logger.Debug(msg, fields...)
}
