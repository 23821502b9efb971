package models

import "time"

// BackupVersion is the version written in the metadata of full backups.
const BackupVersion = "2.0"

// BackupMetadata describes when and by which format version a backup was
// written.
type BackupMetadata struct {
	Version    string `json:"version" yaml:"version"`
	Timestamp  int64  `json:"timestamp" yaml:"timestamp"`
	ExportDate string `json:"exportDate" yaml:"exportDate"`
}

// Backup is the versioned full backup document. It is both the on-disk
// format of the file store and the JSON export.
type Backup struct {
	Metadata   BackupMetadata `json:"metadata" yaml:"metadata"`
	Records    []Record       `json:"records" yaml:"records"`
	Accounts   []Account      `json:"accounts" yaml:"accounts"`
	Categories []Category     `json:"categories" yaml:"categories"`
	Owners     []Owner        `json:"owners" yaml:"owners"`
}

// NewBackup wraps a copy of ds in a backup document stamped with now.
func NewBackup(ds *Dataset, now time.Time) Backup {
	c := ds.Clone()
	return Backup{
		Metadata: BackupMetadata{
			Version:    BackupVersion,
			Timestamp:  now.UnixMilli(),
			ExportDate: now.UTC().Format(time.RFC3339),
		},
		Records:    c.Records,
		Accounts:   c.Accounts,
		Categories: c.Categories,
		Owners:     c.Owners,
	}
}

// Dataset returns the entities of the backup. Missing collections come back
// empty, never nil.
func (b Backup) Dataset() *Dataset {
	ds := NewDataset()
	ds.Records = append(ds.Records, b.Records...)
	ds.Accounts = append(ds.Accounts, b.Accounts...)
	ds.Categories = append(ds.Categories, b.Categories...)
	ds.Owners = append(ds.Owners, b.Owners...)
	return ds
}
