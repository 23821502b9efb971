// Package exporter writes the household dataset out as a flat CSV history or
// as a full JSON backup.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatJSON}

// Row is one CSV line. Names fall back to the raw id when the referenced
// entity no longer exists.
type Row struct {
	Date        string `csv:"Date"`
	AccountName string `csv:"Account Name"`
	Owner       string `csv:"Owner"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
	Currency    string `csv:"Currency"`
	Note        string `csv:"Note"`
	ID          string `csv:"ID"`
}

// Exporter renders datasets. now stamps JSON backups.
type Exporter struct {
	delimiter rune
	now       func() time.Time
	logger    logging.Logger
}

// New returns an Exporter writing CSV with the given delimiter.
func New(delimiter rune, now func() time.Time, logger logging.Logger) *Exporter {
	if delimiter == 0 {
		delimiter = ','
	}
	if now == nil {
		now = time.Now
	}
	return &Exporter{delimiter: delimiter, now: now, logger: logger}
}

// Rows flattens the records of ds, joining each one to its account, owner
// and category.
func Rows(ds *models.Dataset) []Row {
	rows := make([]Row, 0, len(ds.Records))
	for _, r := range ds.Records {
		row := Row{
			Date:        r.Date.String(),
			AccountName: r.AccountID,
			Amount:      r.Amount.String(),
			Note:        r.Note,
			ID:          r.ID,
		}
		if a, ok := ds.Account(r.AccountID); ok {
			row.AccountName = nameOr(a.Name, a.ID)
			row.Currency = string(a.Currency)
			row.Owner = a.OwnerID
			if o, ok := ds.Owner(a.OwnerID); ok {
				row.Owner = nameOr(o.Name, o.ID)
			}
			row.Category = a.CategoryID
			if c, ok := ds.Category(a.CategoryID); ok {
				row.Category = nameOr(c.Name, c.ID)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func nameOr(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

// WriteCSV writes the flattened history of ds to w.
func (e *Exporter) WriteCSV(w io.Writer, ds *models.Dataset) error {
	rows := Rows(ds)
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter

	if len(rows) == 0 {
		// gocsv writes nothing for an empty slice; keep the header
		if err := csvWriter.Write([]string{"Date", "Account Name", "Owner", "Category", "Amount", "Currency", "Note", "ID"}); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteJSON writes a full backup document of ds to w.
func (e *Exporter) WriteJSON(w io.Writer, ds *models.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(models.NewBackup(ds, e.now())); err != nil {
		return fmt.Errorf("error writing backup: %w", err)
	}
	return nil
}

// Write renders ds in format to w.
func (e *Exporter) Write(w io.Writer, ds *models.Dataset, format string) error {
	switch format {
	case FormatCSV:
		return e.WriteCSV(w, ds)
	case FormatJSON:
		return e.WriteJSON(w, ds)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteFile renders ds in format to path, creating parent directories.
func (e *Exporter) WriteFile(path string, ds *models.Dataset, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionDataFile)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil && e.logger != nil {
			e.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := e.Write(file, ds, format); err != nil {
		return err
	}
	if e.logger != nil {
		e.logger.Info("Exported dataset",
			logging.Field{Key: logging.FieldOutputFile, Value: path},
			logging.Field{Key: logging.FieldFormat, Value: format},
			logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	}
	return nil
}

// DefaultFileName is the file name offered for an export made at now, such as
// fat_full_backup_2024-06-01.json.
func DefaultFileName(format string, now time.Time) string {
	prefix := "family_asset_tracker_"
	if format == FormatJSON {
		prefix = "fat_full_backup_"
	}
	return prefix + now.Format("2006-01-02") + "." + format
}
