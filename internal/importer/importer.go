// Package importer reads household data from the two document shapes the
// tracker has written over time: the versioned full backup and the older flat
// array of records.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/ids"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/validation"

	"github.com/shopspring/decimal"
)

// Format identifies the shape of an imported document.
type Format string

const (
	FormatBackup Format = "backup"
	FormatLegacy Format = "legacy"
)

// Importer parses import documents. Entities created while normalizing
// legacy records draw their ids from the injected generator.
type Importer struct {
	ids    ids.Generator
	logger logging.Logger
}

// New returns an Importer. A nil generator uses random UUIDs.
func New(gen ids.Generator, logger logging.Logger) *Importer {
	if gen == nil {
		gen = ids.UUID()
	}
	return &Importer{ids: gen, logger: logger}
}

// ImportFile parses the document at path.
func (im *Importer) ImportFile(path string) (*models.Dataset, Format, error) {
	if err := validation.IsValidInputFile(path); err != nil {
		return nil, "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("error opening import file: %w", err)
	}
	defer f.Close()
	return im.Parse(f, path)
}

// Parse reads a full backup object or a legacy record array from r. source
// names the input in errors and logs.
func (im *Importer) Parse(r io.Reader, source string) (*models.Dataset, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &apperrors.ImportFormatError{Source: source, Reason: "cannot read input", Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, "", &apperrors.ImportFormatError{Source: source, Reason: "input is empty"}
	}

	var (
		ds     *models.Dataset
		format Format
	)
	switch data[0] {
	case '{':
		format = FormatBackup
		ds, err = im.parseBackup(data, source)
	case '[':
		format = FormatLegacy
		ds, err = im.parseLegacy(data, source)
	default:
		return nil, "", &apperrors.ImportFormatError{Source: source, Reason: "expected a JSON object or array"}
	}
	if err != nil {
		return nil, "", err
	}
	if err := validation.UniqueIDs(ds); err != nil {
		return nil, "", &apperrors.ImportFormatError{Source: source, Reason: "duplicate ids", Err: err}
	}

	for _, w := range validation.Dataset(ds) {
		im.warn(w.Error(),
			logging.Field{Key: logging.FieldEntity, Value: w.Entity},
			logging.Field{Key: logging.FieldEntityID, Value: w.EntityID},
			logging.Field{Key: logging.FieldMissingID, Value: w.MissingID})
	}
	im.info("Imported dataset",
		logging.Field{Key: logging.FieldInputFile, Value: source},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	return ds, format, nil
}

func (im *Importer) parseBackup(data []byte, source string) (*models.Dataset, error) {
	var probe struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &apperrors.ImportFormatError{Source: source, Reason: "malformed backup", Err: err}
	}
	if err := checkFirstItem(probe.Records, source); err != nil {
		return nil, err
	}

	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, &apperrors.ImportFormatError{Source: source, Reason: "malformed backup", Err: err}
	}
	if v := backup.Metadata.Version; v != "" && v != models.BackupVersion {
		im.warn("Unexpected backup version",
			logging.Field{Key: logging.FieldInputFile, Value: source},
			logging.Field{Key: "version", Value: v})
	}
	for _, r := range backup.Records {
		if r.Amount.IsNegative() {
			return nil, &apperrors.ImportFormatError{Source: source, Reason: fmt.Sprintf("record %s has a negative amount", r.ID)}
		}
	}
	return backup.Dataset(), nil
}

// legacyRecord is a record as written before accounts, categories and owners
// became entities: they are carried by name on every record. Records that
// already carry an accountId are taken as is.
type legacyRecord struct {
	ID          string          `json:"id"`
	Date        models.Date     `json:"date"`
	AccountID   string          `json:"accountId"`
	AccountName string          `json:"accountName"`
	Owner       string          `json:"owner"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Note        string          `json:"note"`
	Timestamp   json.Number     `json:"timestamp"`
}

type accountKey struct {
	name, owner string
}

func (im *Importer) parseLegacy(data []byte, source string) (*models.Dataset, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &apperrors.ImportFormatError{Source: source, Reason: "malformed record array", Err: err}
	}
	if err := checkFirstItem(raw, source); err != nil {
		return nil, err
	}

	var items []legacyRecord
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &apperrors.ImportFormatError{Source: source, Reason: "malformed record array", Err: err}
	}

	l := ledger.New(nil, im.ids, nil)
	accounts := make(map[accountKey]string)
	for i, it := range items {
		if it.Amount.IsNegative() {
			return nil, &apperrors.ImportFormatError{Source: source, Reason: fmt.Sprintf("record %d has a negative amount", i)}
		}
		if it.Date.IsZero() {
			return nil, &apperrors.ImportFormatError{Source: source, Reason: fmt.Sprintf("record %d has no date", i)}
		}
		ts, err := timestamp(it.Timestamp)
		if err != nil {
			return nil, &apperrors.ImportFormatError{Source: source, Reason: fmt.Sprintf("record %d has an invalid timestamp", i), Err: err}
		}

		accountID := it.AccountID
		if accountID == "" {
			accountID, err = im.legacyAccount(l, accounts, it)
			if err != nil {
				return nil, &apperrors.ImportFormatError{Source: source, Reason: fmt.Sprintf("record %d", i), Err: err}
			}
		}

		id := it.ID
		if id == "" {
			id = im.ids.NewID()
		}
		l.Dataset().Records = append(l.Dataset().Records, models.Record{
			ID:        id,
			Date:      it.Date,
			AccountID: accountID,
			Amount:    it.Amount,
			Note:      it.Note,
			Timestamp: ts,
		})
	}
	return l.Dataset(), nil
}

// legacyAccount finds or creates the account a name-based record belongs to.
// Accounts are told apart by name and owner; the first row seen for an
// account fixes its currency.
func (im *Importer) legacyAccount(l *ledger.Ledger, accounts map[accountKey]string, it legacyRecord) (string, error) {
	currency, err := models.ParseCurrency(it.Currency)
	if err != nil {
		return "", err
	}
	ownerName := strings.TrimSpace(it.Owner)
	if ownerName == "" {
		ownerName = models.Unknown
	}
	key := accountKey{name: strings.ToLower(strings.TrimSpace(it.AccountName)), owner: strings.ToLower(ownerName)}
	if id, ok := accounts[key]; ok {
		if acc, found := l.Dataset().Account(id); found && acc.Currency != currency {
			im.warn("Legacy account listed with another currency, keeping the first",
				logging.Field{Key: logging.FieldAccountID, Value: id},
				logging.Field{Key: logging.FieldCurrency, Value: string(currency)})
		}
		return id, nil
	}

	l.EnsureDefaultCategories()
	owner, ok := l.FindOwnerByName(ownerName)
	if !ok {
		if owner, err = l.AddOwner(models.Owner{Name: ownerName}); err != nil {
			return "", err
		}
	}
	category, ok := l.FindCategoryByName(it.Category)
	if !ok {
		category, _ = l.FindCategoryByName(models.CategoryOther)
	}
	name := strings.TrimSpace(it.AccountName)
	if name == "" {
		name = models.Unknown
	}
	account, err := l.AddAccount(models.Account{
		Name:       name,
		Currency:   currency,
		CategoryID: category.ID,
		OwnerID:    owner.ID,
	})
	if err != nil {
		return "", err
	}
	accounts[key] = account.ID
	return account.ID, nil
}

// checkFirstItem applies the structural check of the import contract: an
// empty list is valid, otherwise the first item must be an object carrying
// id, date and amount.
func checkFirstItem(items []json.RawMessage, source string) error {
	if len(items) == 0 {
		return nil
	}
	var first map[string]json.RawMessage
	if err := json.Unmarshal(items[0], &first); err != nil || first == nil {
		return &apperrors.ImportFormatError{Source: source, Reason: "first record is not an object"}
	}
	for _, field := range []string{"id", "date", "amount"} {
		if _, ok := first[field]; !ok {
			return &apperrors.ImportFormatError{Source: source, Reason: fmt.Sprintf("first record has no %q field", field)}
		}
	}
	return nil
}

func timestamp(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func (im *Importer) info(msg string, fields ...logging.Field) {
	if im.logger != nil {
		im.logger.Info(msg, fields...)
	}
}

func (im *Importer) warn(msg string, fields ...logging.Field) {
	if im.logger != nil {
		im.logger.Warn(msg, fields...)
	}
}
