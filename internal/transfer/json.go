package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tally/internal/model"
)

// Backup is the full-backup object shape used by JSON export and restore.
type Backup struct {
	ExportedAt   time.Time           `json:"exportedAt"`
	Transactions []model.Transaction `json:"transactions"`
	Categories   []model.Category    `json:"categories"`
	Budgets      []model.Budget      `json:"budgets"`
}

// rawTransaction reads transaction-shaped JSON loosely: the amount keeps its
// textual form and the date is taken as text, both for Normalize to validate.
type rawTransaction struct {
	Date        string      `json:"date"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	CategoryID  string      `json:"categoryId"`
}

// ParseJSON reads a JSON import, which is either a full-backup object or a
// bare array of transaction-shaped objects. Exactly one of the returns is
// populated: a backup restores all three collections as-is, an array yields
// candidate records for Normalize.
func ParseJSON(data []byte) (*Backup, []Record, error) {
	trimmed := firstByte(data)
	switch trimmed {
	case '{':
		var backup Backup
		if err := json.Unmarshal(data, &backup); err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON backup: %w", err)
		}
		return &backup, nil, nil
	case '[':
		var raw []rawTransaction
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON transaction array: %w", err)
		}
		records := make([]Record, len(raw))
		for i, r := range raw {
			records[i] = Record{
				Date:        r.Date,
				Type:        r.Type,
				Amount:      r.Amount.String(),
				Description: r.Description,
				CategoryID:  r.CategoryID,
			}
		}
		return nil, records, nil
	default:
		return nil, nil, fmt.Errorf("JSON import must be an object or an array")
	}
}

// firstByte returns the first non-whitespace byte, or 0 for blank input.
func firstByte(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// WriteJSON writes the full-backup object with an exportedAt timestamp.
func WriteJSON(w io.Writer, backup Backup) error {
	if backup.ExportedAt.IsZero() {
		backup.ExportedAt = time.Now().UTC()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode JSON backup: %w", err)
	}
	return nil
}
