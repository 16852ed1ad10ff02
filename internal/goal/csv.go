package goal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Header is the CSV header for goals.csv.
const Header = "id,child_id,description,target_amount,state,created_at,updated_at"

const (
	numFields  = 7
	colID      = 0
	colChildID = 1
	colDesc    = 2
	colTarget  = 3
	colState   = 4
	colCreated = 5
	colUpdated = 6
)

// ReadGoals reads all goal rows from a goals.csv reader, in file order.
func ReadGoals(name string, r io.Reader) ([]model.Goal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &store.MalformedRecordError{Path: name, Row: 1, Err: err}
	}
	if len(records) == 0 {
		return nil, nil
	}

	var goals []model.Goal
	for i, rec := range records[1:] {
		g, err := UnmarshalGoal(rec)
		if err != nil {
			return nil, &store.MalformedRecordError{Path: name, Row: i + 2, Err: err}
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// WriteGoals writes the whole goal log (including header) to a writer.
func WriteGoals(w io.Writer, goals []model.Goal) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(headerFields()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, g := range goals {
		if err := cw.Write(MarshalGoal(g)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalGoal converts a Goal to a CSV row.
func MarshalGoal(g model.Goal) []string {
	row := make([]string, numFields)
	row[colID] = g.ID
	row[colChildID] = g.ChildID
	row[colDesc] = g.Description
	row[colTarget] = g.TargetAmount.StringFixed(2)
	row[colState] = string(g.State)
	row[colCreated] = store.FormatTimestamp(g.CreatedAt)
	row[colUpdated] = store.FormatTimestamp(g.UpdatedAt)
	return row
}

// UnmarshalGoal converts a CSV row to a Goal.
func UnmarshalGoal(record []string) (model.Goal, error) {
	if len(record) != numFields {
		return model.Goal{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	target, err := decimal.NewFromString(record[colTarget])
	if err != nil {
		return model.Goal{}, fmt.Errorf("parsing target_amount %q: %w", record[colTarget], err)
	}

	state, err := model.ParseGoalState(record[colState])
	if err != nil {
		return model.Goal{}, err
	}

	createdAt, err := store.ParseTimestamp(record[colCreated])
	if err != nil {
		return model.Goal{}, err
	}
	updatedAt, err := store.ParseTimestamp(record[colUpdated])
	if err != nil {
		return model.Goal{}, err
	}

	return model.Goal{
		ID:           record[colID],
		ChildID:      record[colChildID],
		Description:  record[colDesc],
		TargetAmount: target,
		State:        state,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// headerFields returns the header split for csv.Writer.
func headerFields() []string {
	return strings.Split(Header, ",")
}
