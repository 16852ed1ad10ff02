package allowance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Header is the CSV header for allowance_schedule.csv. The file holds
// one row; day_of_week is 0=Sunday through 6=Saturday.
const Header = "child_id,amount,day_of_week,active,created_at,updated_at"

const (
	numFields  = 6
	colChildID = 0
	colAmount  = 1
	colWeekday = 2
	colActive  = 3
	colCreated = 4
	colUpdated = 5
)

// ReadSchedule reads the single schedule record from a reader.
func ReadSchedule(name string, r io.Reader) (model.AllowanceSchedule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return model.AllowanceSchedule{}, &store.MalformedRecordError{Path: name, Row: 1, Err: err}
	}
	if len(records) < 2 {
		return model.AllowanceSchedule{}, &store.MalformedRecordError{Path: name, Row: 2, Err: fmt.Errorf("missing schedule row")}
	}

	s, err := UnmarshalSchedule(records[1])
	if err != nil {
		return model.AllowanceSchedule{}, &store.MalformedRecordError{Path: name, Row: 2, Err: err}
	}
	return s, nil
}

// WriteSchedule writes the schedule record (including header) to a writer.
func WriteSchedule(w io.Writer, s model.AllowanceSchedule) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.Write(MarshalSchedule(s)); err != nil {
		return fmt.Errorf("writing schedule row: %w", err)
	}
	return cw.Error()
}

// MarshalSchedule converts an AllowanceSchedule to a CSV row.
func MarshalSchedule(s model.AllowanceSchedule) []string {
	row := make([]string, numFields)
	row[colChildID] = s.ChildID
	row[colAmount] = s.Amount.StringFixed(2)
	row[colWeekday] = strconv.Itoa(int(s.Weekday))
	row[colActive] = strconv.FormatBool(s.Active)
	row[colCreated] = store.FormatTimestamp(s.CreatedAt)
	row[colUpdated] = store.FormatTimestamp(s.UpdatedAt)
	return row
}

// UnmarshalSchedule converts a CSV row to an AllowanceSchedule.
func UnmarshalSchedule(record []string) (model.AllowanceSchedule, error) {
	if len(record) != numFields {
		return model.AllowanceSchedule{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.AllowanceSchedule{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	weekday, err := strconv.Atoi(record[colWeekday])
	if err != nil || weekday < 0 || weekday > 6 {
		return model.AllowanceSchedule{}, fmt.Errorf("invalid day_of_week %q", record[colWeekday])
	}

	active, err := strconv.ParseBool(record[colActive])
	if err != nil {
		return model.AllowanceSchedule{}, fmt.Errorf("parsing active %q: %w", record[colActive], err)
	}

	createdAt, err := store.ParseTimestamp(record[colCreated])
	if err != nil {
		return model.AllowanceSchedule{}, err
	}
	updatedAt, err := store.ParseTimestamp(record[colUpdated])
	if err != nil {
		return model.AllowanceSchedule{}, err
	}

	return model.AllowanceSchedule{
		ChildID:   record[colChildID],
		Amount:    amount,
		Weekday:   time.Weekday(weekday),
		Active:    active,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
