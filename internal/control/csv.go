package control

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Header is the CSV header for control_attempts.csv. The file is an
// append-only audit log; ids are sequential per child.
const Header = "id,attempted_value,timestamp,success"

const (
	numFields    = 4
	colID        = 0
	colAttempted = 1
	colTimestamp = 2
	colSuccess   = 3
)

func headerFields() []string {
	return strings.Split(Header, ",")
}

// ReadAttempts reads all audit rows from a reader. The name is only
// used in error messages.
func ReadAttempts(name string, r io.Reader) ([]model.ControlAttempt, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	var attempts []model.ControlAttempt
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &store.MalformedRecordError{Path: name, Row: row, Err: err}
		}
		if row == 1 {
			continue
		}

		a, err := UnmarshalAttempt(record)
		if err != nil {
			return nil, &store.MalformedRecordError{Path: name, Row: row, Err: err}
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// WriteAttempts writes the whole audit log (including header) to a writer.
func WriteAttempts(w io.Writer, attempts []model.ControlAttempt) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(headerFields()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range attempts {
		if err := cw.Write(MarshalAttempt(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAttempt converts a ControlAttempt to a CSV row.
func MarshalAttempt(a model.ControlAttempt) []string {
	row := make([]string, numFields)
	row[colID] = strconv.FormatInt(a.ID, 10)
	row[colAttempted] = a.AttemptedValue
	row[colTimestamp] = store.FormatTimestamp(a.Timestamp)
	row[colSuccess] = strconv.FormatBool(a.Success)
	return row
}

// UnmarshalAttempt converts a CSV row to a ControlAttempt.
func UnmarshalAttempt(record []string) (model.ControlAttempt, error) {
	if len(record) != numFields {
		return model.ControlAttempt{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	attemptID, err := strconv.ParseInt(record[colID], 10, 64)
	if err != nil {
		return model.ControlAttempt{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	timestamp, err := store.ParseTimestamp(record[colTimestamp])
	if err != nil {
		return model.ControlAttempt{}, err
	}

	success, err := strconv.ParseBool(record[colSuccess])
	if err != nil {
		return model.ControlAttempt{}, fmt.Errorf("parsing success %q: %w", record[colSuccess], err)
	}

	return model.ControlAttempt{
		ID:             attemptID,
		AttemptedValue: record[colAttempted],
		Timestamp:      timestamp,
		Success:        success,
	}, nil
}
