package child

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
)

// Header is the CSV header for child.csv. The file holds exactly one
// row; the directory name is not a column because it is the directory.
const Header = "id,name,birthdate,created_at,updated_at"

const (
	numFields    = 5
	colID        = 0
	colName      = 1
	colBirthdate = 2
	colCreated   = 3
	colUpdated   = 4
)

// ReadChild reads the single profile record from a child.csv reader.
func ReadChild(name string, r io.Reader) (model.Child, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return model.Child{}, &store.MalformedRecordError{Path: name, Row: 1, Err: err}
	}
	if len(records) < 2 {
		return model.Child{}, &store.MalformedRecordError{Path: name, Row: 2, Err: fmt.Errorf("missing profile row")}
	}

	c, err := UnmarshalChild(records[1])
	if err != nil {
		return model.Child{}, &store.MalformedRecordError{Path: name, Row: 2, Err: err}
	}
	return c, nil
}

// WriteChild writes the profile record (including header) to a writer.
func WriteChild(w io.Writer, c model.Child) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.Write(MarshalChild(c)); err != nil {
		return fmt.Errorf("writing profile row: %w", err)
	}
	return cw.Error()
}

// MarshalChild converts a Child to a CSV row.
func MarshalChild(c model.Child) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colName] = c.Name
	row[colBirthdate] = store.FormatDate(c.Birthdate)
	row[colCreated] = store.FormatTimestamp(c.CreatedAt)
	row[colUpdated] = store.FormatTimestamp(c.UpdatedAt)
	return row
}

// UnmarshalChild converts a CSV row to a Child. Dir is left empty; the
// repository fills it in from the directory the file was read from.
func UnmarshalChild(record []string) (model.Child, error) {
	if len(record) != numFields {
		return model.Child{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	birthdate, err := store.ParseDate(record[colBirthdate])
	if err != nil {
		return model.Child{}, err
	}
	createdAt, err := store.ParseTimestamp(record[colCreated])
	if err != nil {
		return model.Child{}, err
	}
	updatedAt, err := store.ParseTimestamp(record[colUpdated])
	if err != nil {
		return model.Child{}, err
	}

	return model.Child{
		ID:        record[colID],
		Name:      record[colName],
		Birthdate: birthdate,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
