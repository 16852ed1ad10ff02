package model

import "time"

// Child is the profile record stored in <base>/<dir>/child.csv.
// Dir is the on-disk directory name derived from the display name at
// creation time; it never changes afterwards, even if the name does.
type Child struct {
	ID        string
	Name      string
	Birthdate time.Time // date-only
	Dir       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
