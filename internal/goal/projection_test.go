package goal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidbank-dev/kidbank/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func weekly(amount string, day time.Weekday) *model.AllowanceSchedule {
	return &model.AllowanceSchedule{
		ChildID: "child-1",
		Amount:  dec(amount),
		Weekday: day,
		Active:  true,
	}
}

func TestProject(t *testing.T) {
	// Monday; paydays are Saturdays.
	asOf := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

	proj, err := Project(dec("15.50"), dec("40.00"), weekly("5.00", time.Saturday), asOf, 0)
	require.NoError(t, err)

	assert.True(t, proj.AmountNeeded.Equal(dec("24.50")))
	assert.Equal(t, 5, proj.CyclesNeeded)
	// 5th Saturday from Jun 9: Jun 14, 21, 28, Jul 5, Jul 12.
	assert.Equal(t, "2025-07-12", proj.ProjectedDate.Format("2006-01-02"))
	assert.False(t, proj.ExceedsHorizon)
}

func TestProjectExactMultiple(t *testing.T) {
	asOf := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

	proj, err := Project(dec("0"), dec("10.00"), weekly("5.00", time.Saturday), asOf, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, proj.CyclesNeeded)
	assert.Equal(t, "2025-06-21", proj.ProjectedDate.Format("2006-01-02"))
}

func TestProjectAlreadyAchievable(t *testing.T) {
	asOf := time.Now()

	_, err := Project(dec("15.00"), dec("10.00"), weekly("5.00", time.Saturday), asOf, 0)
	assert.ErrorIs(t, err, ErrAlreadyAchievable)

	// Exactly at target counts as achievable too.
	_, err = Project(dec("10.00"), dec("10.00"), weekly("5.00", time.Saturday), asOf, 0)
	assert.ErrorIs(t, err, ErrAlreadyAchievable)
}

func TestProjectNoSchedule(t *testing.T) {
	asOf := time.Now()

	_, err := Project(dec("5.00"), dec("40.00"), nil, asOf, 0)
	assert.ErrorIs(t, err, ErrNoSchedule)

	inactive := weekly("5.00", time.Saturday)
	inactive.Active = false
	_, err = Project(dec("5.00"), dec("40.00"), inactive, asOf, 0)
	assert.ErrorIs(t, err, ErrNoSchedule)
}

func TestProjectInvalidSchedule(t *testing.T) {
	_, err := Project(dec("5.00"), dec("40.00"), weekly("0.00", time.Saturday), time.Now(), 0)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestProjectExceedsHorizon(t *testing.T) {
	asOf := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

	// 200 weeks out: the date is still computed, only flagged.
	proj, err := Project(dec("0"), dec("200.00"), weekly("1.00", time.Saturday), asOf, 365)
	require.NoError(t, err)
	assert.Equal(t, 200, proj.CyclesNeeded)
	assert.True(t, proj.ExceedsHorizon)
	assert.False(t, proj.ProjectedDate.IsZero())

	// A wider horizon clears the flag for the same projection.
	proj, err = Project(dec("0"), dec("200.00"), weekly("1.00", time.Saturday), asOf, 365*5)
	require.NoError(t, err)
	assert.False(t, proj.ExceedsHorizon)
}
