package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScheduleConflict(t *testing.T) {
	db := openTestDB(t)
	fx := seedFixtures(t, db)

	// fishing charter occupies Sea Explorer 13:00-17:00
	existing := mustSchedule(t, db, fx.op.ID, fx.fishing, fx.explorer, tomorrowAt(13, 0))

	cases := []struct {
		name     string
		hour     int
		min      int
		duration int
		want     bool
	}{
		{"inside the window", 16, 30, 60, true},
		{"starts at the end", 17, 0, 60, false},
		{"ends at the start", 12, 0, 60, false},
		{"one minute overlap at the end", 16, 59, 60, true},
		{"one minute overlap at the start", 12, 1, 60, true},
		{"fully covering", 12, 0, 360, true},
		{"fully covered", 14, 0, 30, true},
		{"well clear", 18, 0, 60, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conflict, err := FindScheduleConflict(db, fx.explorer.ID, tomorrowAt(tc.hour, tc.min), tc.duration, "")
			require.NoError(t, err)
			if tc.want {
				require.NotNil(t, conflict)
				assert.Equal(t, existing.ID, conflict.ID)
				assert.Equal(t, fx.fishing.Title, conflict.Tour.Title)
			} else {
				assert.Nil(t, conflict)
			}
		})
	}
}

func TestFindScheduleConflictScopedToVessel(t *testing.T) {
	db := openTestDB(t)
	fx := seedFixtures(t, db)

	mustSchedule(t, db, fx.op.ID, fx.fishing, fx.explorer, tomorrowAt(13, 0))

	conflict, err := FindScheduleConflict(db, fx.blueFin.ID, tomorrowAt(13, 0), 240, "")
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindScheduleConflictExcludesSelf(t *testing.T) {
	db := openTestDB(t)
	fx := seedFixtures(t, db)

	st := mustSchedule(t, db, fx.op.ID, fx.fishing, fx.explorer, tomorrowAt(13, 0))

	// the departure being rescheduled never conflicts with its own window
	conflict, err := FindScheduleConflict(db, fx.explorer.ID, tomorrowAt(14, 0), 240, st.ID)
	require.NoError(t, err)
	assert.Nil(t, conflict)

	conflict, err = FindScheduleConflict(db, fx.explorer.ID, tomorrowAt(14, 0), 240, "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
}
