package progress

import (
	"strings"
	"time"

	"github.com/verte-zerg/tango/internal/model"
)

const isoLayout = model.TimestampLayout

// StudyProgress returns the last viewed word index for week.
func (s *Store) StudyProgress(week int) int {
	return Get(s, studyProgressKey(week), 0)
}

// SetStudyProgress stores the last viewed word index for week.
func (s *Store) SetStudyProgress(week, index int) {
	s.Set(studyProgressKey(week), index)
}

// StudiedToday returns the studied-today counter for week.
func (s *Store) StudiedToday(week int) int {
	return Get(s, studiedTodayKey(week), 0)
}

// SetStudiedToday stores the studied-today counter for week.
func (s *Store) SetStudiedToday(week, count int) {
	s.Set(studiedTodayKey(week), count)
}

// LastStudied returns the ISO timestamp of the last study session for week, or "".
func (s *Store) LastStudied(week int) string {
	return Get(s, lastStudiedKey(week), "")
}

// TouchLastStudied records now as the last study time for week.
func (s *Store) TouchLastStudied(week int) {
	s.Set(lastStudiedKey(week), model.FormatTimestamp(s.now()))
}

// Theme returns the persisted theme, defaulting to dark.
func (s *Store) Theme() model.Theme {
	theme := model.Theme(strings.ToLower(Get(s, themeKey, string(model.ThemeDark))))
	if theme != model.ThemeLight {
		return model.ThemeDark
	}
	return theme
}

// SetTheme persists theme.
func (s *Store) SetTheme(theme model.Theme) {
	s.Set(themeKey, string(theme))
}

func parseISO(value string) (time.Time, bool) {
	return model.ParseTimestamp(value)
}
