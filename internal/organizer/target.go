package organizer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// TargetDir returns <destRoot>/<YYYY>/<Month>/<DD - Weekday> for the UTC
// calendar day of date.
func TargetDir(destRoot string, date time.Time) string {
	d := date.UTC()
	day := fmt.Sprintf("%02d - %s", d.Day(), d.Weekday())
	return filepath.Join(destRoot, strconv.Itoa(d.Year()), d.Month().String(), day)
}

// TargetPath returns the destination of a file named name recorded on date.
func TargetPath(destRoot string, date time.Time, name string) string {
	return filepath.Join(TargetDir(destRoot, date), name)
}
