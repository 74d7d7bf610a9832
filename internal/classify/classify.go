package classify

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	namePrefix = "DJI_"
	videoExt   = ".mp4"
	// The date occupies name[4:12] as YYYYMMDD.
	dateOffset = len(namePrefix)
	dateLayout = "20060102"
	dateEnd    = dateOffset + len(dateLayout)
)

// Candidate is an entry that passed every filter and is queued for copying.
type Candidate struct {
	Name     string
	FullPath string
	Size     int64
	// Date is midnight UTC of the recording day.
	Date time.Time
}

// Result partitions the entries of one directory listing.
type Result struct {
	Valid   []Candidate
	Skipped []string
}

// TotalBytes sums the sizes of all valid candidates.
func (r Result) TotalBytes() int64 {
	var total int64
	for _, c := range r.Valid {
		total += c.Size
	}
	return total
}

// Classify enumerates sourceDir (without recursion) and sorts each entry into
// Valid or Skipped, preserving listing order in both.
func Classify(sourceDir string) (Result, error) {
	var result Result

	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return result, &ScanError{Dir: sourceDir, Err: err}
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return result, &ScanError{Dir: absDir, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		if reason := skipReason(entry); reason != "" {
			result.Skipped = append(result.Skipped, reason)
			continue
		}
		date, _ := ParseDate(name)

		fullPath := filepath.Join(absDir, name)
		info, err := os.Stat(fullPath)
		if err != nil {
			return Result{}, &ScanError{Dir: absDir, Err: err}
		}

		result.Valid = append(result.Valid, Candidate{
			Name:     name,
			FullPath: fullPath,
			Size:     info.Size(),
			Date:     date,
		})
	}

	return result, nil
}

func skipReason(entry os.DirEntry) string {
	name := entry.Name()
	switch {
	case !entry.Type().IsRegular():
		return "Not a file: " + name
	case !IsDJIVideoName(name):
		return "Skipped (not DJI mp4): " + name
	}
	if _, ok := ParseDate(name); !ok {
		return "Invalid date: " + name
	}
	return ""
}

// IsDJIVideoName reports whether name carries the case-sensitive DJI_ prefix
// and an .mp4 extension in any case.
func IsDJIVideoName(name string) bool {
	return strings.HasPrefix(name, namePrefix) && strings.EqualFold(filepath.Ext(name), videoExt)
}

// ParseDate extracts the YYYYMMDD date at name[4:12]. Names too short to hold
// a date and dates that do not exist on the calendar (month 13, February 30)
// are rejected.
func ParseDate(name string) (time.Time, bool) {
	if len(name) < dateEnd {
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, name[dateOffset:dateEnd])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
