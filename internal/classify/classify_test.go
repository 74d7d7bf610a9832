package classify

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		wantOK bool
	}{
		{"DJI_20230115_100000.mp4", time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), true},
		{"DJI_20240229123456_0001_D.MP4", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), true},
		{"DJI_20231301_X.mp4", time.Time{}, false},
		{"DJI_20230132_X.mp4", time.Time{}, false},
		{"DJI_20230230_X.mp4", time.Time{}, false},
		{"DJI_20230229_X.mp4", time.Time{}, false},
		{"DJI_20230000_X.mp4", time.Time{}, false},
		{"DJI_2023011X_X.mp4", time.Time{}, false},
		{"DJI_0001.mp4", time.Time{}, false},
		{"DJI_.mp4", time.Time{}, false},
		{"DJI_2023", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Fatalf("ParseDate(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if ok && got.Location() != time.UTC {
				t.Fatalf("expected UTC date, got %v", got.Location())
			}
		})
	}
}

func TestIsDJIVideoName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"DJI_20230115_100000.mp4", true},
		{"DJI_20230115_100000.MP4", true},
		{"DJI_20230115_100000.Mp4", true},
		{"dji_20230115_100000.mp4", false},
		{"DJI_20230115_100000.mov", false},
		{"DJI_20230115_100000.mp4.txt", false},
		{"readme.txt", false},
	}
	for _, tt := range tests {
		if got := IsDJIVideoName(tt.name); got != tt.want {
			t.Errorf("IsDJIVideoName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassifyScenarioMixedEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "DJI_20230115_100000.mp4"), 500)
	writeFile(t, filepath.Join(dir, "readme.txt"), 10)

	result, err := Classify(dir)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	wantSkipped := []string{"Skipped (not DJI mp4): readme.txt"}
	if !reflect.DeepEqual(result.Skipped, wantSkipped) {
		t.Fatalf("skipped = %v, want %v", result.Skipped, wantSkipped)
	}
	if len(result.Valid) != 1 {
		t.Fatalf("expected 1 valid candidate, got %d", len(result.Valid))
	}
	c := result.Valid[0]
	if c.Name != "DJI_20230115_100000.mp4" {
		t.Fatalf("unexpected name %q", c.Name)
	}
	if c.FullPath != filepath.Join(dir, c.Name) || !filepath.IsAbs(c.FullPath) {
		t.Fatalf("unexpected full path %q", c.FullPath)
	}
	if c.Size != 500 {
		t.Fatalf("size = %d, want 500", c.Size)
	}
	if c.Date.Weekday() != time.Sunday || c.Date.Day() != 15 || c.Date.Month() != time.January {
		t.Fatalf("unexpected date %v", c.Date)
	}
	if result.TotalBytes() != 500 {
		t.Fatalf("TotalBytes = %d, want 500", result.TotalBytes())
	}
}

func TestClassifyFilterChain(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "DJI_20230115_dir.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "DJI_20231301_X.mp4"), 1)
	writeFile(t, filepath.Join(dir, "DJI_20230116_A.MP4"), 2)
	writeFile(t, filepath.Join(dir, "DJI_20230117_B.mov"), 3)
	writeFile(t, filepath.Join(dir, "DJI_.mp4"), 4)
	writeFile(t, filepath.Join(dir, "dji_20230118_C.mp4"), 5)
	if err := os.Symlink(filepath.Join(dir, "DJI_20230116_A.MP4"), filepath.Join(dir, "DJI_20230119_link.mp4")); err != nil {
		t.Fatal(err)
	}

	result, err := Classify(dir)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	wantSkipped := []string{
		"Invalid date: DJI_.mp4",
		"Not a file: DJI_20230115_dir.mp4",
		"Skipped (not DJI mp4): DJI_20230117_B.mov",
		"Not a file: DJI_20230119_link.mp4",
		"Invalid date: DJI_20231301_X.mp4",
		"Skipped (not DJI mp4): dji_20230118_C.mp4",
	}
	if !reflect.DeepEqual(result.Skipped, wantSkipped) {
		t.Fatalf("skipped = %#v, want %#v", result.Skipped, wantSkipped)
	}
	if len(result.Valid) != 1 || result.Valid[0].Name != "DJI_20230116_A.MP4" {
		t.Fatalf("unexpected valid list: %+v", result.Valid)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Valid)+len(result.Skipped) != len(entries) {
		t.Fatalf("partition lost entries: %d valid + %d skipped != %d entries",
			len(result.Valid), len(result.Skipped), len(entries))
	}
}

func TestClassifyEmptyDirectory(t *testing.T) {
	result, err := Classify(t.TempDir())
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if len(result.Valid) != 0 || len(result.Skipped) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestClassifyMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := Classify(missing)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected ScanError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ScanError to wrap ErrNotExist, got %v", err)
	}
	if scanErr.Dir != missing {
		t.Fatalf("ScanError.Dir = %q, want %q", scanErr.Dir, missing)
	}
}
