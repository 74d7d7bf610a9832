package organizer_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"dronesort/internal/organizer"
)

func TestTargetPath(t *testing.T) {
	cases := []struct {
		date string
		name string
		want string
	}{
		{"2023-01-15", "DJI_20230115_100000.mp4", "2023/January/15 - Sunday/DJI_20230115_100000.mp4"},
		{"2024-02-29", "DJI_20240229_X.mp4", "2024/February/29 - Thursday/DJI_20240229_X.mp4"},
		{"2019-12-01", "DJI_20191201_Y.MP4", "2019/December/01 - Sunday/DJI_20191201_Y.MP4"},
	}
	for _, tc := range cases {
		date, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.date, err)
		}
		got := organizer.TargetPath("/media/dest", date, tc.name)
		want := filepath.Join("/media/dest", filepath.FromSlash(tc.want))
		if got != want {
			t.Fatalf("TargetPath(%s) = %q, want %q", tc.date, got, want)
		}
		if again := organizer.TargetPath("/media/dest", date, tc.name); again != got {
			t.Fatalf("TargetPath not stable: %q vs %q", got, again)
		}
	}
}

func TestTargetDirUsesUTCDay(t *testing.T) {
	zone := time.FixedZone("UTC-8", -8*60*60)
	local := time.Date(2023, time.January, 15, 20, 0, 0, 0, zone)
	got := organizer.TargetDir("/d", local)
	want := filepath.Join("/d", "2023", "January", "16 - Monday")
	if got != want {
		t.Fatalf("TargetDir = %q, want %q", got, want)
	}
}

func TestEventJSON(t *testing.T) {
	cases := []struct {
		evt  organizer.Event
		want string
	}{
		{organizer.Event{Type: organizer.EventSetStartEnabled}, `{"event":"set-start-enabled","payload":false}`},
		{organizer.Event{Type: organizer.EventClearLog}, `{"event":"clear-log"}`},
		{organizer.Event{Type: organizer.EventUpdateStatus, Text: "All done"}, `{"event":"update-status","payload":"All done"}`},
		{organizer.Event{Type: organizer.EventUpdateProgress}, `{"event":"update-progress","payload":0}`},
		{organizer.Event{Type: organizer.EventAppendLog, Text: "Copied: a"}, `{"event":"append-log","payload":"Copied: a"}`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.evt)
		if err != nil {
			t.Fatalf("marshal %+v: %v", tc.evt, err)
		}
		if string(data) != tc.want {
			t.Fatalf("marshal %s = %s, want %s", tc.evt.Type, data, tc.want)
		}
	}
}
