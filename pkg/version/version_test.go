package version

import (
	"strings"
	"testing"
	"time"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
	if info.Platform == "" {
		t.Error("Platform should not be empty")
	}
}

func TestGetBuildInfo_ParsesValidDate(t *testing.T) {
	originalBuildDate := BuildDate
	defer func() { BuildDate = originalBuildDate }()

	BuildDate = "2026-01-13T20:00:00Z"
	info := GetBuildInfo()

	expected, _ := time.Parse(time.RFC3339, BuildDate)
	if !info.BuildTime.Equal(expected) {
		t.Errorf("BuildTime = %v, want %v", info.BuildTime, expected)
	}
}

func TestGetBuildInfo_IgnoresInvalidDate(t *testing.T) {
	originalBuildDate := BuildDate
	defer func() { BuildDate = originalBuildDate }()

	BuildDate = "yesterday"
	if info := GetBuildInfo(); !info.BuildTime.IsZero() {
		t.Errorf("BuildTime should stay zero for unparsable dates, got %v", info.BuildTime)
	}
}

func TestBuildInfoString(t *testing.T) {
	originalVersion, originalCommit := Version, GitCommit
	defer func() { Version, GitCommit = originalVersion, originalCommit }()

	Version, GitCommit = "v1.2.3", "abc123"
	s := GetBuildInfo().String()
	for _, want := range []string{"contact-mailer", "v1.2.3", "abc123"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
