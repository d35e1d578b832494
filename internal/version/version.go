// Package version holds clipbridge build information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"clipbridge/internal/clipboard"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.1.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

const unknown = "unknown"

// Info represents comprehensive version information
type Info struct {
	Version    string          `json:"version" yaml:"version"`
	GitCommit  string          `json:"git_commit" yaml:"git_commit"`
	BuildDate  string          `json:"build_date" yaml:"build_date"`
	GoVersion  string          `json:"go_version" yaml:"go_version"`
	Platform   string          `json:"platform" yaml:"platform"`
	Backend    string          `json:"backend" yaml:"backend"`
	AllFormats bool            `json:"all_formats" yaml:"all_formats"`
	SemVer     *semver.Version `json:"-" yaml:"-"`
}

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetInfo returns comprehensive version information. A commit left unset
// by -ldflags is taken from the module's VCS stamp when available.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	commit, date := GitCommit, BuildDate
	if commit == unknown || commit == "" {
		commit, date = vcsStamp(commit, date)
	}

	return &Info{
		Version:    sv.String(),
		GitCommit:  commit,
		BuildDate:  date,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Backend:    clipboard.Platform(),
		AllFormats: clipboard.AllFormats(),
		SemVer:     sv,
	}, nil
}

func vcsStamp(commit, date string) (string, string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, date
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			if date == unknown || date == "" {
				date = s.Value
			}
		}
	}
	return commit, date
}

// ShortCommit returns the first seven characters of a commit hash.
func ShortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// GetFormattedVersion returns a one-line version string
func GetFormattedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("clipbridge v%s (invalid version)", Version)
	}

	parts := []string{fmt.Sprintf("clipbridge v%s", info.Version)}

	if info.GitCommit != unknown && info.GitCommit != "" {
		parts = append(parts, "commit "+ShortCommit(info.GitCommit))
	}
	if info.BuildDate != unknown && info.BuildDate != "" {
		parts = append(parts, "built "+info.BuildDate)
	}

	return strings.Join(parts, ", ")
}

// GetDetailedVersion returns detailed version information for debugging
func GetDetailedVersion() string {
	info, err := GetInfo()
	if err != nil {
		return fmt.Sprintf("clipbridge v%s (error: %v)", Version, err)
	}

	formats := "text only"
	if info.AllFormats {
		formats = "CF_HDROP, CF_DIB, CF_UNICODETEXT"
	}

	lines := []string{
		fmt.Sprintf("clipbridge v%s", info.Version),
		fmt.Sprintf("Git Commit: %s", info.GitCommit),
		fmt.Sprintf("Build Date: %s", info.BuildDate),
		fmt.Sprintf("Go Version: %s", info.GoVersion),
		fmt.Sprintf("Platform: %s", info.Platform),
		fmt.Sprintf("Clipboard Backend: %s (%s)", info.Backend, formats),
	}
	if IsPrerelease() {
		lines = append(lines, "Prerelease: yes")
	}

	return strings.Join(lines, "\n")
}

// ValidateVersion validates that the current version is a valid semantic version
func ValidateVersion() error {
	_, err := semver.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return nil
}

// IsPrerelease returns true if the current version is a prerelease
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// IsDevelopment returns true if this appears to be a development build
func IsDevelopment() bool {
	return GitCommit == unknown || BuildDate == unknown
}

// CompareVersions compares two version strings and returns:
// -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2
func CompareVersions(v1, v2 string) (int, error) {
	sv1, err := semver.NewVersion(v1)
	if err != nil {
		return 0, fmt.Errorf("invalid version v1 '%s': %w", v1, err)
	}

	sv2, err := semver.NewVersion(v2)
	if err != nil {
		return 0, fmt.Errorf("invalid version v2 '%s': %w", v2, err)
	}

	return sv1.Compare(sv2), nil
}

// Satisfies reports whether the running version meets a constraint such
// as ">= 0.1, < 1".
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid constraint '%s': %w", constraint, err)
	}
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}
	return c.Check(sv), nil
}

// SetBuildInfo sets build information (used for testing)
func SetBuildInfo(version, gitCommit, buildDate string) {
	Version = version
	GitCommit = gitCommit
	BuildDate = buildDate
}

// GetBuildTime returns the build time as a time.Time if parseable
func GetBuildTime() (time.Time, error) {
	if BuildDate == unknown || BuildDate == "" {
		return time.Time{}, fmt.Errorf("build date not available")
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, BuildDate); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse build date '%s'", BuildDate)
}
