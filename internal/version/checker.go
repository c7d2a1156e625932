package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/deskkeys/internal/config"
	"golang.org/x/mod/semver"
)

// Version is the running deskkeys version, overridden at build time with
// -ldflags "-X github.com/studiowebux/deskkeys/internal/version.Version=..."
var Version = "0.1.0"

const checkTimeout = 5 * time.Second

// Release is a published deskkeys release
type Release struct {
	Version string // without the leading "v"
	URL     string
}

// Checker reads the latest release from a GitHub releases endpoint
type Checker struct {
	url    string
	client *http.Client
}

// NewChecker creates a checker for the releases endpoint in settings
func NewChecker(settings config.Settings) *Checker {
	url := settings.ReleasesURL
	if url == "" {
		url = config.DefaultReleasesURL
	}
	return &Checker{
		url:    url,
		client: &http.Client{Timeout: checkTimeout},
	}
}

// Latest fetches the most recent release
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Release{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "deskkeys/"+Version)

	resp, err := c.client.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("release check returned %s", resp.Status)
	}

	var body struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Release{}, fmt.Errorf("failed to decode release: %w", err)
	}
	if !semver.IsValid(canonical(body.TagName)) {
		return Release{}, fmt.Errorf("release tag %q is not a version", body.TagName)
	}

	return Release{
		Version: strings.TrimPrefix(body.TagName, "v"),
		URL:     body.HTMLURL,
	}, nil
}

// Newer returns the latest release and whether it is newer than current
func (c *Checker) Newer(ctx context.Context, current string) (Release, bool, error) {
	latest, err := c.Latest(ctx)
	if err != nil {
		return Release{}, false, err
	}
	return latest, IsNewer(latest.Version, current), nil
}

// IsNewer reports whether latest is a higher semantic version than current.
// Pre-releases sort before their release; build metadata is ignored.
// An unparsable current version is always older.
func IsNewer(latest, current string) bool {
	l, c := canonical(latest), canonical(current)
	if !semver.IsValid(l) {
		return false
	}
	if !semver.IsValid(c) {
		return true
	}
	return semver.Compare(l, c) > 0
}

func canonical(v string) string {
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
