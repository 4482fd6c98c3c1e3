// Package version checks for newer releases of the application.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/lectio-cli/lectio/filesystem"
	"github.com/lectio-cli/lectio/network"
	"github.com/lectio-cli/lectio/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the endpoint describing the latest published release.
var ReleasesURL = "https://api.github.com/repos/lectio-cli/lectio/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version without the "v" prefix.
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	session, err := network.NewSession(network.Options{
		Retry:         network.RetryConfig{MaxAttempts: 2, BaseDelay: 200 * time.Millisecond, MaxDelay: time.Second},
		HeaderTimeout: 5 * time.Second,
	})
	if err != nil {
		return "", err
	}

	body, err := session.Page(ctx, ReleasesURL)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal([]byte(body), &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher.Set(ver)
	return ver, nil
}
