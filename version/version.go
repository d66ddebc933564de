// Package version checks the release feed for newer builds of the application.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/network"
	"github.com/bedtime-cli/bedtime/where"
)

// Release is the newest published build.
type Release struct {
	Version   string    `json:"version"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
}

// Newer reports whether r is ahead of the running build.
func (r *Release) Newer() bool {
	cmp, err := Compare(r.Version, constant.Version)
	return err == nil && cmp > 0
}

var (
	releasesAPI = constant.ReleasesAPI
	released    = filesystem.Store[*Release](filepath.Join(where.Cache(), "release.json"), 48*time.Hour)
)

// Latest asks the release feed for the newest build. Answers are kept for two days.
func Latest(ctx context.Context) (*Release, error) {
	if cached, expired, err := released.Get(); err == nil && !expired && cached != nil {
		return cached, nil
	}

	body, err := network.Get(ctx, releasesAPI, map[string]string{"Accept": "application/vnd.github+json"})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload struct {
		Tag         string    `json:"tag_name"`
		URL         string    `json:"html_url"`
		PublishedAt time.Time `json:"published_at"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Tag == "" {
		return nil, errors.New("release without a tag")
	}

	release := &Release{
		Version:   strings.TrimPrefix(payload.Tag, "v"),
		URL:       payload.URL,
		Published: payload.PublishedAt,
	}
	if release.URL == "" {
		release.URL = constant.ReleasesURL + "/tag/" + payload.Tag
	}

	_ = released.Set(release)
	return release, nil
}
