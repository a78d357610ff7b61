/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/AlaudaDevops/toolbox/botconfig/pkg/config"
	"github.com/AlaudaDevops/toolbox/botconfig/pkg/git"
)

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/repos/doczir/http4s-jwt"):
			_, _ = w.Write([]byte(`{"id": 1, "full_name": "doczir/http4s-jwt"}`))
		case strings.HasSuffix(r.URL.Path, "/repos/doczir/broken"):
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message": "boom"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGitHubChecker_RepositoryExists(t *testing.T) {
	server := newGitHubServer(t)
	checker, err := NewGitHubChecker(server.URL, "secret")
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, checker.RepositoryExists(ctx, &git.Repository{Group: "doczir", Repo: "http4s-jwt"}))

	err = checker.RepositoryExists(ctx, &git.Repository{Group: "doczir", Repo: "missing"})
	assert.ErrorIs(t, err, ErrRepositoryNotFound)

	err = checker.RepositoryExists(ctx, &git.Repository{Group: "doczir", Repo: "broken"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRepositoryNotFound)

	err = checker.RepositoryExists(ctx, &git.Repository{Group: "group/sub", Repo: "repo"})
	assert.Error(t, err)
	assert.Equal(t, config.PlatformGitHub, checker.GetPlatformType())
}

func TestGitLabChecker_RepositoryExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "/projects/") && strings.HasSuffix(r.URL.Path, "service") {
			_, _ = w.Write([]byte(`{"id": 7, "path_with_namespace": "group/subgroup/service"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "404 Project Not Found"}`))
	}))
	defer server.Close()

	checker, err := NewGitLabChecker(server.URL, "secret")
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, checker.RepositoryExists(ctx, &git.Repository{Group: "group/subgroup", Repo: "service"}))
	assert.ErrorIs(t, checker.RepositoryExists(ctx, &git.Repository{Group: "group", Repo: "missing"}), ErrRepositoryNotFound)
	assert.Equal(t, config.PlatformGitLab, checker.GetPlatformType())
}

func TestNewChecker(t *testing.T) {
	checker, err := NewChecker(config.PlatformGitHub, "", "")
	require.NoError(t, err)
	assert.IsType(t, &GitHubChecker{}, checker)

	checker, err = NewChecker(config.PlatformGitLab, "", "token")
	require.NoError(t, err)
	assert.IsType(t, &GitLabChecker{}, checker)

	_, err = NewChecker(config.PlatformBitbucket, "", "")
	assert.Error(t, err)
}

type fakeChecker struct {
	missing map[string]bool
	checked []string
}

func (f *fakeChecker) RepositoryExists(_ context.Context, repo *git.Repository) error {
	f.checked = append(f.checked, repo.String())
	if f.missing[repo.String()] {
		return ErrRepositoryNotFound
	}
	return nil
}

func (f *fakeChecker) GetPlatformType() config.Platform {
	return config.PlatformLocal
}

func TestVerify(t *testing.T) {
	checker := &fakeChecker{missing: map[string]bool{"org/gone": true}}
	repos := []string{"org/a", "org/gone", "org/b"}

	report, err := Verify(context.Background(), checker, repos, rate.NewLimiter(rate.Inf, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
	assert.Equal(t, repos, checker.checked, "repositories are checked in order")
	require.Len(t, report.Results, 3)
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "org/gone", report.Failed()[0].Repository)

	report, err = Verify(context.Background(), &fakeChecker{}, []string{"org/a"}, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Failed())
}

func TestVerify_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := &fakeChecker{}
	report, err := Verify(ctx, checker, []string{"org/a", "org/b"}, rate.NewLimiter(1, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, checker.checked)
	assert.Empty(t, report.Results)
}
