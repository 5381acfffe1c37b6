package selfupdate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T, tagName string, status int) *Checker {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/lumikids/lumi/releases/latest", r.URL.Path)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tagName + `"}`))
	}))
	t.Cleanup(server.Close)
	return NewChecker(WithAPIBaseURL(server.URL))
}

func TestCheck_UpdateAvailable(t *testing.T) {
	checker := newTestChecker(t, "v1.2.0", http.StatusOK)

	result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
}

func TestCheck_AlreadyLatest(t *testing.T) {
	checker := newTestChecker(t, "v1.1.0", http.StatusOK)

	result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.1.0"})
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheck_BareVersionIsCanonicalized(t *testing.T) {
	checker := newTestChecker(t, "v2.0.0", http.StatusOK)

	result, err := checker.Check(context.Background(), &CheckInput{Version: "1.9.3"})
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
}

func TestCheck_DevBuild(t *testing.T) {
	checker := newTestChecker(t, "v1.0.0", http.StatusOK)

	_, err := checker.Check(context.Background(), &CheckInput{Version: "(devel)"})
	assert.True(t, errors.Is(err, ErrDevBuild))
}

func TestCheck_ServerError(t *testing.T) {
	checker := newTestChecker(t, "", http.StatusServiceUnavailable)

	_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	assert.Error(t, err)
}

func TestCheck_BadTag(t *testing.T) {
	checker := newTestChecker(t, "latest", http.StatusOK)

	_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	assert.Error(t, err)
}
