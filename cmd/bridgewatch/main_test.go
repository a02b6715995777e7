package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><body>
<div class="newsflash__padding">
  <p>Monday 12th May</p>
  <ul><li>9:00am to 11:00am</li><li>2pm to 4pm</li></ul>
  <p>Tuesday 13th May from 09:15pm to 10:45pm</p>
  <p>Last updated - Friday 9th May at 3:30pm</p>
</div>
</body></html>`

type result struct {
	Snapshot struct {
		BridgeClosed      bool       `json:"bridge_closed"`
		CurrentClosureEnd *time.Time `json:"current_closure_end"`
	} `json:"snapshot"`
	Matches     []json.RawMessage `json:"matches"`
	LastUpdated *time.Time        `json:"last_updated"`
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRoot(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParse_File(t *testing.T) {
	path := writeTemp(t, "page.html", pageHTML)
	out, err := run(t, "parse", "--file", path, "--now", "2025-05-12T09:30:00Z", "--tz", "UTC")
	require.NoError(t, err)

	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Snapshot.BridgeClosed)
	require.NotNil(t, res.Snapshot.CurrentClosureEnd)
	assert.Equal(t, time.Date(2025, time.May, 12, 11, 0, 0, 0, time.UTC), res.Snapshot.CurrentClosureEnd.UTC())
	assert.Len(t, res.Matches, 3)
	require.NotNil(t, res.LastUpdated)
}

func TestParse_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(pageHTML))
	}))
	defer srv.Close()

	out, err := run(t, "parse", "--url", srv.URL, "--now", "2025-05-12 12:00", "--tz", "UTC")
	require.NoError(t, err)
	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Snapshot.BridgeClosed)
	assert.Len(t, res.Matches, 3)
}

func TestParse_BlocksFixtureHints(t *testing.T) {
	path := writeTemp(t, "week.yaml", `
name: one morning
now: "2025-05-12T10:30:00"
timezone: Europe/London
blocks:
  - text: Monday 12th May
    kind: p
  - text: 9am to 11am
    kind: li
`)
	out, err := run(t, "parse", "--blocks", path)
	require.NoError(t, err)
	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Snapshot.BridgeClosed, "fixture now and zone are used when flags are absent")
	assert.Len(t, res.Matches, 1)

	out, err = run(t, "parse", "--blocks", path, "--now", "2025-05-12T12:00:00")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Snapshot.BridgeClosed)
}

func TestParse_FlagErrors(t *testing.T) {
	path := writeTemp(t, "page.html", pageHTML)

	_, err := run(t, "parse")
	assert.Error(t, err, "a source is required")

	_, err = run(t, "parse", "--file", path, "--url", "http://example.org")
	assert.Error(t, err, "sources are exclusive")

	_, err = run(t, "parse", "--file", path, "--tz", "Moon/Base")
	assert.ErrorContains(t, err, "unknown time zone")

	_, err = run(t, "parse", "--file", path, "--now", "later")
	assert.Error(t, err)

	_, err = run(t, "parse", "--file", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestBlocks_RecordsFixture(t *testing.T) {
	path := writeTemp(t, "page.html", pageHTML)
	out, err := run(t, "blocks", "--file", path, "--name", "recorded")
	require.NoError(t, err)
	assert.Contains(t, out, "name: recorded")
	assert.Contains(t, out, "text: Monday 12th May")
	assert.Contains(t, out, "kind: list_item")

	// the recording replays to the same intervals
	fx := writeTemp(t, "rec.yaml", out)
	parsed, err := run(t, "parse", "--blocks", fx, "--now", "2025-05-12T09:30:00Z", "--tz", "UTC")
	require.NoError(t, err)
	var res result
	require.NoError(t, json.Unmarshal([]byte(parsed), &res))
	assert.Len(t, res.Matches, 3)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bridgewatch")
}
