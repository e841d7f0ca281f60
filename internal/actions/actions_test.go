package actions_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MedMaalej/copybara/internal/actions"
	"github.com/MedMaalej/copybara/internal/config"
	cberrors "github.com/MedMaalej/copybara/internal/errors"
	"github.com/MedMaalej/copybara/internal/output"
	"github.com/MedMaalej/copybara/internal/runtime"
	"github.com/MedMaalej/copybara/testhelpers"
)

const migrateConfig = `
transformations:
  - map_references:
      before: "http://internalReviews.com/${reference}"
      after: "http://externalreviews.com/view?${reference}"
      regex_groups:
        before_ref: "[0-9]+"
        after_ref: "[0-9a-f]+"
      additional_import_labels: [LegacyImporter]
  - map_author:
      authors:
        "Foo <foo@foo.com>": "Public Foo <foo@example.com>"
`

func newRuntime(t *testing.T, content string, debug bool) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	cfg, err := config.Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	splog, err := output.NewSplogWithOptions(output.Options{Writer: &buf, Debug: debug})
	require.NoError(t, err)
	return runtime.NewContext(cfg, splog), &buf
}

func TestMigrateAction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("migrates the given message", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, migrateConfig, false)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{
			Message: "Fix crash\n\nSee http://internalReviews.com/123 and http://internalReviews.com/5005",
		})
		require.NoError(t, err)
		require.Equal(t, "Fix crash\n\nSee http://externalreviews.com/view?7b and http://externalreviews.com/view?138d\n", buf.String())
	})

	t.Run("reverse migrates back", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, migrateConfig, false)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{
			Message: "See http://externalreviews.com/view?7b",
			Reverse: true,
		})
		require.NoError(t, err)
		require.Equal(t, "See http://internalReviews.com/123\n", buf.String())
	})

	t.Run("reads stdin when there is no message", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, migrateConfig, false)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{
			ReadStdin: func() (string, error) { return "http://internalReviews.com/14", nil },
		})
		require.NoError(t, err)
		require.Equal(t, "http://externalreviews.com/view?e\n", buf.String())
	})

	t.Run("fails without a message", func(t *testing.T) {
		t.Parallel()
		rt, _ := newRuntime(t, migrateConfig, false)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{
			ReadStdin: func() (string, error) { return "", nil },
		})
		require.ErrorIs(t, err, actions.ErrNoMessage)
	})

	t.Run("invalid references fail the change", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, `
transformations:
  - map_references:
      before: "http://internalReviews.com/${reference}"
      after: "http://externalreviews.com/view?${reference}"
      regex_groups: {before_ref: "[0-9]+", after_ref: "[xyz]+"}
`, false)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{Message: "http://internalReviews.com/123"})
		require.EqualError(t, err, "Reference 7b does not match regex '[xyz]+'")
		require.True(t, errors.Is(err, cberrors.ErrReferenceValidation))
		require.Empty(t, buf.String())
	})

	t.Run("migrates a commit and consults its history", func(t *testing.T) {
		t.Parallel()
		fixture := testhelpers.NewGitRepo(t)
		fixture.MustCommit(t, "Old import\n\nLegacyImporter: 121")
		fixture.SetAuthor("Foo", "foo@foo.com")
		sha := fixture.MustCommit(t, "Follow up on http://internalReviews.com/121")

		rt, buf := newRuntime(t, migrateConfig, true)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{
			RepoPath:     fixture.Dir,
			Rev:          sha,
			Origin:       "main",
			Destination:  "main",
			HistoryLimit: 10,
		})
		require.NoError(t, err)
		require.Contains(t, buf.String(), "Follow up on http://externalreviews.com/view?79")
		require.Contains(t, buf.String(), "Resolved reference 121 to 79 through label LegacyImporter")
		require.Contains(t, buf.String(), "Author: Foo <foo@foo.com> -> Public Foo <foo@example.com>")
	})

	t.Run("unknown origin fails", func(t *testing.T) {
		t.Parallel()
		fixture := testhelpers.NewGitRepo(t)
		fixture.MustCommit(t, "initial")

		rt, _ := newRuntime(t, migrateConfig, false)
		err := actions.MigrateAction(ctx, rt, actions.MigrateOptions{
			Message:  "msg",
			RepoPath: fixture.Dir,
			Origin:   "nope",
		})
		require.ErrorContains(t, err, "failed to read origin history")
	})
}

func TestValidateAction(t *testing.T) {
	t.Parallel()

	t.Run("reversible chain", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, migrateConfig, false)
		require.NoError(t, actions.ValidateAction(rt))
		require.Contains(t, buf.String(), "2 transformation(s)")
		require.Contains(t, buf.String(), "reversible")
	})

	t.Run("non reversible chain warns", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, "transformations:\n  - scrub_message: {regex: \"SECRET\"}\n", false)
		require.NoError(t, actions.ValidateAction(rt))
		require.Contains(t, buf.String(), "Not reversible: ")
		require.Contains(t, buf.String(), "transformations[0]: Scrub 'SECRET' is not reversible")
	})

	t.Run("invalid chain fails", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, "transformations:\n  - replace_message: {before: \"\", after: x}\n", false)
		err := actions.ValidateAction(rt)
		require.True(t, errors.Is(err, cberrors.ErrConfigValidation))
		require.Contains(t, buf.String(), "'before' cannot be empty")
	})
}

func TestDescribeAction(t *testing.T) {
	t.Parallel()

	t.Run("lists every step", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, migrateConfig+`
  - scrub_message: {regex: "SECRET-[0-9]+"}
`, false)
		require.NoError(t, actions.DescribeAction(rt, actions.DescribeOptions{}))
		out := buf.String()
		require.Contains(t, out, "Map references 'http://internalReviews.com/${reference}' to 'http://externalreviews.com/view?${reference}'")
		require.Contains(t, out, "Map 1 author(s)")
		require.Contains(t, out, "Scrub 'SECRET-[0-9]+'")
		require.Contains(t, out, "Transformation")
		require.Contains(t, out, "Reversible")
		require.NotContains(t, out, "REVERSIBLE")
	})

	t.Run("reverse describes the inverse", func(t *testing.T) {
		t.Parallel()
		rt, buf := newRuntime(t, migrateConfig, false)
		require.NoError(t, actions.DescribeAction(rt, actions.DescribeOptions{Reverse: true}))
		out := buf.String()
		require.Contains(t, out, "Reversed transformations")
		require.Contains(t, out, "Map references 'http://externalreviews.com/view?${reference}' to 'http://internalReviews.com/${reference}'")
	})

	t.Run("reverse fails when a step is not reversible", func(t *testing.T) {
		t.Parallel()
		rt, _ := newRuntime(t, "transformations:\n  - scrub_message: {regex: \"x\"}\n", false)
		err := actions.DescribeAction(rt, actions.DescribeOptions{Reverse: true})
		require.True(t, errors.Is(err, cberrors.ErrNonReversible))
	})
}

func TestHistoryAction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fixture := testhelpers.NewGitRepo(t)
	first := fixture.MustCommit(t, "Import\n\nGitOrigin-RevId: 1")
	fixture.MustCommit(t, "No labels")
	fixture.MustCommit(t, "Import\n\nGitOrigin-RevId: 2")

	t.Run("lists labelled changes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := actions.HistoryAction(ctx, actions.HistoryOptions{
			RepoPath: fixture.Dir,
			Labels:   []string{"GitOrigin-RevId"},
			Splog:    output.NewSplogWithWriter(&buf),
		})
		require.NoError(t, err)
		require.Contains(t, buf.String(), "GitOrigin-RevId=1")
		require.Contains(t, buf.String(), "GitOrigin-RevId=2")
		require.Contains(t, buf.String(), first[:8])
		require.Contains(t, buf.String(), "Labels")
		require.NotContains(t, buf.String(), "LABELS")
	})

	t.Run("finds the change recording a value", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		err := actions.HistoryAction(ctx, actions.HistoryOptions{
			RepoPath: fixture.Dir,
			Labels:   []string{"GitOrigin-RevId"},
			Value:    "1",
			Splog:    output.NewSplogWithWriter(&buf),
		})
		require.NoError(t, err)
		require.Equal(t, first+"\n", buf.String())
	})

	t.Run("missing value fails", func(t *testing.T) {
		t.Parallel()
		err := actions.HistoryAction(ctx, actions.HistoryOptions{
			RepoPath: fixture.Dir,
			Labels:   []string{"GitOrigin-RevId"},
			Value:    "3",
			Splog:    output.Discard(),
		})
		require.EqualError(t, err, "no change records 3 under GitOrigin-RevId")
	})

	t.Run("requires a label", func(t *testing.T) {
		t.Parallel()
		err := actions.HistoryAction(ctx, actions.HistoryOptions{RepoPath: fixture.Dir, Splog: output.Discard()})
		require.Error(t, err)
	})
}
