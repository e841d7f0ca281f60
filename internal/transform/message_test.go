package transform_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cberrors "github.com/MedMaalej/copybara/internal/errors"
	"github.com/MedMaalej/copybara/internal/history"
	"github.com/MedMaalej/copybara/internal/transform"
)

func TestReplaceMessage(t *testing.T) {
	t.Parallel()

	t.Run("replaces every occurrence and reverses", func(t *testing.T) {
		t.Parallel()
		r := replace(t, "internal", "public")
		work := newWork("internal change touching internal code")
		require.NoError(t, r.Transform(work))
		require.Equal(t, "public change touching public code", work.Message())

		reversed, err := r.Reverse()
		require.NoError(t, err)
		require.NoError(t, reversed.Transform(work))
		require.Equal(t, "internal change touching internal code", work.Message())
	})

	t.Run("deletion is not reversible", func(t *testing.T) {
		t.Parallel()
		_, err := replace(t, "secret", "").Reverse()
		require.EqualError(t, err, "Replace 'secret' with '' is not reversible: the replacement is empty")
	})

	t.Run("before is required", func(t *testing.T) {
		t.Parallel()
		_, err := transform.NewReplaceMessage("", "x", transform.Location{Path: "transformations[0]"})
		require.EqualError(t, err, "transformations[0]: 'before' cannot be empty")
	})
}

func TestScrubMessage(t *testing.T) {
	t.Parallel()

	s, err := transform.NewScrubMessage(`BUG=(\d+)`, "Bug: $1", transform.Location{})
	require.NoError(t, err)

	work := newWork("Fix crash\n\nBUG=1234")
	require.NoError(t, s.Transform(work))
	require.Equal(t, "Fix crash\n\nBug: 1234", work.Message())

	_, err = s.Reverse()
	require.True(t, errors.Is(err, cberrors.ErrNonReversible))

	_, err = transform.NewScrubMessage("(", "", transform.Location{})
	require.True(t, errors.Is(err, cberrors.ErrConfigValidation))
}

func TestMapAuthor(t *testing.T) {
	t.Parallel()

	t.Run("maps by full author or email", func(t *testing.T) {
		t.Parallel()
		m, err := transform.NewMapAuthor(map[string]string{
			"Foo <foo@foo.com>": "Public Foo <foo@example.com>",
			"bar@bar.com":       "Public Bar <bar@example.com>",
		}, transform.Location{})
		require.NoError(t, err)

		work := newWork("msg")
		require.NoError(t, m.Transform(work))
		require.Equal(t, history.Author{Name: "foo", Email: "foo@foo.com"}, work.Author(), "name is case sensitive")

		work.SetAuthor(history.Author{Name: "Foo", Email: "foo@foo.com"})
		require.NoError(t, m.Transform(work))
		require.Equal(t, "Public Foo <foo@example.com>", work.Author().String())

		work.SetAuthor(history.Author{Name: "Anyone", Email: "bar@bar.com"})
		require.NoError(t, m.Transform(work))
		require.Equal(t, "Public Bar <bar@example.com>", work.Author().String())
	})

	t.Run("reverses one-to-one mappings", func(t *testing.T) {
		t.Parallel()
		m, err := transform.NewMapAuthor(map[string]string{"Foo <foo@foo.com>": "Public Foo <foo@example.com>"}, transform.Location{})
		require.NoError(t, err)
		reversed, err := m.Reverse()
		require.NoError(t, err)

		work := newWork("msg")
		work.SetAuthor(history.Author{Name: "Public Foo", Email: "foo@example.com"})
		require.NoError(t, reversed.Transform(work))
		require.Equal(t, "Foo <foo@foo.com>", work.Author().String())
	})

	t.Run("refuses to reverse ambiguous mappings", func(t *testing.T) {
		t.Parallel()
		m, err := transform.NewMapAuthor(map[string]string{
			"A <a@x.com>": "Team <team@example.com>",
			"B <b@x.com>": "Team <team@example.com>",
		}, transform.Location{})
		require.NoError(t, err)
		_, err = m.Reverse()
		require.ErrorContains(t, err, "is mapped from more than one author")

		m, err = transform.NewMapAuthor(map[string]string{"a@x.com": "A <a@example.com>"}, transform.Location{})
		require.NoError(t, err)
		_, err = m.Reverse()
		require.ErrorContains(t, err, "'a@x.com' has no name")
	})

	t.Run("validates authors", func(t *testing.T) {
		t.Parallel()
		_, err := transform.NewMapAuthor(map[string]string{"a@x.com": "a@example.com"}, transform.Location{})
		require.ErrorContains(t, err, "must have a name")
		_, err = transform.NewMapAuthor(map[string]string{"nobody": "A <a@example.com>"}, transform.Location{})
		require.True(t, errors.Is(err, cberrors.ErrConfigValidation))
	})
}

func TestWorkContext(t *testing.T) {
	t.Parallel()

	work := transform.NewWorkContext(transform.WorkOptions{CheckoutDir: "/checkout", Message: "m"})
	require.Equal(t, "/checkout", work.CheckoutDir())
	require.NotNil(t, work.Splog())

	for range work.CurrentChanges() {
		t.Fatal("expected no current changes")
	}
	for range work.MigratedChanges() {
		t.Fatal("expected no migrated changes")
	}
}
