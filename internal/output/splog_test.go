package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplogConsole(t *testing.T) {
	t.Run("writes info, warn and error lines", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)

		splog.Info("migrated %d references", 2)
		splog.Warn("skipped")
		splog.Error("failed: %s", "boom")

		require.Equal(t, "migrated 2 references\n⚠️  skipped\n❌ failed: boom\n", buf.String())
	})

	t.Run("suppresses debug unless enabled", func(t *testing.T) {
		var buf bytes.Buffer
		splog, err := NewSplogWithOptions(Options{Writer: &buf})
		require.NoError(t, err)

		splog.Debug("hidden")
		require.Empty(t, buf.String())

		debug := NewSplogWithWriter(&buf)
		debug.Debug("shown %s", "now")
		require.Equal(t, "shown now\n", buf.String())
	})

	t.Run("pages are written verbatim", func(t *testing.T) {
		var buf bytes.Buffer
		splog := NewSplogWithWriter(&buf)
		splog.Page("100% of 7b")
		splog.Newline()
		require.Equal(t, "100% of 7b\n", buf.String())
	})
}

func TestSplogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "copybara.log")

	var buf bytes.Buffer
	splog, err := NewSplogWithOptions(Options{Writer: &buf, LogFile: logFile, MaxSize: 5})
	require.NoError(t, err)

	splog.Debug("only in file")
	splog.Info("everywhere")
	require.NoError(t, splog.Close())

	require.Equal(t, "everywhere\n", buf.String())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "only in file")
	require.Contains(t, string(data), "everywhere")
}

func TestCreateLumberjackLogger(t *testing.T) {
	t.Setenv("COPYBARA_LOG_MAX_BACKUPS", "7")

	logger := createLumberjackLogger(Options{LogFile: "x.log", MaxSize: 3})
	require.Equal(t, 3, logger.MaxSize)
	require.Equal(t, 7, logger.MaxBackups)
	require.Equal(t, 30, logger.MaxAge)
}

func TestStyles(t *testing.T) {
	DisableColor()
	require.Equal(t, "title", Header("title"))
	require.Equal(t, "ok", Success("ok"))
	require.Equal(t, "bad", Failure("bad"))
	require.Equal(t, "dim", Muted("dim"))
}
