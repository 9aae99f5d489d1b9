package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"icaldump/internal/config"
)

const feedBody = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//icaldump//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:event-standup\r\n" +
	"SUMMARY:Standup\r\n" +
	"DTSTART:20240601T090000\r\n" +
	"DTEND:20240601T091500\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func testEnv(t *testing.T) (configPath string, feedURL string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, feedBody)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	cfg := &config.Config{
		Calendars: []config.CalendarConfig{{Name: "test", URL: srv.URL}},
		Template:  "${summary}\n",
		CacheDir:  filepath.Join(dir, "cache"),
	}
	require.NoError(t, config.Save(configPath, cfg))

	return configPath, srv.URL
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf
	err := app.Run(append([]string{"icaldump"}, args...))
	return buf.String(), err
}

func TestDumpConfiguredCalendar(t *testing.T) {
	configPath, _ := testEnv(t)

	out, err := runApp(t, "--config", configPath, "dump", "--date", "01.06.2024")
	require.NoError(t, err)
	require.Equal(t, "Standup\n", out)
}

func TestDumpDirectURL(t *testing.T) {
	configPath, feedURL := testEnv(t)

	out, err := runApp(t,
		"--config", configPath,
		"dump", "--url", feedURL, "--date", "2024-06-01", "--template", "${summary} ${startHour}:${startMinute}\n")
	require.NoError(t, err)
	require.Equal(t, "Standup 09:00\n", out)
}

func TestDumpOffDayIsEmpty(t *testing.T) {
	configPath, _ := testEnv(t)

	out, err := runApp(t, "--config", configPath, "dump", "--date", "02.06.2024")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDumpBadDate(t *testing.T) {
	configPath, _ := testEnv(t)

	_, err := runApp(t, "--config", configPath, "dump", "--date", "25-12-2024-00")
	require.Error(t, err)
	require.Contains(t, err.Error(), "DD.MM.YYYY")
}

func TestDumpUnknownCalendar(t *testing.T) {
	configPath, _ := testEnv(t)

	_, err := runApp(t, "--config", configPath, "dump", "--calendar", "missing", "--date", "01.06.2024")
	require.Error(t, err)
}

func TestDatesCommand(t *testing.T) {
	out, err := runApp(t, "dates")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Yesterday")
	require.Contains(t, lines[3], "Today")
}

func TestDatesCommandWithQuery(t *testing.T) {
	out, err := runApp(t, "dates", "2024-12-25")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "25.12.2024\n"), out)
}
