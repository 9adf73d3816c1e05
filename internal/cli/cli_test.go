package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/shahbajlive/deck/internal/config"
	"github.com/shahbajlive/deck/internal/output"
	"github.com/shahbajlive/deck/internal/presenter"
	"github.com/shahbajlive/deck/internal/rehearsal"
	"github.com/shahbajlive/deck/internal/remote"
)

const tempDeck = `id: tmp
title: Temp
sections:
  - id: a
    title: A
    slides:
      - id: one
        title: One
      - id: two
  - id: empty
    title: Empty
`

// isolate points config and data lookups at a fresh directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"DECK_THEME", "DECK_SKIP_ANIMATIONS", "DECK_REMOTE_ADDR", "DECK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return dir
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestListBuiltinJSON(t *testing.T) {
	isolate(t)

	out, err := runCmd(t, "", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	var resp output.ListResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if resp.Deck != "declarative-vs-imperative" {
		t.Errorf("Deck = %q", resp.Deck)
	}
	if resp.Count != len(resp.Sections) || resp.Count == 0 {
		t.Fatalf("Count = %d, sections = %d", resp.Count, len(resp.Sections))
	}
	if resp.Sections[0].ID != "intro" || resp.Sections[0].Slides[0] != "title" {
		t.Errorf("first section = %+v", resp.Sections[0])
	}
}

func TestListText(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "deck.yaml", tempDeck)

	out, err := runCmd(t, "", "--deck", path, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"Temp", "ID", "SLIDES", "a", "empty"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestListMissingDeckJSONError(t *testing.T) {
	dir := isolate(t)

	out, err := runCmd(t, "", "--deck", filepath.Join(dir, "nope.yaml"), "list", "--json")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	var resp output.ErrorResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if resp.Success || !strings.Contains(resp.Error, "reading deck") {
		t.Errorf("unexpected error response %+v", resp)
	}
}

func TestValidateWarnings(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "deck.yaml", tempDeck)

	out, err := runCmd(t, "", "validate", path, "--json")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	var resp output.ValidateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid || resp.Sections != 2 || resp.Slides != 2 {
		t.Errorf("resp = %+v", resp)
	}
	var msgs []string
	for _, w := range resp.Warnings {
		msgs = append(msgs, w.Section+"/"+w.Slide+": "+w.Message)
	}
	joined := strings.Join(msgs, "\n")
	for _, want := range []string{"a/two: slide has no title", "empty/: section has no slides"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q:\n%s", want, joined)
		}
	}
}

func TestValidateDuplicateSlideFails(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "dup.yaml", `id: dup
title: Dup
sections:
  - id: s
    title: S
    slides:
      - id: x
        title: X
      - id: x
        title: X again
`)

	_, err := runCmd(t, "", "validate", path)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("err = %v, want duplicate slide id", err)
	}

	out, err := runCmd(t, "", "validate", path, "--json")
	if !errors.Is(err, errReported) {
		t.Fatalf("json err = %v", err)
	}
	var resp output.ValidateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Valid || resp.Error == "" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestValidateBuiltinText(t *testing.T) {
	isolate(t)

	out, err := runCmd(t, "", "validate")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.HasPrefix(out, "✓ built-in deck:") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderSlide(t *testing.T) {
	isolate(t)

	out, err := runCmd(t, "", "--theme", "mocha", "render", "--section", "intro", "--slide", "1", "--width", "100")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(ansi.Strip(out), "宣言的 vs 命令的") {
		t.Errorf("rendered slide missing its title:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown section", []string{"render", "--section", "nope"}, "nope"},
		{"slide out of range", []string{"render", "--section", "intro", "--slide", "99"}, "out of range"},
		{"missing section flag", []string{"render"}, "section"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runCmd(t, "", tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestInvalidThemeFlag(t *testing.T) {
	isolate(t)

	_, err := runCmd(t, "", "--theme", "solarized", "list")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestStatsFromRecordedSession(t *testing.T) {
	isolate(t)

	store, err := rehearsal.Open(config.Default().Rehearsal.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	id, err := store.Start(ctx, "declarative-vs-imperative", "intro", start)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, v := range []rehearsal.View{
		{SlideID: "title", Index: 0, Direction: "none", EnteredAt: start, Duration: 2 * time.Second},
		{SlideID: "agenda", Index: 1, Direction: "next", EnteredAt: start.Add(2 * time.Second), Duration: 4 * time.Second},
	} {
		if err := store.Record(ctx, id, v); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := store.Finish(ctx, id, start.Add(6*time.Second)); err != nil {
		t.Fatalf("finish: %v", err)
	}
	store.Close()

	out, err := runCmd(t, "", "stats", "--json")
	if err != nil {
		t.Fatalf("stats: %v\n%s", err, out)
	}
	var resp output.StatsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].Section != "intro" {
		t.Fatalf("sections = %+v", resp.Sections)
	}
	sec := resp.Sections[0]
	if sec.TotalMs != 6000 || len(sec.Slides) != 2 || sec.Slides[1].Slide != "agenda" {
		t.Errorf("timings = %+v", sec)
	}

	out, err = runCmd(t, "n\n", "stats", "--clear")
	if err != nil || !strings.Contains(out, "Aborted.") {
		t.Fatalf("declined clear: %v\n%s", err, out)
	}
	out, err = runCmd(t, "", "stats", "--clear", "--yes")
	if err != nil || !strings.Contains(out, "Deleted 1 sessions.") {
		t.Fatalf("clear: %v\n%s", err, out)
	}
	out, _ = runCmd(t, "", "stats")
	if !strings.Contains(out, "No rehearsals recorded") {
		t.Errorf("after clear: %s", out)
	}
}

func TestPresentRejectsUnknownSection(t *testing.T) {
	isolate(t)

	_, err := runCmd(t, "", "present", "--section", "missing")
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("err = %v", err)
	}
}

func TestPresentWatchNeedsDeckFile(t *testing.T) {
	isolate(t)

	_, err := runCmd(t, "", "present", "--watch")
	if err == nil || !strings.Contains(err.Error(), "--watch") {
		t.Errorf("err = %v", err)
	}
}

func TestConfigFileAndLogFile(t *testing.T) {
	dir := isolate(t)
	deckPath := writeFile(t, dir, "deck.yaml", tempDeck)
	logPath := filepath.Join(dir, "logs", "deck.log")
	cfgPath := writeFile(t, dir, "config.toml", "deck = \""+deckPath+"\"\n\n[log]\nfile = \""+logPath+"\"\nlevel = \"debug\"\n")

	out, err := runCmd(t, "", "--config", cfgPath, "list", "--json")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"deck": "tmp"`) {
		t.Errorf("config deck not used:\n%s", out)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := runCmd(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "deck "+Version {
		t.Errorf("version = %q", out)
	}

	out, err = runCmd(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var resp output.VersionResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil || resp.Version != Version {
		t.Errorf("resp = %+v, err %v", resp, err)
	}
}

func TestCommandDirection(t *testing.T) {
	tests := map[remote.Command]presenter.Direction{
		remote.CommandNext:      presenter.DirectionNext,
		remote.CommandPrev:      presenter.DirectionPrev,
		remote.Command("bogus"): presenter.DirectionNone,
	}
	for c, want := range tests {
		if got := commandDirection(c); got != want {
			t.Errorf("commandDirection(%q) = %v, want %v", c, got, want)
		}
	}
}
