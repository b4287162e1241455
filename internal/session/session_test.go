package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"flooring-chatter/internal/catalog"
	"flooring-chatter/internal/storage"
)

type memTranscript struct {
	saved [][]string
}

func (m *memTranscript) Save(entries []string) error {
	m.saved = append(m.saved, append([]string(nil), entries...))
	return nil
}
func (m *memTranscript) Path() string { return "mem.txt" }

type failingTranscript struct{}

func (failingTranscript) Save([]string) error { return errors.New("permission denied") }
func (failingTranscript) Path() string        { return "/readonly/chatbot_conversation.txt" }

func testCatalog() *catalog.Catalog {
	d := decimal.RequireFromString
	return catalog.New([]catalog.Product{
		{Name: "Oak Hardwood", Category: "Hardwood", PricePerArea: d("5.00"), InstallCostPerArea: d("2.00")},
		{Name: "Red Oak Plank", Category: "Hardwood", PricePerArea: d("6.25"), InstallCostPerArea: d("2.50")},
		{Name: "Porcelain Tile", Category: "Tile", PricePerArea: d("4.00"), InstallCostPerArea: d("3.50")},
	})
}

func newTestSession(input string, store storage.Transcript) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	if store == nil {
		store = &memTranscript{}
	}
	s := New(testCatalog(), NewPlainReader(strings.NewReader(input), out), out, store)
	return s, out
}

func run(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	cases := map[string]Command{
		"exit":      CmdExit,
		"  LIST  ":  CmdList,
		"Filter":    CmdFilter,
		"product":   CmdProduct,
		"COST":      CmdCost,
		"help":      CmdHelp,
		"summary":   CmdSummary,
		"save\t":    CmdSave,
		"":          CmdEmpty,
		"   ":       CmdEmpty,
		"show oak":  CmdUnknown,
		"lists":     CmdUnknown,
	}
	for in, want := range cases {
		if got := ParseCommand(in); got != want {
			t.Fatalf("ParseCommand(%q) = %s, want %s", in, got, want)
		}
	}
	if CmdCost.String() != "cost" || CmdUnknown.String() != "unknown" {
		t.Fatalf("unexpected String(): %s / %s", CmdCost, CmdUnknown)
	}
}

func TestParseArea(t *testing.T) {
	if a, err := ParseArea(" 12.5 "); err != nil || !a.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("ParseArea(12.5) = %s, %v", a, err)
	}
	for _, in := range []string{"abc", "", "NaN", "Inf", "12 sq ft"} {
		if _, err := ParseArea(in); !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("ParseArea(%q): want ErrInvalidNumber, got %v", in, err)
		}
	}
	for _, in := range []string{"0", "-5", "-0.01"} {
		if _, err := ParseArea(in); !errors.Is(err, ErrNonPositiveArea) {
			t.Fatalf("ParseArea(%q): want ErrNonPositiveArea, got %v", in, err)
		}
	}
}

func TestRun_ExitAndEOF(t *testing.T) {
	s, out := newTestSession("exit\nlist\n", nil)
	run(t, s)
	if !strings.Contains(out.String(), "Welcome to the Flooring Chatbot") {
		t.Fatalf("greeting missing: %q", out.String())
	}
	if strings.Contains(out.String(), "available products") {
		t.Fatalf("commands after exit were processed")
	}

	s, out = newTestSession("help\n", nil)
	run(t, s)
	if !strings.Contains(out.String(), "Have a great day") {
		t.Fatalf("EOF should end the session politely: %q", out.String())
	}
}

func TestRun_Cancelled(t *testing.T) {
	s, _ := newTestSession("list\n", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestList_IsIdempotent(t *testing.T) {
	s, out := newTestSession("", nil)
	if _, err := s.Handle(CmdList); err != nil {
		t.Fatalf("list: %v", err)
	}
	first := out.String()
	out.Reset()
	if _, err := s.Handle(CmdList); err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.String() != first {
		t.Fatalf("list output changed between calls")
	}
	for _, want := range []string{"Oak Hardwood", "Porcelain Tile", "Tile", "$5.00", "$6.25"} {
		if !strings.Contains(first, want) {
			t.Fatalf("list output missing %q:\n%s", want, first)
		}
	}
}

func TestFilter(t *testing.T) {
	s, out := newTestSession("filter\nhardwood\nfilter\nstone\nfilter\n\n", nil)
	run(t, s)
	got := out.String()
	if !strings.Contains(got, "Oak Hardwood - $5.00/sq ft") || !strings.Contains(got, "Red Oak Plank - $6.25/sq ft") {
		t.Fatalf("filter lines missing:\n%s", got)
	}
	if strings.Contains(got, "Porcelain Tile - ") {
		t.Fatalf("filter leaked non-matching product:\n%s", got)
	}
	if !strings.Contains(got, msgNoMatch) {
		t.Fatalf("no-match message missing:\n%s", got)
	}
	if !strings.Contains(got, msgNoCriteria) {
		t.Fatalf("no-criteria message missing:\n%s", got)
	}
	if len(s.History()) != 0 {
		t.Fatalf("filter must not touch the log: %+v", s.History())
	}
}

func TestProduct_LogsEvenWhenNotFound(t *testing.T) {
	s, out := newTestSession("product\nporcelain\nproduct\nmarble\n", nil)
	run(t, s)
	got := out.String()
	if !strings.Contains(got, "Porcelain Tile") || !strings.Contains(got, "$3.50") {
		t.Fatalf("product details missing:\n%s", got)
	}
	if !strings.Contains(got, msgNoMatch) {
		t.Fatalf("not-found message missing:\n%s", got)
	}
	h := s.History()
	if len(h) != 2 || h[0] != "Inquired about product: porcelain." || h[1] != "Inquired about product: marble." {
		t.Fatalf("unexpected log: %+v", h)
	}
}

func TestCost_Success(t *testing.T) {
	s, out := newTestSession("cost\nOak\n100\n", nil)
	run(t, s)
	got := out.String()
	for _, want := range []string{
		"Product Name: Oak Hardwood",
		"Area Size (sq ft): 100",
		"Material Cost: $500.00",
		"Installation Cost: $200.00",
		"Total Cost: $700.00",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "minimum charge") {
		t.Fatalf("minimum note printed without floor:\n%s", got)
	}
	h := s.History()
	if len(h) != 1 || !strings.HasPrefix(h[0], "Calculated cost for Oak: Product Name: Oak Hardwood") {
		t.Fatalf("unexpected log: %+v", h)
	}
}

func TestCost_MinimumCharge(t *testing.T) {
	s, out := newTestSession("cost\nOak\n10\n", nil)
	run(t, s)
	got := out.String()
	if !strings.Contains(got, "Material Cost: $50.00") || !strings.Contains(got, "Total Cost: $250.00") {
		t.Fatalf("floor not shown:\n%s", got)
	}
	if !strings.Contains(got, "A minimum charge of $250.00 applies to areas under 1000 sq ft.") {
		t.Fatalf("minimum note missing:\n%s", got)
	}
}

func TestCost_ValidationAbortsWithoutLogging(t *testing.T) {
	s, out := newTestSession("cost\noak\nabc\ncost\noak\n-3\ncost\nmarble\nlist\n", nil)
	run(t, s)
	got := out.String()
	if !strings.Contains(got, msgBadNumber) {
		t.Fatalf("invalid number message missing:\n%s", got)
	}
	if !strings.Contains(got, msgNonPositive) {
		t.Fatalf("non-positive message missing:\n%s", got)
	}
	if !strings.Contains(got, msgNotFound) {
		t.Fatalf("not-found message missing:\n%s", got)
	}
	// "list" after the unknown product is read as a command, not as an area.
	if !strings.Contains(got, "Here are some of our available products:") {
		t.Fatalf("loop did not return to the command prompt:\n%s", got)
	}
	if strings.Count(got, promptArea) != 2 {
		t.Fatalf("area prompt should appear only for known products:\n%s", got)
	}
	if len(s.History()) != 0 {
		t.Fatalf("failed cost calculations must not be logged: %+v", s.History())
	}
}

func TestSummary_ShowsEntriesInOrder(t *testing.T) {
	s, out := newTestSession("summary\nproduct\ntile\ncost\nmaple\ncost\nred oak\n2000\nsummary\nsummary\n", nil)
	run(t, s)
	got := out.String()
	if !strings.Contains(got, msgNoHistory) {
		t.Fatalf("empty summary message missing:\n%s", got)
	}
	h := s.History()
	if len(h) != 2 {
		t.Fatalf("want 2 entries, got %+v", h)
	}
	if h[0] != "Inquired about product: tile." || !strings.HasPrefix(h[1], "Calculated cost for red oak:") {
		t.Fatalf("unexpected order: %+v", h)
	}
	i := strings.Index(got, "- "+h[0])
	j := strings.Index(got, "- "+h[1])
	if i < 0 || j < 0 || i > j {
		t.Fatalf("summary lines missing or out of order:\n%s", got)
	}

	// Two consecutive summaries print the same thing.
	parts := strings.Split(got, "Here's a summary of your interactions with me:")
	if len(parts) != 3 {
		t.Fatalf("want two summaries, got %d", len(parts)-1)
	}
	second := strings.SplitN(parts[1], promptCommand, 2)[0]
	third := strings.SplitN(parts[2], promptCommand, 2)[0]
	if second != third {
		t.Fatalf("summary not idempotent:\n%q\n%q", second, third)
	}
}

func TestSave(t *testing.T) {
	store := &memTranscript{}
	s, out := newTestSession("product\noak\nsave\n", store)
	run(t, s)
	if len(store.saved) != 1 || len(store.saved[0]) != 1 || store.saved[0][0] != "Inquired about product: oak." {
		t.Fatalf("unexpected saved entries: %+v", store.saved)
	}
	if !strings.Contains(out.String(), "Your conversation has been saved as 'mem.txt'.") {
		t.Fatalf("save confirmation missing:\n%s", out.String())
	}
}

func TestSave_ToFileOverwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "chatbot_conversation.txt")
	if err := os.WriteFile(p, []byte("stale\nstale\nstale"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s, _ := newTestSession("product\noak\nsave\n", storage.NewFileTranscript(p))
	run(t, s)
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "Inquired about product: oak." {
		t.Fatalf("unexpected file contents: %q", raw)
	}
}

func TestSave_FailureIsReported(t *testing.T) {
	s, out := newTestSession("save\n", failingTranscript{})
	run(t, s)
	got := out.String()
	if strings.Contains(got, "has been saved") {
		t.Fatalf("failed save reported as success:\n%s", got)
	}
	if !strings.Contains(got, "couldn't save the conversation") || !strings.Contains(got, "permission denied") {
		t.Fatalf("failure message missing:\n%s", got)
	}
}

func TestUnknownAndHelp(t *testing.T) {
	s, out := newTestSession("dance\n\nhelp\n", nil)
	run(t, s)
	got := out.String()
	if strings.Count(got, msgUnknown) != 1 {
		t.Fatalf("want one unknown-command message:\n%s", got)
	}
	for _, c := range commands {
		if !strings.Contains(got, "- '"+c.name+"': ") {
			t.Fatalf("help missing %q:\n%s", c.name, got)
		}
	}
}

func TestRun_OverlongLineIsUnknownCommand(t *testing.T) {
	for _, n := range []int{70000, maxLineBytes + 4096} {
		s, out := newTestSession(strings.Repeat("x", n)+"\nlist\n", nil)
		run(t, s)
		got := out.String()
		if !strings.Contains(got, msgUnknown) {
			t.Fatalf("%d-byte line: unknown-command message missing", n)
		}
		if !strings.Contains(got, "Here are some of our available products:") {
			t.Fatalf("%d-byte line: loop stopped before the next command", n)
		}
	}
}
