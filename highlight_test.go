package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mitjafelicijan/go-tree-sitter/golang"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const goSource = "package main\n\nfunc main() {\n\treturn 42\n}\n"

// checkTokens verifies tokens are sorted, non-overlapping and inside n bytes.
func checkTokens(t *testing.T, tokens []TokenRange, n int) {
	t.Helper()
	end := 0
	for i, tok := range tokens {
		if tok.Len <= 0 {
			t.Errorf("token %d has length %d", i, tok.Len)
		}
		if tok.Start < end {
			t.Errorf("token %d at %d overlaps the previous one ending at %d", i, tok.Start, end)
		}
		end = tok.Start + tok.Len
	}
	if end > n {
		t.Errorf("tokens end at %d, past the %d byte source", end, n)
	}
}

func kindAt(tokens []TokenRange, off int) string {
	tok, ok := TokenAt(tokens, off)
	if !ok {
		return ""
	}
	return tok.Kind
}

func TestTokenAt(t *testing.T) {
	tokens := []TokenRange{
		{Start: 0, Len: 3, Kind: "keyword"},
		{Start: 5, Len: 2, Kind: "string"},
		{Start: 7, Len: 1, Kind: "number"},
	}
	tests := []struct {
		off  int
		want string
	}{
		{0, "keyword"},
		{2, "keyword"},
		{3, ""},
		{4, ""},
		{5, "string"},
		{6, "string"},
		{7, "number"},
		{8, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := kindAt(tokens, tt.off); got != tt.want {
			t.Errorf("TokenAt(%d) = %q, want %q", tt.off, got, tt.want)
		}
	}
	if _, ok := TokenAt(nil, 0); ok {
		t.Error("TokenAt on no tokens found something")
	}
}

func TestNestCaptures(t *testing.T) {
	tests := []struct {
		name string
		caps []capture
		n    int
		want []TokenRange
	}{
		{
			name: "nested",
			caps: []capture{{start: 2, end: 4, kind: "keyword", pattern: 1}, {start: 0, end: 10, kind: "string"}},
			n:    12,
			want: []TokenRange{{0, 2, "string"}, {2, 2, "keyword"}, {4, 6, "string"}},
		},
		{
			name: "identical spans prefer the later pattern",
			caps: []capture{{start: 0, end: 3, kind: "function", pattern: 5}, {start: 0, end: 3, kind: "variable", pattern: 0}},
			n:    3,
			want: []TokenRange{{0, 3, "function"}},
		},
		{
			name: "crossing capture is clipped",
			caps: []capture{{start: 0, end: 5, kind: "string"}, {start: 3, end: 8, kind: "number", pattern: 1}},
			n:    12,
			want: []TokenRange{{0, 3, "string"}, {3, 2, "number"}},
		},
		{
			name: "capture past the source is clipped",
			caps: []capture{{start: 4, end: 50, kind: "comment"}},
			n:    10,
			want: []TokenRange{{4, 6, "comment"}},
		},
		{
			name: "duplicates",
			caps: []capture{{start: 1, end: 2, kind: "number"}, {start: 1, end: 2, kind: "number"}},
			n:    3,
			want: []TokenRange{{1, 1, "number"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := flattenEvents(context.Background(), nestCaptures(tt.caps, tt.n))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFlattenEvents(t *testing.T) {
	events := []highlightEvent{
		{typ: eventSource, start: 0, end: 2},
		{typ: eventStart, kind: "keyword"},
		{typ: eventSource, start: 2, end: 4},
		{typ: eventEnd},
		{typ: eventStart, kind: "keyword"},
		{typ: eventSource, start: 4, end: 6},
		{typ: eventEnd},
	}

	got, err := flattenEvents(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (TokenRange{Start: 2, Len: 4, Kind: "keyword"}) {
		t.Errorf("adjacent ranges not merged: %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := flattenEvents(ctx, events); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled flatten returned %v", err)
	}
}

func TestNewTokenizerConfiguration(t *testing.T) {
	tests := []struct {
		name string
		lang *Language
	}{
		{"no language", nil},
		{"unknown lexer", &Language{Name: "Nope", Lexer: "no-such-lexer"}},
		{"missing query", &Language{Name: "Go", Grammar: golang.GetLanguage, Query: "missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newTokenizer(tt.lang); !errors.Is(err, ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestHighlightText(t *testing.T) {
	t.Run("tree-sitter", func(t *testing.T) {
		tokens, err := highlightText(context.Background(), NewBuffer(goSource), detectLanguage("main.go"))
		if err != nil {
			t.Fatal(err)
		}
		checkTokens(t, tokens, len(goSource))

		checks := map[string]string{
			"package": "keyword",
			"func":    "keyword",
			"return":  "keyword",
			"42":      "number",
			"main()":  "function",
		}
		for word, want := range checks {
			if got := kindAt(tokens, strings.Index(goSource, word)); got != want {
				t.Errorf("%q highlighted as %q, want %q", word, got, want)
			}
		}
	})

	t.Run("chroma", func(t *testing.T) {
		src := "fn main() {\n    let s = \"hi\"; // note\n}\n"
		tokens, err := highlightText(context.Background(), NewBuffer(src), detectLanguage("main.rs"))
		if err != nil {
			t.Fatal(err)
		}
		checkTokens(t, tokens, len(src))

		checks := map[string]string{
			"fn":      "keyword",
			"let":     "keyword",
			"\"hi\"":  "string",
			"// note": "comment",
		}
		for word, want := range checks {
			if got := kindAt(tokens, strings.Index(src, word)); got != want {
				t.Errorf("%q highlighted as %q, want %q", word, got, want)
			}
		}
	})

	t.Run("multibyte offsets", func(t *testing.T) {
		src := "// héllo wörld\nvar x = \"ünï\"\n"
		tokens, err := highlightText(context.Background(), NewBuffer(src), detectLanguage("a.go"))
		if err != nil {
			t.Fatal(err)
		}
		checkTokens(t, tokens, len(src))
		if got := kindAt(tokens, strings.Index(src, "\"ünï\"")); got != "string" {
			t.Errorf("string highlighted as %q", got)
		}
	})
}

func TestHighlightGrammars(t *testing.T) {
	tests := []struct {
		path string
		src  string
		word string
		want string
	}{
		{"init.lua", "local x = 1 -- one\n", "local", "keyword"},
		{"init.lua", "local x = 1 -- one\n", "-- one", "comment"},
		{"README.md", "# Title\n\ntext\n", "# Title", "keyword"},
		{"index.php", "<?php\necho 42;\n", "echo", "keyword"},
		{"index.php", "<?php\necho 42;\n", "42", "number"},
		{"q.sql", "SELECT a FROM t;\n", "SELECT", "keyword"},
		{"q.sql", "SELECT a FROM t;\n", "FROM", "keyword"},
		{"Dockerfile", "FROM alpine\nRUN make\n", "FROM", "keyword"},
		{"Dockerfile", "FROM alpine\nRUN make\n", "RUN", "keyword"},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.word, func(t *testing.T) {
			lang := detectLanguage(tt.path)
			if lang == nil || lang.Grammar == nil {
				t.Fatalf("%s has no grammar", tt.path)
			}
			tokens, err := highlightText(context.Background(), NewBuffer(tt.src), lang)
			if err != nil {
				t.Fatal(err)
			}
			checkTokens(t, tokens, len(tt.src))
			if got := kindAt(tokens, strings.Index(tt.src, tt.word)); got != tt.want {
				t.Errorf("%q highlighted as %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestQueriesCompile(t *testing.T) {
	for _, lang := range languages {
		t.Run(lang.Name, func(t *testing.T) {
			if _, err := newTokenizer(lang); err != nil {
				t.Errorf("tokenizer for %s: %v", lang.Name, err)
			}
		})
	}
}

func TestChromaTokenizerCanceled(t *testing.T) {
	tk, err := newTokenizer(detectLanguage("a.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tk.events(ctx, []byte("x: 1\n")); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func receiveResult(t *testing.T, results <-chan HighlightResult) HighlightResult {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a highlight result")
	}
	return HighlightResult{}
}

func TestHighlighterRun(t *testing.T) {
	jobs := make(chan HighlightJob, 4)
	results := make(chan HighlightResult, 4)
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewHighlighter(jobs, results, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	// A broken configuration ends silently.
	jobs <- HighlightJob{ID: uuid.New(), WindowID: 1, Seq: 1, Text: NewBuffer("x"), Language: &Language{Name: "Broken", Lexer: "no-such-lexer"}}
	jobs <- HighlightJob{ID: uuid.New(), WindowID: 2, Seq: 7, Text: NewBuffer(goSource), Language: detectLanguage("main.go")}

	r := receiveResult(t, results)
	if r.WindowID != 2 || r.Seq != 7 {
		t.Errorf("result for window %d seq %d, want window 2 seq 7", r.WindowID, r.Seq)
	}
	if len(r.Tokens) == 0 {
		t.Error("no tokens")
	}
	if logs.Len() != 0 {
		t.Errorf("logged %d entries above debug level", logs.Len())
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHighlighterDebugFields(t *testing.T) {
	jobs := make(chan HighlightJob, 1)
	results := make(chan HighlightResult, 1)
	core, logs := observer.New(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go NewHighlighter(jobs, results, zap.New(core)).Run(ctx)

	id := uuid.New()
	jobs <- HighlightJob{ID: id, WindowID: 3, Seq: 9, Text: NewBuffer(goSource), Language: detectLanguage("main.go")}
	receiveResult(t, results)

	started := logs.FilterMessage("started job").All()
	if len(started) != 1 {
		t.Fatalf("%d started entries, want 1", len(started))
	}
	entry := started[0]
	if entry.LoggerName != "Highlight" {
		t.Errorf("logger name = %q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["job"] != id.String() || fields["window"] != int64(3) || fields["seq"] != uint64(9) {
		t.Errorf("fields = %v", fields)
	}
}

func TestHighlighterStopsOnClosedJobs(t *testing.T) {
	jobs := make(chan HighlightJob)
	h := NewHighlighter(jobs, make(chan HighlightResult), nil)
	close(jobs)

	done := make(chan struct{})
	go func() {
		h.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the job channel closed")
	}
}

func TestHighlightSupersededJobNeverVisible(t *testing.T) {
	e := newTestEditor()
	w := newTestWindow(e, strings.Repeat("var a = \"old\"\n", 2000))
	w.language = detectLanguage("a.go")
	e.queueHighlight(w)

	w.buffer = NewBuffer("package main\n")
	e.queueHighlight(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go NewHighlighter(e.jobs, e.results, nil).Run(ctx)

	for {
		r := receiveResult(t, e.results)
		e.applyHighlight(r)
		if r.Seq == w.highlightSeq {
			break
		}
		if w.highlights != nil {
			t.Fatal("result of the superseded job became visible")
		}
	}

	checkTokens(t, w.highlights, w.buffer.LenBytes())
	if got := kindAt(w.highlights, 0); got != "keyword" {
		t.Errorf("offset 0 highlighted as %q, want keyword", got)
	}
}
