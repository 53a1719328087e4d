package dsl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/dsl"
)

func TestLoadFileMatchesCompiledBrief(t *testing.T) {
	doc, err := dsl.LoadFile("testdata/phase1.brief")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := document.StrategyBrief
	if diff := cmp.Diff(want.Meta(), doc.Meta()); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Sections(), doc.Sections()); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	f, err := dsl.ParseString(`brief X v2.0.0 { footer accent blue { "x" } }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = dsl.Decode(f)
	if err == nil || !strings.Contains(err.Error(), "does not satisfy ^1") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestDecodeReportsEveryStructuralProblem(t *testing.T) {
	src := `brief X v1 {
  meta { title: "T" colour: "red" }
  timeline "Later" { "x" }
  metrics "M" icon clock sparkle {
    metric "A" { value: "1" unit: "ms" }
  }
}`
	f, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = dsl.Decode(f)
	var cfg *document.ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	problems := cfg.Problems()
	wants := []string{
		`2:21: meta: unknown key "colour"`,
		`3:3: unknown section "timeline"`,
		`4:26: metrics: unexpected argument sparkle`,
		`5:29: metric: unknown key "unit"`,
	}
	if len(problems) != len(wants) {
		t.Fatalf("expected %d problems, got %d: %v", len(wants), len(problems), problems)
	}
	for i, want := range wants {
		if !strings.HasSuffix(problems[i], want) {
			t.Errorf("problem %d: expected suffix %q, got %q", i, want, problems[i])
		}
	}
}

func TestDecodeRejectsDuplicateMeta(t *testing.T) {
	f, err := dsl.ParseString(`brief X v1 {
  meta { title: "First" }
  meta { title: "Second" }
  footer accent blue { "bye" }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = dsl.Decode(f)
	var cfg *document.ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	problems := cfg.Problems()
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem, got %d: %v", len(problems), problems)
	}
	if !strings.HasSuffix(problems[0], "3:3: duplicate meta block (first at 2:3)") {
		t.Fatalf("unexpected problem %q", problems[0])
	}
}

func TestDecodeRunsModelValidation(t *testing.T) {
	f, err := dsl.ParseString(`brief X v1 {
  footer accent blue { "bye" }
  objective "Goal" icon target accent blue { "x" }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = dsl.Decode(f)
	if !document.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "document title is empty") || !strings.Contains(err.Error(), "footer must be the last section") {
		t.Fatalf("expected title and footer problems, got %v", err)
	}
}

func TestDecodeJoinsCodeLiterals(t *testing.T) {
	f, err := dsl.ParseString(`brief X v1 {
  meta { title: "T" }
  workflow "W" icon settings accent purple {
    step "S" icon download accent green {
      "line one"
      "  line two"
    }
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	doc, err := dsl.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	steps := doc.Sections()[0].Steps
	if len(steps) != 1 || steps[0].Code != "line one\n  line two" {
		t.Fatalf("unexpected steps: %+v", steps)
	}
}
