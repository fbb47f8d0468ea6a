package seoscan

import (
	"strings"
	"testing"

	"github.com/seolens/seolens/internal/model"
)

func TestClassify_PerfectPageHasNoIssues(t *testing.T) {
	issues := Classify(perfectFacts())

	for _, severity := range model.Severities {
		bucket, ok := issues[severity]
		if !ok {
			t.Errorf("severity bucket %q missing from result", severity)
			continue
		}
		if len(bucket) != 0 {
			t.Errorf("bucket %q has %d issues, want 0: %v", severity, len(bucket), bucket)
		}
	}
}

func TestClassify_WorstPageCriticalIssues(t *testing.T) {
	issues := Classify(worstFacts())

	critical := issues[model.SeverityCritical]
	if len(critical) != 2 {
		t.Fatalf("critical issues = %d, want 2: %v", len(critical), critical)
	}

	var sawHTTPS, sawTitle bool
	for _, issue := range critical {
		if strings.Contains(issue.Message, "HTTPS") {
			sawHTTPS = true
		}
		if strings.Contains(issue.Message, "title") {
			sawTitle = true
		}
	}
	if !sawHTTPS {
		t.Error("critical bucket is missing the HTTPS issue")
	}
	if !sawTitle {
		t.Error("critical bucket is missing the title issue")
	}
}

// TestClassify_ScorerLockstep verifies the design contract that the scorer's
// penalty table and the classifier's severity table never drift: a rule fires
// for the scorer exactly when its message appears in the classifier output.
func TestClassify_ScorerLockstep(t *testing.T) {
	fixtures := map[string]model.PageFacts{
		"perfect": perfectFacts(),
		"worst":   worstFacts(),
		"mixed": func() model.PageFacts {
			f := perfectFacts()
			f.H1Count = 3
			f.LoadTimeMs = 2500
			f.ImageCount = 10
			f.ImagesWithoutAlt = 6
			f.OGDescription = ""
			return f
		}(),
		"thin https page": func() model.PageFacts {
			f := perfectFacts()
			f.WordCount = 120
			f.CanonicalURL = ""
			f.HasSitemapXML = false
			return f
		}(),
	}

	for name, facts := range fixtures {
		t.Run(name, func(t *testing.T) {
			issues := Classify(facts)

			messages := make(map[model.Severity]map[string]bool)
			for severity, bucket := range issues {
				messages[severity] = make(map[string]bool)
				for _, issue := range bucket {
					messages[severity][issue.Message] = true
				}
			}

			var total int
			for _, r := range rules {
				fired := r.applies(facts)
				listed := messages[r.severity][r.message(facts)]
				if fired && !listed {
					t.Errorf("rule %q fired but no issue listed at severity %q", r.name, r.severity)
				}
				if fired {
					total++
				}
			}

			var listed int
			for _, bucket := range issues {
				listed += len(bucket)
			}
			if listed != total {
				t.Errorf("issue count = %d, fired rules = %d", listed, total)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	facts := worstFacts()
	first := Classify(facts)

	for range 10 {
		got := Classify(facts)
		if len(got) != len(first) {
			t.Fatalf("bucket count changed between calls")
		}
		for severity, bucket := range first {
			other := got[severity]
			if len(other) != len(bucket) {
				t.Fatalf("bucket %q size changed between calls", severity)
			}
			for i := range bucket {
				if other[i] != bucket[i] {
					t.Fatalf("issue %d in bucket %q changed between calls", i, severity)
				}
			}
		}
	}
}
