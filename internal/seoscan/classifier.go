package seoscan

import "github.com/seolens/seolens/internal/model"

// Classify derives the severity-bucketed issue list from a fact snapshot. It
// walks the same rules table as Score, so every penalty has a matching
// human-readable finding and every finding reflects a real deduction. All
// four severity buckets are present in the result, empty or not.
func Classify(facts model.PageFacts) map[model.Severity][]model.Issue {
	issues := map[model.Severity][]model.Issue{
		model.SeverityCritical: {},
		model.SeverityHigh:     {},
		model.SeverityMedium:   {},
		model.SeverityLow:      {},
	}

	for _, r := range rules {
		if r.applies(facts) {
			issues[r.severity] = append(issues[r.severity], model.Issue{
				Severity: r.severity,
				Message:  r.message(facts),
			})
		}
	}

	return issues
}
