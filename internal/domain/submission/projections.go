package submission

import (
	"sort"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PURE PROJECTIONS
// Deterministic, side-effect-free views over submission slices. Dashboard
// charts are rendered from these tallies.
// ══════════════════════════════════════════════════════════════════════════════

// StatusTally counts submissions per status. All three canonical statuses are
// always present in the result, unseen ones counted as 0.
func StatusTally(subs []*Submission) map[Status]int {
	tally := map[Status]int{
		StatusPending:   0,
		StatusValidated: 0,
		StatusRejected:  0,
	}
	for _, s := range subs {
		tally[s.Status]++
	}
	return tally
}

// LevelTally counts submissions per level. The four canonical levels are
// always present; off-enum levels get their own pass-through bucket and are
// counted as-is.
func LevelTally(subs []*Submission) map[Level]int {
	tally := make(map[Level]int, len(CanonicalLevels))
	for _, l := range CanonicalLevels {
		tally[l] = 0
	}
	for _, s := range subs {
		tally[s.Level]++
	}
	return tally
}

// SortNewestFirst sorts submissions by descending ID in place and returns the
// slice. IDs are monotonic with creation order, so this is a creation-time
// descending sort.
func SortNewestFirst(subs []*Submission) []*Submission {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[j].ID.Before(subs[i].ID)
	})
	return subs
}

// FilterByOwner returns the submissions owned by the given student.
func FilterByOwner(subs []*Submission, owner shared.Email) []*Submission {
	filtered := make([]*Submission, 0, len(subs))
	for _, s := range subs {
		if s.OwnerEmail == owner.Normalize() {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
