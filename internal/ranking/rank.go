package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// scoreQuantum is the resolution at which composites are compared; scores
// closer than this are ties and fall back to candidate id order.
const scoreQuantum = 1e-9

// Rank orders results by composite score descending, breaking ties by
// candidate id ascending. All results must share one RequirementID and name
// distinct candidates. The input slice is not modified.
func Rank(results []types.MatchResult) (types.RankedList, error) {
	list := types.RankedList{Results: make([]types.MatchResult, 0, len(results))}
	if len(results) == 0 {
		return list, nil
	}

	list.RequirementID = results[0].RequirementID
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if r.RequirementID != list.RequirementID {
			return types.RankedList{}, &MixedRequirementError{Expected: list.RequirementID, Found: r.RequirementID}
		}
		if _, dup := seen[r.CandidateID]; dup {
			return types.RankedList{}, &DuplicateCandidateError{CandidateID: r.CandidateID}
		}
		seen[r.CandidateID] = struct{}{}
	}

	list.Results = append(list.Results, results...)
	sort.Slice(list.Results, func(i, j int) bool {
		a, b := list.Results[i], list.Results[j]
		qa, qb := quantize(a.Composite), quantize(b.Composite)
		if qa != qb {
			return qa > qb
		}
		return a.CandidateID < b.CandidateID
	})

	return list, nil
}

func quantize(score float64) int64 {
	return int64(math.Round(score / scoreQuantum))
}
