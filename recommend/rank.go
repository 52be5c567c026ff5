package recommend

import (
	"cmp"
	"slices"

	"github.com/poiesic/venturematch/core"
)

// candidate is a scored catalog entry. pos is its load-order position.
type candidate struct {
	pos   int
	score float64
}

// rank sorts candidates by score descending and truncates to k. The sort is
// stable, so equal scores keep their incoming order.
func rank(cands []candidate, k int) []candidate {
	slices.SortStableFunc(cands, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})
	if k >= 0 && len(cands) > k {
		cands = cands[:k]
	}
	return cands
}

// scoreAll scores n candidates and keeps those for which keep returns true.
func scoreAll(n int, score func(i int) float64, keep func(score float64) bool) []candidate {
	out := make([]candidate, 0, n)
	for i := 0; i < n; i++ {
		s := score(i)
		if keep(s) {
			out = append(out, candidate{pos: i, score: s})
		}
	}
	return out
}

// accumulate sums startup scores onto their backers. Each startup with a
// score of at least threshold adds its score to every investor in its
// interaction set. Results are in investor load order.
func accumulate(startups []candidate, backers func(startup int) []core.ID, position func(core.ID) (int, bool), numInvestors int, threshold float64) []candidate {
	sums := make([]float64, numInvestors)
	touched := make([]bool, numInvestors)
	for _, s := range startups {
		if s.score < threshold {
			continue
		}
		for _, id := range backers(s.pos) {
			i, ok := position(id)
			if !ok {
				continue
			}
			sums[i] += s.score
			touched[i] = true
		}
	}

	out := make([]candidate, 0)
	for i, hit := range touched {
		if hit {
			out = append(out, candidate{pos: i, score: sums[i]})
		}
	}
	return out
}

// blend combines content and collaborative results. Only investors in collab
// are considered; a missing content score counts as 0. Output keeps collab
// order, ready for rank.
func blend(content, collab []candidate, activity, investment float64) []candidate {
	contentScores := make(map[int]float64, len(content))
	for _, c := range content {
		contentScores[c.pos] = c.score
	}

	out := make([]candidate, 0, len(collab))
	for _, c := range collab {
		out = append(out, candidate{
			pos:   c.pos,
			score: activity*contentScores[c.pos] + investment*c.score,
		})
	}
	return out
}
