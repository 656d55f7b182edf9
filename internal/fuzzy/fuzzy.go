// Package fuzzy ranks candidates against a query by case-insensitive ordered
// subsequence matching.
//
// Scoring rewards:
//   - consecutive character matches
//   - matches at the start of the string
//   - matches at word boundaries (after space, /, -, _, ., :)
//
// On top of the points, every match falls in a tier: the whole query as a
// contiguous prefix beats a contiguous run anywhere else, which beats a
// scattered match. Points only order matches within a tier.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MaxResults is the size cap of a ranked view.
const MaxResults = 50

const (
	startBonus        = 3
	boundaryBonus     = 2
	maxLeadingPenalty = 5
	tierScattered     = 0
	tierContiguous    = 1
	tierPrefix        = 2
	boundaryPunct     = "/-_.:"
)

// Source is an index-addressable candidate list.
type Source interface {
	Len() int
	Display(i int) string
}

// Score orders matches. Compare scores with Compare; the zero value is the
// score of an empty query.
type Score struct {
	tier   int
	points int
}

// Compare returns -1, 0 or +1 as s ranks below, equal to, or above o.
func (s Score) Compare(o Score) int {
	if c := cmp.Compare(s.tier, o.tier); c != 0 {
		return c
	}
	return cmp.Compare(s.points, o.points)
}

// Result is one matching candidate.
type Result struct {
	Index int
	Score Score
}

// View is a ranked, truncated list of results.
type View []Result

// Indices returns the candidate indices in rank order.
func (v View) Indices() []int {
	out := make([]int, len(v))
	for i, r := range v {
		out[i] = r.Index
	}
	return out
}

// Rank matches query against every candidate in src and returns at most
// MaxResults results, best first. Ties keep the original order.
//
// A blank query skips scoring and returns the first MaxResults candidates as
// they are.
func Rank(query string, src Source) View {
	n := src.Len()
	if strings.TrimSpace(query) == "" {
		v := make(View, min(n, MaxResults))
		for i := range v {
			v[i] = Result{Index: i}
		}
		return v
	}

	m := newMatcher(query)
	var out View
	for i := 0; i < n; i++ {
		if a, ok := m.match(src.Display(i)); ok {
			out = append(out, Result{Index: i, Score: a.score})
		}
	}
	slices.SortStableFunc(out, func(a, b Result) int {
		return b.Score.Compare(a.Score)
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// matchScore reports whether all characters of query appear in target in order
// (case-insensitive), and the score of the best alignment.
func matchScore(query, target string) (Score, bool) {
	if query == "" {
		return Score{}, true
	}
	a, ok := newMatcher(query).match(target)
	return a.score, ok
}

// Positions returns the rune offsets in target matched by query, or nil when
// query does not match.
func Positions(query, target string) []int {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	a, ok := newMatcher(query).match(target)
	if !ok {
		return nil
	}
	return a.positions
}

type alignment struct {
	score     Score
	positions []int
}

type matcher struct {
	caser cases.Caser
	query []rune
}

func newMatcher(query string) *matcher {
	m := &matcher{caser: cases.Fold()}
	m.query, _ = m.fold(query)
	return m
}

// fold case-folds s rune by rune. It returns the folded runes and, for each of
// them, the offset of the source rune it came from.
func (m *matcher) fold(s string) ([]rune, []int) {
	out := make([]rune, 0, len(s))
	src := make([]int, 0, len(s))
	i := 0
	for _, r := range s {
		if r < utf8.RuneSelf {
			out = append(out, unicode.ToLower(r))
			src = append(src, i)
		} else {
			for _, fr := range m.caser.String(string(r)) {
				out = append(out, fr)
				src = append(src, i)
			}
		}
		i++
	}
	return out, src
}

func (m *matcher) match(target string) (alignment, bool) {
	t, src := m.fold(target)
	q := m.query
	if len(q) == 0 {
		return alignment{}, true
	}

	best := alignment{}
	var bestPos []int
	found := false
	pos := make([]int, len(q))

	for start := 0; start <= len(t)-len(q); start++ {
		if t[start] != q[0] {
			continue
		}
		if !greedy(t, q, start, pos) {
			// A later start cannot succeed where an earlier one failed.
			break
		}
		s := scoreOf(t, pos)
		if !found || s.Compare(best.score) > 0 {
			best.score = s
			bestPos = append(bestPos[:0], pos...)
			found = true
		}
	}
	if !found {
		return alignment{}, false
	}

	best.positions = make([]int, 0, len(bestPos))
	for _, p := range bestPos {
		o := src[p]
		if n := len(best.positions); n > 0 && best.positions[n-1] == o {
			continue
		}
		best.positions = append(best.positions, o)
	}
	return best, true
}

// greedy fills pos with the leftmost alignment of q in t whose first rune is
// at start.
func greedy(t, q []rune, start int, pos []int) bool {
	pos[0] = start
	ti := start + 1
	for qi := 1; qi < len(q); qi++ {
		for ti < len(t) && t[ti] != q[qi] {
			ti++
		}
		if ti == len(t) {
			return false
		}
		pos[qi] = ti
		ti++
	}
	return true
}

func scoreOf(t []rune, pos []int) Score {
	points := 0
	consecutive := 0
	contiguous := true

	for i, ti := range pos {
		if i > 0 && ti != pos[i-1]+1 {
			consecutive = 0
			contiguous = false
		}
		consecutive++
		points += consecutive // reward consecutive runs

		if ti == 0 {
			points += startBonus
		} else if isBoundary(t[ti-1]) {
			points += boundaryBonus
		}
	}
	points -= min(pos[0], maxLeadingPenalty)

	tier := tierScattered
	switch {
	case contiguous && pos[0] == 0:
		tier = tierPrefix
	case contiguous:
		tier = tierContiguous
	}
	return Score{tier: tier, points: points}
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(boundaryPunct, r)
}
