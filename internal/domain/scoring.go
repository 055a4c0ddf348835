package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (current name beats older names)
	ScorePositionBonus = 10.0

	// fuzzy matching is ignored for queries shorter than this
	minFuzzyLength = 4
	minSimilarity  = 0.8
)

// Candidate is an entity with its match score.
type Candidate struct {
	Entity Entity
	Score  float64
}

// ScoreName scores a single name against the query.
func ScoreName(q *Query, name string) float64 {
	if q == nil || q.Text == "" || name == "" {
		return 0.0
	}

	if q.Exact {
		if strings.EqualFold(strings.TrimSpace(name), q.Raw) {
			return ScoreExactMatch
		}
		return 0.0
	}

	query := normalizeFragment(q.Text)
	target := normalizeFragment(name)
	if query == "" || target == "" {
		return 0.0
	}

	if query == target {
		return ScoreExactMatch
	}

	if strings.HasPrefix(target, query) {
		return ScorePrefixMatch
	}

	if idx := strings.Index(target, query); idx >= 0 {
		// Earlier substring matches get higher score
		return ScoreSubstringMatch + ScorePositionBonus*(1.0-float64(idx)/float64(len(target)))
	}

	if len(query) >= minFuzzyLength {
		if similarity := calculateSimilarity(query, target); similarity >= minSimilarity {
			return ScoreFuzzyMatch * similarity
		}
	}

	return 0.0
}

// ScoreNames returns the best score across names, favouring earlier ones.
func ScoreNames(q *Query, names []string) float64 {
	best := 0.0
	for i, name := range names {
		score := ScoreName(q, name)
		if score == 0.0 {
			continue
		}
		score += calculatePositionBonus(i)
		if score > best {
			best = score
		}
	}
	return best
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity is the share of query runes found in the target,
// counting each target rune once.
func calculateSimilarity(query, target string) float64 {
	if query == "" || target == "" {
		return 0.0
	}

	pool := []rune(target)
	matches, total := 0, 0
	for _, c := range query {
		total++
		for i, p := range pool {
			if p == c {
				matches++
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}

	return float64(matches) / float64(total)
}

// RankCandidates scores every entity by the names namesOf returns and keeps
// the matches, best first. Ties keep the input order.
func RankCandidates(q *Query, entities []Entity, namesOf func(Entity) []string) []*Candidate {
	candidates := make([]*Candidate, 0, len(entities))
	for _, e := range entities {
		score := ScoreNames(q, namesOf(e))
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, &Candidate{Entity: e, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
