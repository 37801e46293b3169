package game

import "sort"

// OrderSpeedResults returns the display order for speed and tiebreak
// results: every correct entry first, ascending by response time, then
// every incorrect entry, ascending by response time. The sort is
// stable, so exact time ties keep their server arrival order. This
// ordering doubles as the turn order for the next phase, so it is a
// contract, not a cosmetic preference.
func OrderSpeedResults(results []SpeedResult) []SpeedResult {
	out := append([]SpeedResult(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Correct != out[j].Correct {
			return out[i].Correct
		}
		return out[i].ResponseTime < out[j].ResponseTime
	})
	return out
}

// RankFinalScores returns the game-over table sorted descending by
// score, stable on ties.
func RankFinalScores(scores []FinalScore) []FinalScore {
	out := append([]FinalScore(nil), scores...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Medal returns the cosmetic label for a ranked position (0-based).
// It must never feed back into turn-order computation.
func Medal(index int) string {
	switch index {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return ""
	}
}
