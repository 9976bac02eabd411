package analytics

import (
	"sort"
	"strings"

	"tradejournal/src/model"
)

// Synthetic tags contributed by the rule_emotions checklist answer.
const (
	TagCalm    = "Calm"
	TagAnxious = "Anxious"
)

// NormalizeEmotionTag title-cases an emotion tag for display. The acronym
// "FOMO" stays uppercase. Tags shorter than 2 characters are noise from bad
// delimiter splits and normalize to "".
func NormalizeEmotionTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if len(tag) < 2 {
		return ""
	}
	if strings.EqualFold(tag, "fomo") {
		return "FOMO"
	}
	words := strings.Fields(strings.ToLower(tag))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// emotionTags resolves the deduplicated emotion tag set for one trade: the
// normalized logged tags plus the synthetic Calm/Anxious tag derived from the
// rule_emotions answer.
func emotionTags(t *model.Trade) []string {
	seen := make(map[string]bool, len(t.Emotions)+1)
	tags := make([]string, 0, len(t.Emotions)+1)

	appendTag := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, raw := range t.Emotions {
		appendTag(NormalizeEmotionTag(raw))
	}

	if t.RuleEmotions != nil {
		switch *t.RuleEmotions {
		case model.RuleYes:
			appendTag(TagCalm)
		case model.RuleNo:
			appendTag(TagAnxious)
		}
	}

	return tags
}

// EmotionStats is the per-emotion performance breakdown entry.
type EmotionStats struct {
	Emotion    string  `json:"emotion"`
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"winRate"`
	TotalPL    float64 `json:"totalPL"`
	AveragePL  float64 `json:"averagePL"`
	Expectancy float64 `json:"expectancy"`
}

// ByEmotion groups trades by normalized emotion tag (a trade contributes to
// every tag it carries), sorted by expectancy descending.
func ByEmotion(trades []model.Trade) []EmotionStats {
	tallies := make(map[string]*groupTally)
	for i := range trades {
		t := &trades[i]
		for _, tag := range emotionTags(t) {
			g, ok := tallies[tag]
			if !ok {
				g = &groupTally{}
				tallies[tag] = g
			}
			g.add(t)
		}
	}

	out := make([]EmotionStats, 0, len(tallies))
	for tag, g := range tallies {
		out = append(out, EmotionStats{
			Emotion:    tag,
			Trades:     g.trades,
			Wins:       g.wins,
			Losses:     g.losses,
			WinRate:    g.winRate(),
			TotalPL:    g.totalPL,
			AveragePL:  g.averagePL(),
			Expectancy: g.expectancy(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Expectancy != out[j].Expectancy {
			return out[i].Expectancy > out[j].Expectancy
		}
		return out[i].Emotion < out[j].Emotion
	})
	return out
}

// DefaultSetupRanks orders the subjective setup-quality grades, best first.
// Journals with custom grade sets can pass their own table to
// BySetupQualityRanked; unknown grades sort after the ranked ones,
// alphabetically.
var DefaultSetupRanks = map[string]int{
	"A+": 0,
	"A":  1,
	"B":  2,
	"C":  3,
}

// SetupStats is the per-setup-grade performance breakdown entry.
type SetupStats struct {
	Setup      string  `json:"setup"`
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"winRate"`
	TotalPL    float64 `json:"totalPL"`
	AveragePL  float64 `json:"averagePL"`
	Expectancy float64 `json:"expectancy"`
}

// BySetupQuality groups trades with a logged setup grade using the default
// grade ranking.
func BySetupQuality(trades []model.Trade) []SetupStats {
	return BySetupQualityRanked(trades, DefaultSetupRanks)
}

// BySetupQualityRanked groups trades by setup grade, ordered by the given
// rank table (lowest rank first) rather than by any computed value.
func BySetupQualityRanked(trades []model.Trade, ranks map[string]int) []SetupStats {
	tallies := make(map[string]*groupTally)
	for i := range trades {
		t := &trades[i]
		if t.SetupType == nil {
			continue
		}
		grade := strings.ToUpper(strings.TrimSpace(*t.SetupType))
		if grade == "" {
			continue
		}
		g, ok := tallies[grade]
		if !ok {
			g = &groupTally{}
			tallies[grade] = g
		}
		g.add(t)
	}

	out := make([]SetupStats, 0, len(tallies))
	for grade, g := range tallies {
		out = append(out, SetupStats{
			Setup:      grade,
			Trades:     g.trades,
			Wins:       g.wins,
			Losses:     g.losses,
			WinRate:    g.winRate(),
			TotalPL:    g.totalPL,
			AveragePL:  g.averagePL(),
			Expectancy: g.expectancy(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := ranks[out[i].Setup]
		rj, jKnown := ranks[out[j].Setup]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i].Setup < out[j].Setup
		}
	})
	return out
}
