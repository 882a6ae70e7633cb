package view

import (
	"math"
	"sort"

	"signalscout/app/schema"
)

// Stats summarizes a matched record sequence the way the scanning agent's
// report footer does: score averages plus the distinct mission and
// archetype sets.
type Stats struct {
	Count          int      `json:"count"`
	AvgRelevance   float64  `json:"avg_relevance"`
	AvgCredibility float64  `json:"avg_credibility"`
	AvgNovelty     float64  `json:"avg_novelty"`
	Missions       []string `json:"missions"`
	Archetypes     []string `json:"archetypes"`
}

// Summarize computes Stats over records. Averages are rounded to two
// decimal places; empty input yields zero averages and empty sets.
func Summarize(records []schema.Record) Stats {
	stats := Stats{
		Count:      len(records),
		Missions:   []string{},
		Archetypes: []string{},
	}
	if len(records) == 0 {
		return stats
	}

	var relevance, credibility, novelty float64
	missions := make(map[string]bool)
	archetypes := make(map[string]bool)

	for _, rec := range records {
		relevance += rec.Relevance
		credibility += rec.Credibility
		novelty += rec.Novelty
		missions[string(rec.MissionLink)] = true
		archetypes[string(rec.Archetype)] = true
	}

	n := float64(len(records))
	stats.AvgRelevance = round2(relevance / n)
	stats.AvgCredibility = round2(credibility / n)
	stats.AvgNovelty = round2(novelty / n)

	for m := range missions {
		stats.Missions = append(stats.Missions, m)
	}
	for a := range archetypes {
		stats.Archetypes = append(stats.Archetypes, a)
	}
	sort.Strings(stats.Missions)
	sort.Strings(stats.Archetypes)

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
