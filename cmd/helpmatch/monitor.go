package main

import (
	"log/slog"

	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/matching"
)

// explainMonitor logs every stage of a match at info level.
type explainMonitor struct {
	logger     *slog.Logger
	candidates []*core.Volunteer
}

var _ matching.MatchMonitor = (*explainMonitor)(nil)

func newExplainMonitor(logger *slog.Logger) *explainMonitor {
	return &explainMonitor{logger: logger.With("component", "explain")}
}

func (m *explainMonitor) Start(request *core.HelpRequest, topK int) {
	m.logger.Info("match started", "request", request.ID, "query", request.QueryText(), "topK", topK)
}

func (m *explainMonitor) AfterCandidateFilter(candidates []*core.Volunteer) {
	m.candidates = candidates
	m.logger.Info("active candidates", "count", len(candidates))
}

func (m *explainMonitor) AfterLexical(similarities []float64) {
	for i, sim := range similarities {
		m.logger.Info("lexical similarity", "volunteer", m.candidates[i].ID, "score", sim)
	}
}

func (m *explainMonitor) AfterSemantic(semanticSimilarities, skillAffinities []float64) {
	for i := range semanticSimilarities {
		m.logger.Info("semantic similarity", "volunteer", m.candidates[i].ID,
			"semantic", semanticSimilarities[i], "skill", skillAffinities[i])
	}
}

func (m *explainMonitor) Scored(result *matching.MatchResult) {
	m.logger.Info("scored",
		"volunteer", result.Volunteer.ID,
		"text", result.TextSimilarity,
		"skill", result.SkillAffinity,
		"language", result.LanguageMatch,
		"location", result.LocationScore,
		"rating", result.Volunteer.Rating,
		"final", result.Score)
}

func (m *explainMonitor) Finish(outcome *matching.Outcome) {
	m.logger.Info("match finished", "status", outcome.Status.String(), "returned", len(outcome.Results))
}
