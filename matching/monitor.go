package matching

import "github.com/poiesic/helpmatch/core"

// MatchMonitor provides hooks to observe one match call.
// Implement this interface to explain how a ranking was produced.
// Slices passed to hooks are indexed like the candidate slice and must not be modified.
type MatchMonitor interface {
	Start(request *core.HelpRequest, topK int)
	AfterCandidateFilter(candidates []*core.Volunteer)
	AfterLexical(similarities []float64)
	AfterSemantic(semanticSimilarities, skillAffinities []float64)
	Scored(result *MatchResult)
	Finish(outcome *Outcome)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.HelpRequest, _ int)         {}
func (n *noopMonitor) AfterCandidateFilter(_ []*core.Volunteer) {}
func (n *noopMonitor) AfterLexical(_ []float64)                 {}
func (n *noopMonitor) AfterSemantic(_, _ []float64)             {}
func (n *noopMonitor) Scored(_ *MatchResult)                    {}
func (n *noopMonitor) Finish(_ *Outcome)                        {}
