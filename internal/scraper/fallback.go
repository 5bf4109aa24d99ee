package scraper

import (
	"hash/fnv"
	"math/rand/v2"
)

// Synthesizer produces placeholder counts when no portal could be scraped.
// The value for a portal depends only on the query term and the portal's
// Estimate range, so repeated requests get the same numbers.
type Synthesizer struct {
	portals []Portal
}

func NewSynthesizer(portals []Portal) *Synthesizer {
	return &Synthesizer{portals: portals}
}

func (s *Synthesizer) Synthesize(skills []string) ([]Outcome, error) {
	q := NewQuery(skills)

	out := make([]Outcome, 0, len(s.portals))
	for _, p := range s.portals {
		if !p.Estimate.Valid() {
			continue
		}
		out = append(out, Outcome{
			Name:        p.Name,
			Jobs:        estimate(p.Estimate, q.Term, p.Name),
			URL:         p.URL(q),
			Description: p.Description,
			Status:      StatusEstimated,
			Estimated:   true,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoEstimates
	}
	return out, nil
}

func estimate(r Range, term, portal string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(term))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(portal))

	rng := rand.New(rand.NewPCG(h.Sum64(), uint64(len(term))))
	return r.Min + rng.IntN(r.Max-r.Min)
}
