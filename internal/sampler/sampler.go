// Package sampler synthesizes negative sample locations: random offsets from
// known positive sites, rejected while they fall too close to any positive.
package sampler

import (
	"fmt"
	"math/rand"

	"glyphprep/internal/mercator"
	"glyphprep/internal/sites"
)

// degToKm converts the degree separation threshold to kilometers.
const degToKm = 111.0

// ExhaustedError reports that no acceptable candidate was found for a site
// within the attempt ceiling. Dense site clusters can make the rejection
// region cover the whole offset box.
type ExhaustedError struct {
	Code     string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("site %s: no candidate accepted after %d attempts", e.Code, e.Attempts)
}

// Sampler generates negative candidates. It is deterministic for a fixed
// *rand.Rand seed and site order.
type Sampler struct {
	rng *rand.Rand

	// Radius is the uniform offset range in degrees per axis.
	Radius float64
	// MinSeparation is the minimum allowed distance to any positive site,
	// in degrees (converted to km via x111 for the haversine check).
	MinSeparation float64
	// PerSite is how many candidates to produce per positive site.
	PerSite int
	// MaxAttempts bounds the rejection loop per candidate.
	MaxAttempts int
}

func New(rng *rand.Rand, radius, minSeparation float64, perSite, maxAttempts int) *Sampler {
	if perSite < 1 {
		perSite = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1000
	}
	return &Sampler{
		rng:           rng,
		Radius:        radius,
		MinSeparation: minSeparation,
		PerSite:       perSite,
		MaxAttempts:   maxAttempts,
	}
}

// Generate draws PerSite candidates around each positive site. A candidate
// is accepted only if its haversine distance to every positive is at least
// MinSeparation*111 km (a candidate exactly at the threshold is accepted).
// Sites whose rejection loop exhausts MaxAttempts contribute an
// *ExhaustedError instead of candidates; generation continues for the rest.
func (s *Sampler) Generate(positives []sites.Site) ([]sites.Candidate, []error) {
	var cands []sites.Candidate
	var errs []error

	for _, site := range positives {
		for n := 0; n < s.PerSite; n++ {
			cand, ok := s.sampleOne(site, positives)
			if !ok {
				errs = append(errs, &ExhaustedError{Code: site.Code, Attempts: s.MaxAttempts})
				break
			}
			cands = append(cands, cand)
		}
	}
	return cands, errs
}

func (s *Sampler) sampleOne(origin sites.Site, positives []sites.Site) (sites.Candidate, bool) {
	for attempt := 0; attempt < s.MaxAttempts; attempt++ {
		p := mercator.Point{
			Lat: origin.Point.Lat + s.uniform(),
			Lon: origin.Point.Lon + s.uniform(),
		}
		if s.tooClose(p, positives) {
			continue
		}
		return sites.Candidate{OriginCode: origin.Code, Point: p}, true
	}
	return sites.Candidate{}, false
}

func (s *Sampler) tooClose(p mercator.Point, positives []sites.Site) bool {
	limit := s.MinSeparation * degToKm
	for _, site := range positives {
		if mercator.Haversine(p, site.Point) < limit {
			return true
		}
	}
	return false
}

// uniform draws from U(-Radius, Radius).
func (s *Sampler) uniform() float64 {
	return (s.rng.Float64()*2 - 1) * s.Radius
}
