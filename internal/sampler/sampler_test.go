package sampler

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"glyphprep/internal/mercator"
	"glyphprep/internal/sites"
)

func positives() []sites.Site {
	return []sites.Site{
		{Form: "circle", Code: "G1", Point: mercator.Point{Lat: -10.0, Lon: -67.0}},
		{Form: "circle", Code: "G2", Point: mercator.Point{Lat: -10.5, Lon: -67.5}},
	}
}

func TestGenerateRespectsSeparation(t *testing.T) {
	s := New(rand.New(rand.NewSource(1)), 0.003, 0.001, 3, 1000)
	pos := positives()

	cands, errs := s.Generate(pos)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(cands) != 6 {
		t.Fatalf("got %d candidates, want 6", len(cands))
	}
	limit := 0.001 * 111
	for _, c := range cands {
		for _, p := range pos {
			if d := mercator.Haversine(c.Point, p.Point); d < limit {
				t.Errorf("candidate %v is %.4f km from %s, want >= %.4f", c.Point, d, p.Code, limit)
			}
		}
	}
}

func TestGenerateWithinOffsetBox(t *testing.T) {
	s := New(rand.New(rand.NewSource(7)), 0.003, 0.001, 1, 1000)
	origin := sites.Site{Code: "G1", Point: mercator.Point{Lat: -10.0, Lon: -67.0}}

	cands, errs := s.Generate([]sites.Site{origin})
	if len(errs) != 0 || len(cands) != 1 {
		t.Fatalf("cands=%d errs=%v", len(cands), errs)
	}
	c := cands[0]
	if c.OriginCode != "G1" {
		t.Errorf("origin code = %s, want G1", c.OriginCode)
	}
	if math.Abs(c.Point.Lat-origin.Point.Lat) > 0.003 || math.Abs(c.Point.Lon-origin.Point.Lon) > 0.003 {
		t.Errorf("candidate %v outside 0.003 deg box around %v", c.Point, origin.Point)
	}
	if d := mercator.Haversine(c.Point, origin.Point); d < 0.111 {
		t.Errorf("candidate only %.4f km from origin, want >= 0.111", d)
	}
}

func TestZeroThresholdAcceptsFirstDraw(t *testing.T) {
	s := New(rand.New(rand.NewSource(3)), 0.003, 0, 1, 1)
	cands, errs := s.Generate(positives())
	if len(errs) != 0 {
		t.Fatalf("zero threshold must accept on first draw, got %v", errs)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
}

func TestExhaustion(t *testing.T) {
	// Separation threshold far larger than the offset box: every draw is
	// rejected and the attempt ceiling must surface as a typed error.
	s := New(rand.New(rand.NewSource(5)), 0.003, 1.0, 1, 50)
	cands, errs := s.Generate(positives()[:1])
	if len(cands) != 0 {
		t.Fatalf("expected no candidates, got %d", len(cands))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	var ex *ExhaustedError
	if !errors.As(errs[0], &ex) {
		t.Fatalf("error = %v, want *ExhaustedError", errs[0])
	}
	if ex.Code != "G1" || ex.Attempts != 50 {
		t.Errorf("ExhaustedError = %+v", ex)
	}
}
