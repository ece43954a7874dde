// SPDX-License-Identifier: MIT

// Package sampler draws random contiguous sub-paths from a genome, the raw
// material for crossover and mutation operators.
//
// A sample starts at a node that directly follows one of the genome's input
// nodes and has at least one successor itself. From there it walks forward
// along uniformly chosen successors; after each step it stops with the
// configured probability, or when the current node has no successor.
// Because every start has a successor, a sample always holds at least two
// nodes.
//
// A Sampler owns a math/rand source and is not safe for concurrent use;
// use Fork to hand independent streams to other goroutines.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/genograph/genome"
)

// DefaultStopProbability is the chance of ending the walk after each step.
const DefaultStopProbability = 0.3

var (
	// ErrNoValidStartNode indicates the genome has no successor of an input
	// node that itself has a successor.
	ErrNoValidStartNode = errors.New("sampler: no valid start node")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("sampler: invalid option")
)

// Graph is the read access the sampler needs.
type Graph interface {
	Genome(id genome.GenomeID) (genome.Genome, error)
	Successors(id genome.NodeID) []genome.NodeID
}

// Sampler draws sub-paths with a private random stream.
type Sampler struct {
	rng      *rand.Rand
	stopProb float64
	forks    uint64
}

// Option configures a Sampler.
type Option func(*Sampler) error

// WithSeed seeds the random stream (0 selects the fixed default seed).
func WithSeed(seed int64) Option {
	return func(s *Sampler) error {
		s.rng = rngFromSeed(seed)
		return nil
	}
}

// WithRand uses r as the random stream. r must not be shared.
func WithRand(r *rand.Rand) Option {
	return func(s *Sampler) error {
		if r == nil {
			return fmt.Errorf("%w: nil rand", ErrOptionViolation)
		}
		s.rng = r
		return nil
	}
}

// WithStopProbability sets the per-step stop chance, in [0, 1].
// 0 walks until a node without successors; 1 stops after the first step.
func WithStopProbability(p float64) Option {
	return func(s *Sampler) error {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: stop probability %v outside [0,1]", ErrOptionViolation, p)
		}
		s.stopProb = p
		return nil
	}
}

// New returns a Sampler seeded with the default seed unless overridden.
func New(opts ...Option) (*Sampler, error) {
	s := &Sampler{
		rng:      rngFromSeed(0),
		stopProb: DefaultStopProbability,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Fork returns an independent Sampler with the same stop probability and a
// stream derived from this one.
func (s *Sampler) Fork() *Sampler {
	s.forks++
	return &Sampler{
		rng:      rand.New(rand.NewSource(deriveSeed(s.rng.Int63(), s.forks))),
		stopProb: s.stopProb,
	}
}

// Starts lists the valid start nodes of genome id in discovery order:
// input nodes ascending, then each input's successors in edge order.
func Starts(g Graph, id genome.GenomeID) ([]genome.NodeID, error) {
	gen, err := g.Genome(id)
	if err != nil {
		return nil, err
	}
	seen := make(map[genome.NodeID]struct{})
	var starts []genome.NodeID
	for _, in := range gen.InputNodes {
		for _, succ := range g.Successors(in) {
			if _, ok := seen[succ]; ok {
				continue
			}
			seen[succ] = struct{}{}
			if len(g.Successors(succ)) > 0 {
				starts = append(starts, succ)
			}
		}
	}
	return starts, nil
}

// Sample draws one sub-path of genome id. The path is in walk order and
// holds at least two nodes.
func (s *Sampler) Sample(g Graph, id genome.GenomeID) ([]genome.NodeID, error) {
	starts, err := Starts(g, id)
	if err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: genome %s", ErrNoValidStartNode, id)
	}

	cur := starts[s.rng.Intn(len(starts))]
	path := []genome.NodeID{cur}
	for {
		next := g.Successors(cur)
		if len(next) == 0 {
			break
		}
		cur = next[s.rng.Intn(len(next))]
		path = append(path, cur)
		if s.rng.Float64() < s.stopProb {
			break
		}
	}
	return path, nil
}
