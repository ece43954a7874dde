// SPDX-License-Identifier: MIT

package codec

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/genograph/bfs"
	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/layer"
)

// Sentinel separates node records from connection rows.
const Sentinel = "CONNECTIONS"

// Sentinel errors for decoding.
var (
	// ErrMalformedConnectionRow indicates a connection line that is not
	// exactly two integers.
	ErrMalformedConnectionRow = errors.New("codec: malformed connection row")

	// ErrMalformedNodeRecord indicates a node line that is not a JSON record.
	ErrMalformedNodeRecord = errors.New("codec: malformed node record")
)

// Graph is the read side of a genome store.
type Graph interface {
	Genome(id genome.GenomeID) (genome.Genome, error)
	Node(id genome.NodeID) (genome.Node, error)
}

// Importer is a Graph that can restore decoded nodes and edges.
type Importer interface {
	Graph
	Import(specs []layer.Spec, edges []genome.Edge) (*genome.Imported, error)
}

// Decoded is the result of Decode.
type Decoded struct {
	// Nodes holds the new node ids in line order.
	Nodes []genome.NodeID
	// Edges holds the connection rows as index pairs, in text order.
	Edges [][2]int
	// Genomes holds one id per weakly-connected component, ordered by the
	// first node line of each. Well-formed text has exactly one.
	Genomes []genome.GenomeID
	// Genome is the genome holding node 0 (zero when the text has no nodes).
	Genome genome.GenomeID
	// InputNodes and OutputNodes are the degree-scan boundaries over all
	// decoded nodes, sorted by id.
	InputNodes  []genome.NodeID
	OutputNodes []genome.NodeID
	// Valid is the degree-scan validity over all decoded nodes.
	Valid bool
}

// Encode renders genome id of g in the text format.
func Encode(g Graph, id genome.GenomeID) (string, error) {
	gen, err := g.Genome(id)
	if err != nil {
		return "", err
	}
	nodes, err := visitOrder(g, gen)
	if err != nil {
		return "", err
	}

	index := make(map[genome.NodeID]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	var b strings.Builder
	for _, n := range nodes {
		rec, err := layer.NewRecord(n.Spec)
		if err != nil {
			return "", fmt.Errorf("codec: node %d: %w", n.ID, err)
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("codec: node %d: %w", n.ID, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	b.WriteString(Sentinel)
	b.WriteByte('\n')
	for i, n := range nodes {
		for _, succ := range n.Next {
			j, ok := index[succ]
			if !ok {
				return "", fmt.Errorf("codec: node %d points outside genome %s: %w",
					n.ID, id, genome.ErrInvariant)
			}
			fmt.Fprintf(&b, "%d %d\n", i, j)
		}
	}
	return b.String(), nil
}

// visitOrder walks the genome breadth-first from its input nodes (or its
// smallest member when it has none), following Previous then Next.
func visitOrder(g Graph, gen genome.Genome) ([]genome.Node, error) {
	starts := gen.InputNodes
	if len(starts) == 0 {
		starts = gen.Members[:1]
	}

	seen := make(map[genome.NodeID]genome.Node, len(gen.Members))
	var lookupErr error
	neighbors := func(id genome.NodeID) []genome.NodeID {
		n, ok := seen[id]
		if !ok {
			return nil
		}
		out := make([]genome.NodeID, 0, len(n.Previous)+len(n.Next))
		out = append(out, n.Previous...)
		return append(out, n.Next...)
	}
	onVisit := func(id genome.NodeID, _ int) error {
		n, err := g.Node(id)
		if err != nil {
			lookupErr = err
			return err
		}
		seen[id] = n
		return nil
	}

	res, err := bfs.BFS(neighbors, starts, bfs.WithOnVisit(onVisit))
	if lookupErr != nil {
		return nil, lookupErr
	}
	if err != nil {
		return nil, err
	}
	if len(res.Order) != len(gen.Members) {
		return nil, fmt.Errorf("codec: genome %s reached %d of %d members: %w",
			gen.ID, len(res.Order), len(gen.Members), genome.ErrInvariant)
	}

	nodes := make([]genome.Node, len(res.Order))
	for i, id := range res.Order {
		nodes[i] = seen[id]
	}
	return nodes, nil
}

// Decode parses text and restores it into st as new nodes and genomes.
// On any error st is left untouched.
func Decode(st Importer, text string) (*Decoded, error) {
	specs, pairs, err := parse(text)
	if err != nil {
		return nil, err
	}

	edges := make([]genome.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = genome.Edge{From: p[0], To: p[1]}
	}
	imp, err := st.Import(specs, edges)
	if err != nil {
		return nil, err
	}

	dec := &Decoded{
		Nodes:   imp.Nodes,
		Edges:   pairs,
		Genomes: imp.Genomes,
		Valid:   len(imp.Nodes) > 0,
	}
	if len(imp.Genomes) > 0 {
		dec.Genome = imp.Genomes[0]
	}
	for _, id := range imp.Nodes {
		n, err := st.Node(id)
		if err != nil {
			return nil, err
		}
		if len(n.Previous) == 0 {
			dec.InputNodes = append(dec.InputNodes, id)
			dec.Valid = dec.Valid && n.Kind() == layer.KindInput
		}
		if len(n.Next) == 0 {
			dec.OutputNodes = append(dec.OutputNodes, id)
			dec.Valid = dec.Valid && n.Kind() == layer.KindOutput
		}
	}
	return dec, nil
}

// parse splits text into node specs and connection index pairs. Blank
// lines are ignored; a missing sentinel means there are no connections.
func parse(text string) ([]layer.Spec, [][2]int, error) {
	var (
		specs       []layer.Spec
		pairs       [][2]int
		connections bool
		lineNo      int
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case !connections && line == Sentinel:
			connections = true
		case !connections:
			spec, err := parseNode(line)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			specs = append(specs, spec)
		default:
			pair, err := parseRow(line)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pairs = append(pairs, pair)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("codec: read: %w", err)
	}
	return specs, pairs, nil
}

func parseNode(line string) (layer.Spec, error) {
	var rec layer.Record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNodeRecord, err)
	}
	return layer.FromRecord(rec)
}

func parseRow(line string) ([2]int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return [2]int{}, fmt.Errorf("%w: %q", ErrMalformedConnectionRow, line)
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return [2]int{}, fmt.Errorf("%w: %q", ErrMalformedConnectionRow, line)
	}
	to, err := strconv.Atoi(fields[1])
	if err != nil {
		return [2]int{}, fmt.Errorf("%w: %q", ErrMalformedConnectionRow, line)
	}
	return [2]int{from, to}, nil
}
