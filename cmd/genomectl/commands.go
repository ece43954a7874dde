// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/genograph/builder"
	"github.com/katalvlaran/genograph/codec"
	"github.com/katalvlaran/genograph/genome"
	"github.com/katalvlaran/genograph/sampler"
)

func (a *app) buildCmd() *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "build BLUEPRINT",
		Short: "Build a genome from a YAML blueprint and print it in the text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := builder.LoadBlueprint(args[0])
			if err != nil {
				return err
			}
			st := a.store()
			if _, err := builder.Apply(st, bp); err != nil {
				return err
			}
			gens := st.Genomes()
			if len(gens) != 1 {
				return fmt.Errorf("blueprint %s yields %d genomes, want 1", args[0], len(gens))
			}
			if !gens[0].Valid {
				a.logger.Warn("built genome is not valid",
					zap.Stringer("genome", gens[0].ID),
					zap.Int("inputs", len(gens[0].InputNodes)),
					zap.Int("outputs", len(gens[0].OutputNodes)))
			}
			text, err := codec.Encode(st, gens[0].ID)
			if err != nil {
				return err
			}
			if save == "" {
				_, err = io.WriteString(a.out, text)
				return err
			}
			arch, err := a.openArchive()
			if err != nil {
				return err
			}
			if err := arch.Save(cmd.Context(), save, text); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "saved %s (%d nodes)\n", save, len(gens[0].Members))
			return nil
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "store the genome in the archive under this name instead of printing it")
	return cmd
}

func (a *app) inspectCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "inspect [FILE|-]",
		Short: "Decode a genome and print its nodes in execution order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(cmd.Context(), optionalArg(args), name)
			if err != nil {
				return err
			}
			st := a.store()
			dec, err := codec.Decode(st, text)
			if err != nil {
				return err
			}
			if err := st.Verify(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "nodes: %d edges: %d genomes: %d valid: %t\n",
				len(dec.Nodes), len(dec.Edges), len(dec.Genomes), dec.Valid)
			for i, gid := range dec.Genomes {
				if err := a.printGenome(st, i, gid); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "read the genome from the archive")
	return cmd
}

func (a *app) printGenome(st *genome.Store, index int, id genome.GenomeID) error {
	gen, err := st.Genome(id)
	if err != nil {
		return err
	}
	order, err := st.Order(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "genome %d: members=%d inputs=%d outputs=%d valid=%t\n",
		index, len(gen.Members), len(gen.InputNodes), len(gen.OutputNodes), gen.Valid)
	for i, nid := range order {
		n, err := st.Node(nid)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "  %d %s %s -> %s\n", i, n.Kind(), n.InputShape, n.OutputShape)
	}
	return nil
}

func (a *app) sampleCmd() *cobra.Command {
	var (
		name  string
		count int
		seed  int64
	)
	cmd := &cobra.Command{
		Use:   "sample [FILE|-]",
		Short: "Draw random sub-paths from a genome",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			text, err := a.readText(cmd.Context(), optionalArg(args), name)
			if err != nil {
				return err
			}
			st := a.store()
			dec, err := codec.Decode(st, text)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Sampler.Seed
			}
			smp, err := sampler.New(
				sampler.WithSeed(seed),
				sampler.WithStopProbability(a.cfg.Sampler.StopProbability),
			)
			if err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				path, err := smp.Sample(st, dec.Genome)
				if err != nil {
					return err
				}
				kinds := make([]string, len(path))
				for j, id := range path {
					n, err := st.Node(id)
					if err != nil {
						return err
					}
					kinds[j] = n.Kind().String()
				}
				fmt.Fprintln(a.out, strings.Join(kinds, " -> "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "read the genome from the archive")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of paths to draw")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (defaults to the configured seed)")
	return cmd
}
