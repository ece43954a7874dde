// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/genograph/codec"
)

func (a *app) archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage genomes in the configured archive",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save NAME FILE|-",
			Short: "Check a genome file and store it under NAME",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := a.readText(cmd.Context(), args[1], "")
				if err != nil {
					return err
				}
				// Refuse text that would not load back.
				if _, err := codec.Decode(a.store(), text); err != nil {
					return err
				}
				arch, err := a.openArchive()
				if err != nil {
					return err
				}
				if err := arch.Save(cmd.Context(), args[0], text); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "saved %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "load NAME",
			Short: "Print the genome stored under NAME",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text, err := a.readText(cmd.Context(), "", args[0])
				if err != nil {
					return err
				}
				_, err = io.WriteString(a.out, text)
				return err
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored genome names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				arch, err := a.openArchive()
				if err != nil {
					return err
				}
				names, err := arch.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(a.out, n)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Remove the genome stored under NAME",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				arch, err := a.openArchive()
				if err != nil {
					return err
				}
				return arch.Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}
