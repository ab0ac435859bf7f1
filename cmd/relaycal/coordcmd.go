package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/azverev/relaycal/internal/coord"
)

func newCoordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coord",
		Short: "Work with replaceable record coordinates",
	}
	cmd.AddCommand(newCoordMakeCmd(), newCoordParseCmd())
	return cmd
}

func newCoordMakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "make <typeCode> <authorId> <slug>",
		Short: "Serialize a coordinate triple",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			typeCode, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("typeCode: %w", err)
			}
			fmt.Println(coord.Make(typeCode, args[1], args[2]))
			return nil
		},
	}
}

func newCoordParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <coordinate>",
		Short: "Split a serialized coordinate into its triple",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := coord.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("typeCode:\t%d\n", c.TypeCode)
			fmt.Printf("authorId:\t%s\n", c.AuthorID)
			fmt.Printf("slug:\t%s\n", c.Slug)
			if !coord.IsReplaceableTypeCode(c.TypeCode) {
				fmt.Println("warning: type code outside the replaceable range")
			}
			return nil
		},
	}
}
