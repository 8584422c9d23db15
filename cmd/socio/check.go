package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ha1tch/sociogram/pkg/sociogram"
)

func newCheckCmd(a *app) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check entity names for duplicates",
		Long:  `Check trims the names, drops empty ones and reports any name given twice. It exits non-zero on a duplicate.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(names) == 0 {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				names = cfg.NewForm().Names
			}

			out := cmd.OutOrStdout()
			if err := checkNameCount(names); err != nil {
				fmt.Fprintf(out, "%s %v\n", statusIcon(false), err)
				return err
			}
			valid, err := sociogram.ValidateNames(names)
			var dup *sociogram.DuplicateNameError
			if errors.As(err, &dup) {
				fmt.Fprintf(out, "%s duplicate name %s\n", statusIcon(false), Bad.Sprintf("%q", dup.Name))
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d entities\n", statusIcon(true), len(valid))
			for _, n := range valid {
				fmt.Fprintf(out, "  %s\n", Subtle.Sprint(n))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&names, "name", "n", nil, "entity name (repeatable)")
	return cmd
}
