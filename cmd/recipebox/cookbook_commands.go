package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"recipebox/internal/api"
)

func newCookbookCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cookbook",
		Aliases: []string{"cookbooks"},
		Short:   "Manage cookbooks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cookbooks in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				cookbooks, err := svc.ListCookbooks(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, cookbooks)
				}
				if len(cookbooks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No cookbooks")
					return nil
				}
				rows := make([][]string, 0, len(cookbooks))
				for _, c := range cookbooks {
					rows = append(rows, cookbookRow(c))
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(cookbookHeaders, rows, 0, 2))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one cookbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cookbook id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				cookbook, err := svc.GetCookbook(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, cookbook)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(cookbookHeaders, [][]string{cookbookRow(*cookbook)}, 0, 2))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a cookbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				cookbook, err := svc.CreateCookbook(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, cookbook)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created cookbook %d (%s)\n", cookbook.ID, cookbook.Name)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a cookbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cookbook id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				if err := svc.RenameCookbook(cmd.Context(), id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed cookbook %d\n", id)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cookbook and all of its recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cookbook id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				if err := svc.DeleteCookbook(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted cookbook %d\n", id)
				return nil
			})
		},
	})

	return cmd
}

var cookbookHeaders = []string{"ID", "Name", "Recipes", "Created"}

func cookbookRow(c api.Cookbook) []string {
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		strconv.Itoa(c.RecipeCount),
		c.CreatedAt,
	}
}
