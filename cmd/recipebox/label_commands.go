package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/internal/api"
)

type labelAction func(svc *api.Service, ctx context.Context, recipeID int64, name string) error

func newTagCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags"},
		Short:   "Tag recipes",
	}

	cmd.AddCommand(newLabelCommand(ctx, "add", "Add a tag to a recipe", "Tagged", (*api.Service).AddTag))
	cmd.AddCommand(newLabelCommand(ctx, "remove", "Remove a tag from a recipe", "Untagged", (*api.Service).RemoveTag))
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every known tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				tags, err := svc.ListAllTags(cmd.Context())
				if err != nil {
					return err
				}
				return printNames(cmd, ctx, tags, "Tag", "No tags")
			})
		},
	})

	return cmd
}

func newLikeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "like",
		Short: "Record who likes a recipe",
	}

	cmd.AddCommand(newLabelCommand(ctx, "add", "Record that someone likes a recipe", "Liked", (*api.Service).AddLike))
	cmd.AddCommand(newLabelCommand(ctx, "remove", "Drop someone's like", "Unliked", (*api.Service).RemoveLike))

	return cmd
}

func newLabelCommand(ctx *commandContext, use, short, verb string, action labelAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <recipeId> <name>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				if err := action(svc, cmd.Context(), id, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s recipe %d: %s\n", verb, id, args[1])
				return nil
			})
		},
	}
}

func printNames(cmd *cobra.Command, ctx *commandContext, names []string, header, empty string) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, names)
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{header}, rows))
	return nil
}
