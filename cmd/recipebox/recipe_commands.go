package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recipebox/internal/api"
)

func newRecipeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes"},
		Short:   "Manage recipes",
	}

	cmd.AddCommand(newRecipeListCommand(ctx))
	cmd.AddCommand(newRecipeShowCommand(ctx))
	cmd.AddCommand(newRecipeCreateCommand(ctx))
	cmd.AddCommand(newRecipeUpdateCommand(ctx))
	cmd.AddCommand(newRecipeDeleteCommand(ctx))
	cmd.AddCommand(newRecipeUsesCommand(ctx, "use", "Record that a recipe was cooked", true))
	cmd.AddCommand(newRecipeUsesCommand(ctx, "unuse", "Undo a recorded use", false))

	return cmd
}

func newRecipeListCommand(ctx *commandContext) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list <cookbookId>",
		Short: "List or search the recipes in a cookbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cookbookID, err := parseID("cookbook id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				var summaries []api.RecipeSummary
				if strings.TrimSpace(search) != "" {
					summaries, err = svc.SearchRecipes(cmd.Context(), cookbookID, search)
				} else {
					summaries, err = svc.ListRecipes(cmd.Context(), cookbookID)
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, summaries)
				}
				if len(summaries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No recipes")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(summaries))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match title, description, tags, likes and ingredients")
	return cmd
}

func newRecipeShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				detail, err := svc.GetRecipe(cmd.Context(), id)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, detail)
				}
				out := cmd.OutOrStdout()
				for _, line := range renderRecipeDetail(detail, shouldColorize(out)) {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}
}

func newRecipeCreateCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe from a JSON payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req api.CreateRecipeRequest
			if err := readPayload(cmd, file, &req); err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				created, err := svc.CreateRecipe(cmd.Context(), req)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, created)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %d\n", created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON payload path (- for stdin)")
	return cmd
}

func newRecipeUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		file       string
		title      string
		servings   int
		cookbookID int64
		clearPhoto bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Apply a sparse patch to a recipe",
		Long:  "Apply a sparse JSON patch to a recipe. Field flags are applied on top of the payload and make --file optional.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe id", args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			fieldFlags := flags.Changed("title") || flags.Changed("servings") || flags.Changed("cookbook") || clearPhoto

			var req api.UpdateRecipeRequest
			if strings.TrimSpace(file) != "" || !fieldFlags {
				if err := readPayload(cmd, file, &req); err != nil {
					return err
				}
			}
			if flags.Changed("title") {
				req.Title = api.Some(title)
			}
			if flags.Changed("servings") {
				req.Servings = api.Some(servings)
			}
			if flags.Changed("cookbook") {
				req.CookbookID = api.Some(cookbookID)
			}
			if clearPhoto {
				req.PhotoDataURL = api.Null[string]()
			}

			return ctx.withService(func(svc *api.Service) error {
				if err := svc.UpdateRecipe(cmd.Context(), id, req); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON patch path (- for stdin)")
	cmd.Flags().StringVar(&title, "title", "", "Set the title")
	cmd.Flags().IntVar(&servings, "servings", 0, "Set the number of servings")
	cmd.Flags().Int64Var(&cookbookID, "cookbook", 0, "Move the recipe to another cookbook")
	cmd.Flags().BoolVar(&clearPhoto, "clear-photo", false, "Remove the photo")
	return cmd
}

func newRecipeDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				if err := svc.DeleteRecipe(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
				return nil
			})
		},
	}
}

func newRecipeUsesCommand(ctx *commandContext, use, short string, increment bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe id", args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				var resp *api.UsesResponse
				if increment {
					resp, err = svc.IncrementUses(cmd.Context(), id)
				} else {
					resp, err = svc.DecrementUses(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recipe %d used %d times\n", id, resp.Uses)
				return nil
			})
		},
	}
}
