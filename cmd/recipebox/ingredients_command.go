package main

import (
	"github.com/spf13/cobra"

	"recipebox/internal/api"
)

func newIngredientsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingredients",
		Short: "Browse the ingredient catalog",
	}

	var (
		cookbookID int64
		query      string
		limit      int
	)
	suggest := &cobra.Command{
		Use:   "suggest",
		Short: "List catalog names used by recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req api.SuggestionRequest
			req.Query = query
			if cmd.Flags().Changed("cookbook") {
				req.CookbookID = &cookbookID
			}
			if cmd.Flags().Changed("limit") {
				req.Limit = &limit
			}
			return ctx.withService(func(svc *api.Service) error {
				names, err := svc.ListIngredientSuggestions(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printNames(cmd, ctx, names, "Ingredient", "No ingredients")
			})
		},
	}
	suggest.Flags().Int64Var(&cookbookID, "cookbook", 0, "Only ingredients used in this cookbook")
	suggest.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive substring filter")
	suggest.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of names")
	cmd.AddCommand(suggest)

	return cmd
}
