package main

import (
	"fmt"
	"strconv"
	"strings"

	"recipebox/internal/api"
)

func renderSummaryTable(summaries []api.RecipeSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, r := range summaries {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Title,
			strconv.Itoa(r.Uses),
			strings.Join(r.Tags, ", "),
			strings.Join(r.LikedBy, ", "),
		})
	}
	return renderTable([]string{"ID", "Title", "Uses", "Tags", "Liked by"}, rows, 0, 2)
}

func renderRecipeDetail(r *api.RecipeDetail, colorize bool) []string {
	lines := renderSectionHeader(r.Title, colorize)
	lines = append(lines, fmt.Sprintf("ID %d in cookbook %d, serves %d, used %d times", r.ID, r.CookbookID, r.Servings, r.Uses))
	if r.Author != "" {
		lines = append(lines, "By "+r.Author)
	}
	if r.Description != "" {
		lines = append(lines, "", r.Description)
	}

	if len(r.Ingredients) > 0 {
		lines = append(lines, "")
		lines = append(lines, renderSectionHeader("Ingredients", colorize)...)
		for _, ing := range r.Ingredients {
			lines = append(lines, "  - "+ing.Line)
		}
	}
	if len(r.Steps) > 0 {
		lines = append(lines, "")
		lines = append(lines, renderSectionHeader("Steps", colorize)...)
		for i, step := range r.Steps {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
		}
	}
	if r.Notes != "" {
		lines = append(lines, "")
		lines = append(lines, renderSectionHeader("Notes", colorize)...)
		lines = append(lines, r.Notes)
	}
	if len(r.Tags) > 0 {
		lines = append(lines, "", "Tags: "+strings.Join(r.Tags, ", "))
	}
	if len(r.LikedBy) > 0 {
		lines = append(lines, "Liked by: "+strings.Join(r.LikedBy, ", "))
	}
	return lines
}
