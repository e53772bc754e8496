package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the built-in expense categories",
		RunE:  runCategories,
	}
}

func runCategories(_ *cobra.Command, _ []string) error {
	fmt.Println(cli.FormatTitle("Categories")) //nolint:forbidigo // User-facing output
	fmt.Println()                              //nolint:forbidigo // User-facing output

	for _, name := range model.CategoryNames() {
		fmt.Println(cli.BoldStyle.Render(name))                                          //nolint:forbidigo // User-facing output
		fmt.Println(cli.SubtleStyle.Render("  " + strings.Join(model.Categories[name], ", "))) //nolint:forbidigo // User-facing output
	}

	return nil
}
