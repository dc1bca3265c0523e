package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nutriscan/nutriscan/internal/barcode"
	"github.com/nutriscan/nutriscan/internal/openfoodfacts"
	"github.com/nutriscan/nutriscan/internal/score"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <barcode>",
	Short: "Look up a product by barcode and score it",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var bandColors = map[string]lipgloss.Color{
	"A": lipgloss.Color("#2E7D32"),
	"B": lipgloss.Color("#66BB6A"),
	"C": lipgloss.Color("#FDD835"),
	"D": lipgloss.Color("#FB8C00"),
	"E": lipgloss.Color("#E53935"),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#66BB6A"))
	concernStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB8C00"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDD835"))
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	code := barcode.Normalize(args[0])
	if err := barcode.Validate(code); err != nil {
		return fmt.Errorf("invalid barcode %q: %w", args[0], err)
	}
	if !barcode.VerifyCheckDigit(code) {
		fmt.Fprintln(os.Stderr, warnStyle.Render("warning: check digit mismatch, the barcode may be mistyped"))
	}

	client := openfoodfacts.NewHTTPClient(
		cfg.OpenFoodFacts.BaseURL,
		cfg.OpenFoodFacts.UserAgent,
		cfg.FetchTimeout(),
	)

	product, err := client.GetProduct(context.Background(), code)
	if err != nil {
		if errors.Is(err, openfoodfacts.ErrNotFound) {
			return fmt.Errorf("product %s not found in OpenFoodFacts", code)
		}
		return fmt.Errorf("fetch product: %w", err)
	}

	engine := score.NewEngine(score.NewRegistry(), logger)
	result, err := engine.Score(product.Nutrients)
	if err != nil {
		return fmt.Errorf("score product: %w", err)
	}
	report := score.BuildReport(product.Name, result)

	printReport(cmd, product, report)
	return nil
}

func printReport(cmd *cobra.Command, product *openfoodfacts.Product, report *score.Report) {
	out := cmd.OutOrStdout()

	bandStyle := lipgloss.NewStyle().Bold(true)
	if c, ok := bandColors[report.Band]; ok {
		bandStyle = bandStyle.Foreground(c)
	}

	fmt.Fprintln(out, titleStyle.Render(product.Name))
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s | %s | barcode %s", product.Brands, product.Categories, product.Barcode)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score: %s  Band: %s\n",
		bandStyle.Render(fmt.Sprintf("%d/100", report.Score)),
		bandStyle.Render(report.Band))
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("Good points"))
	for _, p := range report.GoodPoints {
		fmt.Fprintln(out, goodStyle.Render("  + "+p))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, titleStyle.Render("Concerns"))
	for _, c := range report.Concerns {
		fmt.Fprintln(out, concernStyle.Render("  - "+c))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, report.Explanation)

	if len(report.Citations) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render("Citations"))
		for _, c := range report.Citations {
			fmt.Fprintln(out, dimStyle.Render("  "+c))
		}
	}
}
