package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/platform/errs"
	"github.com/seolens/seolens/internal/seoscan"
)

var cli struct {
	URL          string `arg:"" help:"URL to scan, with or without a scheme."`
	Timeout      int    `default:"15" help:"Scan timeout in seconds."`
	ProbeTimeout int    `default:"5" name:"probe-timeout" help:"robots.txt/sitemap.xml probe timeout in seconds."`
	JSON         bool   `help:"Print the raw scan result as JSON."`
}

var (
	severityColors = map[model.Severity]func(a ...interface{}) string{
		model.SeverityCritical: color.New(color.FgRed, color.Bold).SprintFunc(),
		model.SeverityHigh:     color.New(color.FgRed).SprintFunc(),
		model.SeverityMedium:   color.New(color.FgYellow).SprintFunc(),
		model.SeverityLow:      color.New(color.FgCyan).SprintFunc(),
	}

	good = color.New(color.FgGreen).SprintFunc()
	fair = color.New(color.FgYellow).SprintFunc()
	poor = color.New(color.FgRed).SprintFunc()
)

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("seolens-scan"),
		kong.Description("Run a one-shot SEO audit of a single page."),
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	fetcher := seoscan.NewPageFetcher(
		time.Duration(cli.Timeout)*time.Second,
		time.Duration(cli.ProbeTimeout)*time.Second,
	)
	engine := seoscan.NewEngine(fetcher)

	scanCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cli.Timeout+15)*time.Second)
	defer cancel()

	result, err := engine.Scan(scanCtx, cli.URL)
	if err != nil {
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			return fmt.Errorf("%s: %s", appErr.Kind, appErr.Message)
		}
		return err
	}

	if cli.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	printReport(result)
	return nil
}

func printReport(result *model.ScanResult) {
	fmt.Printf("Scanned %s at %s\n\n", result.URL, result.ScannedAt.Format(time.RFC3339))

	fmt.Printf("  Overall     %s\n", scoreBadge(result.Scores.Overall))
	fmt.Printf("  Technical   %s\n", scoreBadge(result.Scores.Technical))
	fmt.Printf("  Content     %s\n", scoreBadge(result.Scores.Content))
	fmt.Printf("  Performance %s\n\n", scoreBadge(result.Scores.Performance))

	if result.IssueCount() == 0 {
		fmt.Printf("%s No issues found.\n", good("✓"))
		return
	}

	for _, severity := range model.Severities {
		issues := result.Issues[severity]
		if len(issues) == 0 {
			continue
		}
		paint := severityColors[severity]
		for _, issue := range issues {
			fmt.Printf("  [%s] %s\n", paint(string(severity)), issue.Message)
		}
	}
}

func scoreBadge(score int) string {
	badge := fmt.Sprintf("%3d/100", score)
	switch {
	case score >= 80:
		return good(badge)
	case score >= 50:
		return fair(badge)
	default:
		return poor(badge)
	}
}
