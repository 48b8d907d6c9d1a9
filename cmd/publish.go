package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// publishCmd holds the flags for the 'publish' subcommand.
type publishCmd struct {
	outputDir      string
	frontMatterTpl string
	ledgerFile     string
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string { return "generate the gains report of every tax year" }

func (*publishCmd) Usage() string {
	return `cgt publish [-o <dir>] [-frontmatter <file>]

  Generates one capital gains report per tax year present in the trade
  history, plus an INDEX.md, and saves them to a directory.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the report front matter")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

// reportTask is the data handed to the front matter template.
type reportTask struct {
	Year  capgains.TaxYear
	Title string
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatterTpl *template.Template
	if c.frontMatterTpl != "" {
		var err error
		frontMatterTpl, err = template.ParseFiles(c.frontMatterTpl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := loadLedger(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", c.ledgerFile, err)
		return subcommands.ExitFailure
	}

	result := capgains.MatchFIFO(ledger)
	printNotices(result.Notices)

	var index strings.Builder
	fmt.Fprint(&index, "# Capital Gains Reports\n\n")
	fmt.Fprintln(&index, "| Tax Year | Sales | Net Gain/Loss | Report |")
	fmt.Fprintln(&index, "|----------|-------|---------------|--------|")

	for _, year := range ledger.TaxYears() {
		filter := capgains.Filter{Year: year}
		summary := capgains.Summarize(result, filter)

		var report bytes.Buffer
		if frontMatterTpl != nil {
			task := reportTask{Year: year, Title: fmt.Sprintf("Capital Gains %s", year)}
			if err := frontMatterTpl.Execute(&report, task); err != nil {
				fmt.Fprintf(os.Stderr, "failed to render front matter for %s: %v\n", year, err)
				return subcommands.ExitFailure
			}
		}
		report.WriteString(renderer.GainsMarkdown(result, filter))

		name := year.String() + ".md"
		if err := os.WriteFile(filepath.Join(c.outputDir, name), report.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report %s: %v\n", name, err)
			return subcommands.ExitFailure
		}

		fmt.Fprintf(&index, "| %s | %d | %s | [%s](%s) |\n",
			year, summary.Sales, summary.Net.SignedString(), name, name)
	}

	if err := os.WriteFile(filepath.Join(c.outputDir, "INDEX.md"), []byte(index.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write INDEX.md: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Reports written to %s\n", c.outputDir)
	return subcommands.ExitSuccess
}
