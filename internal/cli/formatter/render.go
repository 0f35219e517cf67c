package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/diff"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
)

// ItemLine renders one item as a single list row.
func ItemLine(item *domain.Item) string {
	span := StyleDim.Render("unscheduled")
	if item.StartDate != nil {
		span = item.StartDate.Format(domain.DateLayout)
		if item.EndDate != nil {
			span += " → " + item.EndDate.Format(domain.DateLayout)
		}
	}
	parts := []string{
		StyleBlue.Render(fmt.Sprintf("%-10s", item.Type)),
		fmt.Sprintf("%-40s", item.Title),
		span,
	}
	if item.Owner != "" {
		parts = append(parts, StyleDim.Render("@"+item.Owner))
	}
	return strings.Join(parts, "  ")
}

// HistoryLine renders one history record for the history/recent feeds.
func HistoryLine(rec *domain.HistoryRecord) string {
	op := StyleGreen.Render("insert")
	if rec.Op == domain.OpUpdate {
		op = StyleYellow.Render("update")
	}
	return fmt.Sprintf("v%-3d %s  %s  %s",
		rec.Version, op, rec.SnapshotAt.Format("2006-01-02 15:04:05"), rec.Item.Title)
}

// DiffSummary renders a branch comparison with per-bucket counts and the
// itemized changes.
func DiffSummary(result *diff.Result) string {
	counts := result.Counts()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", StyleHeader.Render(
		fmt.Sprintf("Comparing %s → %s", result.BranchA, result.BranchB)))
	fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("added %d", counts.Added)),
		StyleRed.Render(fmt.Sprintf("removed %d", counts.Removed)),
		StyleYellow.Render(fmt.Sprintf("changed %d", counts.Changed)),
		StyleDim.Render(fmt.Sprintf("unchanged %d", counts.Unchanged)))

	for _, item := range result.Added {
		fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("+"), item.Title)
	}
	for _, item := range result.Removed {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("-"), item.Title)
	}
	for _, change := range result.Changed {
		fmt.Fprintf(&b, "  %s %s (%s)\n", StyleYellow.Render("~"),
			change.Before.Title, strings.Join(change.Fields, ", "))
	}
	return b.String()
}

// DryRunSummary renders an import classification before commit.
func DryRunSummary(result *importer.DryRunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", StyleHeader.Render(
		fmt.Sprintf("Import into %s (%s, %s): %d rows",
			result.Branch, result.Strategy, result.Mode, result.TotalRows())))
	fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
		StyleGreen.Render(fmt.Sprintf("add %d", len(result.Added))),
		StyleYellow.Render(fmt.Sprintf("update %d", len(result.Updated))),
		StyleDim.Render(fmt.Sprintf("skip %d", len(result.Skipped))),
		StyleRed.Render(fmt.Sprintf("conflict %d", len(result.Conflicts))))

	for _, skip := range result.Skipped {
		fmt.Fprintf(&b, "  %s row %d: %s\n", StyleDim.Render("·"), skip.Index, skip.Reason)
	}
	for _, conflict := range result.Conflicts {
		fmt.Fprintf(&b, "  %s row %d: %s\n", StyleRed.Render("!"), conflict.Index, conflict.Reason)
	}
	return b.String()
}

// CommitSummary renders what a commit actually wrote.
func CommitSummary(res *importer.CommitResult) string {
	line := fmt.Sprintf("Committed: %d inserted, %d updated", res.Inserted, res.Updated)
	if res.Failed > 0 {
		line += ", " + StyleRed.Render(fmt.Sprintf("%d failed", res.Failed))
	}
	return line
}
