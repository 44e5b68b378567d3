package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/schedule"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool
	var showIDs bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the break list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			view, err := a.svc.View(cmd.Context())
			if errors.Is(err, schedule.ErrEmptySchedule) {
				fmt.Fprintln(cmd.OutOrStdout(), "The break list is empty. Import a shift report first.")
				return nil
			}
			if err != nil {
				return err
			}

			printView(cmd.OutOrStdout(), view, showIDs, termWidth())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&showIDs, "ids", true, "Show row ids")
	return cmd
}

func printView(w io.Writer, v *models.ScheduleView, showIDs bool, width int) {
	if v.SourceFileName != "" {
		fmt.Fprintf(w, "=== %s ===\n", colorHeader.Sprint(v.SourceFileName))
		fmt.Fprintln(w, colorMuted.Sprint("uploaded "+v.UploadedAt.Format("2006-01-02 15:04 MST")))
		fmt.Fprintln(w)
	}

	nameWidth := 4
	for _, r := range v.Rows {
		nameWidth = max(nameWidth, utf8.RuneCountInString(r.Name))
	}
	nameWidth = min(nameWidth, max(width/3, 10))

	labels := make(map[int]string, len(v.Slots))
	for _, s := range v.Slots {
		labels[s.Index] = s.Label
	}

	for _, r := range v.Rows {
		name := fit(r.Name, nameWidth)
		fmt.Fprintf(w, "%3d  %s  %s", r.SortOrder, colorName.Sprint(name), colorTimes.Sprintf("%s-%s", r.StartLabel, r.EndLabel))
		if showIDs {
			fmt.Fprintf(w, "  %s", colorMuted.Sprint(r.ID))
		}
		for i := range v.Slots {
			if note, ok := v.Cells[models.CellKey(r.ID, i)]; ok {
				fmt.Fprintf(w, "  %s", colorNote.Sprintf("[%s %s]", labels[i], note))
			}
		}
		fmt.Fprintln(w)
	}
}

// fit pads or truncates s to exactly n runes.
func fit(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		if n <= 1 {
			return string(r[:n])
		}
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-len(r))
}
