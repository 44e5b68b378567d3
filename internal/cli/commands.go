package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/report"
	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a shift report (.xlsx, .xls or .csv)",
		Long: `Read staff names and shift times from a shift report and append them
to the break list. The header row must contain "Employee Full Name" in column A.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading report: %w", err)
			}

			res, err := a.svc.Import(cmd.Context(), data, filepath.Base(args[0]))
			if err != nil {
				var rej *report.RejectionError
				if errors.As(err, &rej) {
					return errors.New(rej.Message)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s (%d on the list).\n", res.Imported, res.FileName, res.RowCount)
			return nil
		},
	}
}

func (a *App) sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Sort rows by shift start, then name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.svc.SortByStartTime(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rows sorted by start time.")
			return nil
		},
	}
}

func (a *App) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard every row and annotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.svc.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Break list cleared.")
			return nil
		},
	}
}

func (a *App) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Append a \"New Staff\" row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			row, err := a.svc.AddRow(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s %s-%s).\n", row.ID, row.Name,
				timewindow.FormatClock(row.StartAbsMin), timewindow.FormatClock(row.EndAbsMin))
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a row and its annotations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.DeleteRow(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return nil
		},
	}
}

func (a *App) editCmd() *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a row's name or shift times",
		Long: `Change a row. Times are HH:MM; a time before the day start belongs to the
next day and an end before the start wraps past midnight. Unreadable times
leave the field unchanged. The name is kept unless --name is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			if !cmd.Flags().Changed("name") {
				current, err := a.svc.Row(ctx, id)
				if err != nil {
					return fmt.Errorf("edit %s: %w", id, err)
				}
				name = current.Name
			}

			row, err := a.svc.UpdateRow(ctx, id, models.UpdateRowRequest{Name: name, Start: start, End: end})
			if err != nil {
				return fmt.Errorf("edit %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s-%s\n", row.ID, row.Name,
				timewindow.FormatClock(row.StartAbsMin), timewindow.FormatClock(row.EndAbsMin))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Staff name")
	cmd.Flags().StringVar(&start, "start", "", "Shift start (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Shift end (HH:MM)")
	return cmd
}

func (a *App) cellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell <id> <slot> [value]",
		Short: "Annotate a time slot (omit value to clear it)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[1])
			if err != nil || slot < 0 {
				return fmt.Errorf("slot must be a non-negative number, got %q", args[1])
			}
			value := ""
			if len(args) == 3 {
				value = args[2]
			}

			req := models.UpdateCellRequest{RowID: args[0], Slot: slot, Value: value}
			if err := a.svc.SetCell(cmd.Context(), req); err != nil {
				return err
			}
			if strings.TrimSpace(value) == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared slot %d of %s.\n", slot, args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Set slot %d of %s.\n", slot, args[0])
			}
			return nil
		},
	}
}

func (a *App) reorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Move rows to the top in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Reorder(cmd.Context(), strings.Join(args, ",")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rows reordered.")
			return nil
		},
	}
}
