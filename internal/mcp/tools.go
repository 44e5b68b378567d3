package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

// NewServer builds the stdio MCP server with every breaklist tool registered.
func NewServer(c *Client, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"breaklist-mcp",
		version,
		server.WithToolCapabilities(true),
	)
	RegisterTools(s, c)
	return s
}

// RegisterTools adds the schedule tools to the MCP server.
func RegisterTools(s *server.MCPServer, c *Client) {
	s.AddTool(viewTool(), viewHandler(c))
	s.AddTool(addRowTool(), addRowHandler(c))
	s.AddTool(updateRowTool(), updateRowHandler(c))
	s.AddTool(deleteRowTool(), deleteRowHandler(c))
	s.AddTool(sortTool(), sortHandler(c))
	s.AddTool(setCellTool(), setCellHandler(c))
	s.AddTool(reorderTool(), reorderHandler(c))
	s.AddTool(clearTool(), clearHandler(c))
}

// --- view ---

func viewTool() mcp.Tool {
	return mcp.NewTool("breaklist_view",
		mcp.WithDescription("Show the current break list: one line per staff row with its id, shift times and slot annotations."),
	)
}

func viewHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		v, err := c.View(ctx)
		if err != nil {
			return toolError(err)
		}
		if v == nil {
			return mcp.NewToolResultText("The break list is empty. Upload a shift report first."), nil
		}
		return mcp.NewToolResultText(formatView(v)), nil
	}
}

// --- rows ---

func addRowTool() mcp.Tool {
	return mcp.NewTool("breaklist_add_row",
		mcp.WithDescription("Append a \"New Staff\" row with an eight hour shift from the start of the day."),
	)
}

func addRowHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := c.AddRow(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Row added."), nil
	}
}

func updateRowTool() mcp.Tool {
	return mcp.NewTool("breaklist_update_row",
		mcp.WithDescription("Edit a row. The name is always replaced; start and end are HH:MM clock times and are left unchanged when omitted or unreadable."),
		mcp.WithString("id",
			mcp.Description("Row id as shown by breaklist_view"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Staff name"),
			mcp.Required(),
		),
		mcp.WithString("start",
			mcp.Description("Shift start, e.g. 22:00"),
		),
		mcp.WithString("end",
			mcp.Description("Shift end, e.g. 06:30; times before the start fall on the next day"),
		),
	)
}

func updateRowHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		row, err := c.UpdateRow(ctx, id, models.UpdateRowRequest{
			Name:  req.GetString("name", ""),
			Start: req.GetString("start", ""),
			End:   req.GetString("end", ""),
		})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatRow(*row)), nil
	}
}

func deleteRowTool() mcp.Tool {
	return mcp.NewTool("breaklist_delete_row",
		mcp.WithDescription("Delete a row and its annotations."),
		mcp.WithString("id",
			mcp.Description("Row id as shown by breaklist_view"),
			mcp.Required(),
		),
	)
}

func deleteRowHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		if err := c.DeleteRow(ctx, id); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Row " + id + " deleted."), nil
	}
}

// --- ordering ---

func sortTool() mcp.Tool {
	return mcp.NewTool("breaklist_sort",
		mcp.WithDescription("Sort all rows by shift start, then name."),
	)
}

func sortHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := c.Sort(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Rows sorted by start time."), nil
	}
}

func reorderTool() mcp.Tool {
	return mcp.NewTool("breaklist_reorder",
		mcp.WithDescription("Move rows to the top in the given order. Rows not listed keep their relative order after them."),
		mcp.WithString("ordered_ids",
			mcp.Description("Comma separated row ids"),
			mcp.Required(),
		),
	)
}

func reorderHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := c.Reorder(ctx, req.GetString("ordered_ids", "")); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Rows reordered."), nil
	}
}

// --- cells ---

func setCellTool() mcp.Tool {
	return mcp.NewTool("breaklist_set_cell",
		mcp.WithDescription("Annotate one time slot of a row (at most 6 characters). An empty value clears the slot."),
		mcp.WithString("row_id",
			mcp.Description("Row id as shown by breaklist_view"),
			mcp.Required(),
		),
		mcp.WithNumber("slot",
			mcp.Description("Slot index from 0 at the start of the day"),
			mcp.Required(),
		),
		mcp.WithString("value",
			mcp.Description("Annotation text, e.g. BRK"),
		),
	)
}

func setCellHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rowID := req.GetString("row_id", "")
		slot := req.GetInt("slot", -1)
		if rowID == "" || slot < 0 {
			return toolError(fmt.Errorf("row_id and a non-negative slot are required"))
		}
		value := req.GetString("value", "")
		if err := c.SetCell(ctx, models.UpdateCellRequest{RowID: rowID, Slot: slot, Value: value}); err != nil {
			return toolError(err)
		}
		if strings.TrimSpace(value) == "" {
			return mcp.NewToolResultText(fmt.Sprintf("Slot %d of %s cleared.", slot, rowID)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Slot %d of %s set.", slot, rowID)), nil
	}
}

// --- clear ---

func clearTool() mcp.Tool {
	return mcp.NewTool("breaklist_clear",
		mcp.WithDescription("Discard the whole break list, including rows and annotations."),
	)
}

func clearHandler(c *Client) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := c.Clear(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Break list cleared."), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRow(r models.Row) string {
	return fmt.Sprintf("%s  %s  %s-%s", r.ID, r.Name, timewindow.FormatClock(r.StartAbsMin), timewindow.FormatClock(r.EndAbsMin))
}

func formatView(v *models.ScheduleView) string {
	labels := make(map[int]string, len(v.Slots))
	for _, s := range v.Slots {
		labels[s.Index] = s.Label
	}

	var sb strings.Builder
	if v.SourceFileName != "" {
		fmt.Fprintf(&sb, "Source: %s (uploaded %s)\n", v.SourceFileName, v.UploadedAt.Format("2006-01-02 15:04 MST"))
	}
	for _, r := range v.Rows {
		fmt.Fprintf(&sb, "%d. %s  %s  %s-%s", r.SortOrder, r.ID, r.Name, r.StartLabel, r.EndLabel)
		if notes := rowNotes(v, r.ID, labels); notes != "" {
			sb.WriteString("  " + notes)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func rowNotes(v *models.ScheduleView, rowID string, labels map[int]string) string {
	var slots []int
	for i := range v.Slots {
		if _, ok := v.Cells[models.CellKey(rowID, i)]; ok {
			slots = append(slots, i)
		}
	}

	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = fmt.Sprintf("[%s %s]", labels[slot], v.Cells[models.CellKey(rowID, slot)])
	}
	return strings.Join(parts, " ")
}
