package schedule

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/report"
	"github.com/ngoachoi-cell/breaklistweb/internal/store"
	"github.com/ngoachoi-cell/breaklistweb/internal/timewindow"
)

const weekCSV = "Employee Full Name,Start Time,End Time\n" +
	"Night Owl,22:30,\n" +
	"Early Bird,06:00,14:00\n" +
	"No Start,,10:00\n"

func newTestService(t *testing.T, st store.Store) *Service {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := NewRepository(st, timewindow.Default(), func() time.Time { return testNow })
	return NewService(repo, &seqIDs{}, logger)
}

func TestServiceImportAndView(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemStore())

	res, err := svc.Import(ctx, []byte(weekCSV), "week.csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 2 || res.RowCount != 2 {
		t.Fatalf("result = %+v", res)
	}

	v, err := svc.View(ctx)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.SourceFileName != "week.csv" || !v.UploadedAt.Equal(testNow) {
		t.Fatalf("metadata = %q %v", v.SourceFileName, v.UploadedAt)
	}
	if r := v.Rows[0]; r.Name != "Early Bird" || r.StartAbsMin != 360 || r.EndAbsMin != 840 {
		t.Fatalf("first row = %+v", r)
	}
	if r := v.Rows[1]; r.Name != "Night Owl" || r.StartAbsMin != 1350 || r.EndAbsMin != 1830 {
		t.Fatalf("second row = %+v", r)
	}

	// A second upload appends after the existing rows.
	if _, err := svc.Import(ctx, []byte(weekCSV), "week2.csv"); err != nil {
		t.Fatalf("second import: %v", err)
	}
	v, err = svc.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Rows) != 4 || v.Rows[2].SortOrder != 2 || v.Rows[3].SortOrder != 3 || v.Rows[2].ID != "r3" {
		t.Fatalf("rows after merge = %+v", v.Rows)
	}
}

func TestServiceImportRejectionLeavesState(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	svc := newTestService(t, mem)

	if _, err := svc.AddRow(ctx); err != nil {
		t.Fatal(err)
	}
	before := string(mem.Raw())

	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty upload", "", report.MsgNoFile},
		{"no header", "Name,Start\nAnn,09:00\n", report.MsgNoHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(ctx, []byte(tt.data), "bad.csv")
			var rej *report.RejectionError
			if !errors.As(err, &rej) || rej.Message != tt.want {
				t.Fatalf("expected rejection %q, got %v", tt.want, err)
			}
			if string(mem.Raw()) != before || mem.Saves != 1 {
				t.Fatal("rejected import must not save")
			}
		})
	}
}

func TestServiceImportUsesStoredWindow(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	seed := models.NewState(timewindow.Window{DayStart: 240, Minutes: 1440, SlotStep: 30}, testNow)
	if err := mem.Save(ctx, seed); err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, mem)

	if _, err := svc.Import(ctx, []byte("Employee Full Name,Start\nAnn,05:00\n"), "w.csv"); err != nil {
		t.Fatalf("import: %v", err)
	}
	v, err := svc.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if r := v.Rows[0]; r.StartAbsMin != 300 || r.EndAbsMin != 780 {
		t.Fatalf("row = %+v", r)
	}
	if len(v.Slots) != 48 {
		t.Fatalf("slots = %d, want 48", len(v.Slots))
	}
}

func TestServiceRowLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemStore())

	a, err := svc.AddRow(ctx)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.AddRow(ctx)
	if err != nil {
		t.Fatal(err)
	}

	row, err := svc.UpdateRow(ctx, b.ID, models.UpdateRowRequest{Name: "Bea", Start: "05:00", End: "07:00"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if row.StartAbsMin != 1740 || row.EndAbsMin != 1860 {
		t.Fatalf("updated row = %+v", row)
	}
	if _, err := svc.UpdateRow(ctx, "missing", models.UpdateRowRequest{}); !errors.Is(err, ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}

	if err := svc.SetCell(ctx, models.UpdateCellRequest{RowID: a.ID, Slot: 2, Value: "lunch!!"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reorder(ctx, b.ID+","+a.ID); err != nil {
		t.Fatal(err)
	}
	v, err := svc.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.Rows[0].ID != b.ID || v.Rows[1].ID != a.ID || v.Cells[models.CellKey(a.ID, 2)] != "lunch!" {
		t.Fatalf("view = %+v", v)
	}

	if err := svc.SortByStartTime(ctx); err != nil {
		t.Fatal(err)
	}
	v, _ = svc.View(ctx)
	if v.Rows[0].ID != a.ID {
		t.Fatalf("sorted order = %s, %s", v.Rows[0].ID, v.Rows[1].ID)
	}

	if err := svc.DeleteRow(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	v, _ = svc.View(ctx)
	if len(v.Rows) != 1 || v.Rows[0].SortOrder != 0 || len(v.Cells) != 0 {
		t.Fatalf("after delete = %+v", v)
	}
}

func TestServiceClearAllThenView(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemStore())
	if _, err := svc.Import(ctx, []byte(weekCSV), "week.csv"); err != nil {
		t.Fatal(err)
	}
	if err := svc.ClearAll(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.View(ctx); !errors.Is(err, ErrEmptySchedule) {
		t.Fatalf("expected ErrEmptySchedule, got %v", err)
	}
	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.RowCount != 0 || st.SourceFileName != "" {
		t.Fatalf("status = %+v", st)
	}
}

func TestServiceCorruptState(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemStore()
	mem.SetRaw([]byte(`{"rows": [`))
	svc := newTestService(t, mem)

	if _, err := svc.AddRow(ctx); !errors.Is(err, store.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if _, err := svc.View(ctx); !errors.Is(err, store.ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
	if string(mem.Raw()) != `{"rows": [` {
		t.Fatal("corrupt state must not be overwritten by a failed operation")
	}

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := svc.AddRow(ctx); err != nil {
		t.Fatalf("add after clear: %v", err)
	}
}

func TestServiceConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "breaklist.json")
	fs, err := store.NewFileStore(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, fs)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddRow(ctx); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	v, err := svc.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Rows) != n {
		t.Fatalf("got %d rows, want %d", len(v.Rows), n)
	}
	for i, r := range v.Rows {
		if r.SortOrder != i {
			t.Fatalf("row %d has sort order %d", i, r.SortOrder)
		}
	}
}
