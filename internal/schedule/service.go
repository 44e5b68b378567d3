package schedule

import (
	"context"
	"log/slog"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
	"github.com/ngoachoi-cell/breaklistweb/internal/report"
)

// Service runs schedule operations through the repository.
type Service struct {
	repo   *Repository
	ids    IDGenerator
	logger *slog.Logger
}

func NewService(repo *Repository, ids IDGenerator, logger *slog.Logger) *Service {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Service{repo: repo, ids: ids, logger: logger}
}

// ImportResult describes a successful upload.
type ImportResult struct {
	FileName string `json:"fileName"`
	Imported int    `json:"imported"`
	RowCount int    `json:"rowCount"`
}

// Import parses a shift report against the stored window and appends its rows.
// Rejections are returned as *report.RejectionError and leave the state as it was.
func (s *Service) Import(ctx context.Context, data []byte, fileName string) (*ImportResult, error) {
	var imported int
	st, err := s.repo.Update(ctx, func(st *models.State) error {
		rows, err := report.ParseFile(data, fileName, st.Window())
		if err != nil {
			return err
		}
		ImportMerge(st, rows, s.ids, fileName, s.repo.Now())
		imported = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedule imported", "file", fileName, "imported", imported, "rows", len(st.Rows))
	return &ImportResult{FileName: fileName, Imported: imported, RowCount: len(st.Rows)}, nil
}

// View returns the display model, or ErrEmptySchedule when there are no rows.
func (s *Service) View(ctx context.Context) (*models.ScheduleView, error) {
	st, err := s.repo.Read(ctx)
	if err != nil {
		return nil, err
	}
	return BuildView(st)
}

// Status summarizes the last upload.
func (s *Service) Status(ctx context.Context) (*models.UploadStatus, error) {
	st, err := s.repo.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &models.UploadStatus{
		SourceFileName: st.SourceFileName,
		UploadedAt:     st.UploadedAt,
		RowCount:       len(st.Rows),
	}, nil
}

// Row returns a single row by id.
func (s *Service) Row(ctx context.Context, id string) (*models.Row, error) {
	st, err := s.repo.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindRow(id)
	if i < 0 {
		return nil, ErrRowNotFound
	}
	row := st.Rows[i]
	return &row, nil
}

func (s *Service) UpdateRow(ctx context.Context, id string, req models.UpdateRowRequest) (*models.Row, error) {
	var row models.Row
	_, err := s.repo.Update(ctx, func(st *models.State) error {
		var err error
		row, err = UpdateRow(st, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("row updated", "id", id, "start", row.StartAbsMin, "end", row.EndAbsMin)
	return &row, nil
}

func (s *Service) SetCell(ctx context.Context, req models.UpdateCellRequest) error {
	_, err := s.repo.Update(ctx, func(st *models.State) error {
		SetCell(st, req.RowID, req.Slot, req.Value)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("cell updated", "row", req.RowID, "slot", req.Slot)
	return nil
}

func (s *Service) AddRow(ctx context.Context) (*models.Row, error) {
	var row models.Row
	_, err := s.repo.Update(ctx, func(st *models.State) error {
		row = AddRow(st, s.ids.NewID())
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("row added", "id", row.ID, "sort_order", row.SortOrder)
	return &row, nil
}

func (s *Service) DeleteRow(ctx context.Context, id string) error {
	_, err := s.repo.Update(ctx, func(st *models.State) error {
		return DeleteRow(st, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("row deleted", "id", id)
	return nil
}

func (s *Service) SortByStartTime(ctx context.Context) error {
	st, err := s.repo.Update(ctx, func(st *models.State) error {
		SortByStartTime(st)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("rows sorted by start time", "rows", len(st.Rows))
	return nil
}

// Reorder takes the comma separated id list posted by the grid.
func (s *Service) Reorder(ctx context.Context, orderedIDs string) error {
	ids := ParseIDList(orderedIDs)
	_, err := s.repo.Update(ctx, func(st *models.State) error {
		Reorder(st, ids)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("rows reordered", "ids", len(ids))
	return nil
}

// ClearAll discards the schedule, including any unreadable stored state.
func (s *Service) ClearAll(ctx context.Context) error {
	if _, err := s.repo.Reset(ctx); err != nil {
		return err
	}
	s.logger.Info("schedule cleared")
	return nil
}
