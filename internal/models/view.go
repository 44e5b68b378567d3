package models

import "time"

// SlotHeader labels one column of the schedule grid.
type SlotHeader struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

// RowView is a row prepared for display.
type RowView struct {
	Row
	StartLabel string `json:"startLabel"`
	EndLabel   string `json:"endLabel"`
	// FirstSlot and LastSlot are inclusive; both are -1 when the shift misses the window.
	FirstSlot int `json:"firstSlot"`
	LastSlot  int `json:"lastSlot"`
}

// ScheduleView is the read model returned by GET /breaklist.
type ScheduleView struct {
	WindowConfig
	SourceFileName string            `json:"sourceFileName"`
	UploadedAt     time.Time         `json:"uploadedAt"`
	Slots          []SlotHeader      `json:"slots"`
	Rows           []RowView         `json:"rows"`
	Cells          map[string]string `json:"cells"`
}

// UploadStatus is returned by GET /upload.
type UploadStatus struct {
	SourceFileName string    `json:"sourceFileName"`
	UploadedAt     time.Time `json:"uploadedAt"`
	RowCount       int       `json:"rowCount"`
}

// UpdateRowRequest is the payload for PATCH /breaklist/rows/{id}.
// Start and End are clock strings; unparseable values leave the field unchanged.
type UpdateRowRequest struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateCellRequest is the payload for PUT /breaklist/cells.
type UpdateCellRequest struct {
	RowID string `json:"rowId"`
	Slot  int    `json:"slot"`
	Value string `json:"value"`
}

// ReorderRequest is the payload for POST /breaklist/reorder.
type ReorderRequest struct {
	OrderedIDs string `json:"orderedIds"`
}

// ServiceCheck reports one dependency in the health response.
type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string       `json:"status"`
	Store    ServiceCheck `json:"store"`
	RowCount int          `json:"rowCount"`
}
