package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slotwatch-worker-go/internal/occupancy"
)

// SummaryRecord is one stored frame summary.
type SummaryRecord struct {
	ID        string                 `json:"id"`
	CameraID  string                 `json:"camera_id"`
	FrameID   int64                  `json:"frame_id"`
	Summary   occupancy.FrameSummary `json:"summary"`
	FrameTime time.Time              `json:"frame_time"`
}

// SaveSummary inserts a record, assigning an ID when it has none.
func (s *Store) SaveSummary(ctx context.Context, rec *SummaryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.FrameTime.IsZero() {
		rec.FrameTime = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO frame_summaries (id, camera_id, frame_id, correct, incorrect, empty, frame_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CameraID, rec.FrameID,
		rec.Summary.Correct, rec.Summary.Incorrect, rec.Summary.Empty,
		rec.FrameTime.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

// RecentSummaries returns up to limit records for a camera, newest first.
func (s *Store) RecentSummaries(ctx context.Context, cameraID string, limit int) ([]SummaryRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, camera_id, frame_id, correct, incorrect, empty, frame_time
		 FROM frame_summaries WHERE camera_id = ?
		 ORDER BY frame_time DESC, frame_id DESC LIMIT ?`,
		cameraID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []SummaryRecord
	for rows.Next() {
		var rec SummaryRecord
		if err := rows.Scan(&rec.ID, &rec.CameraID, &rec.FrameID,
			&rec.Summary.Correct, &rec.Summary.Incorrect, &rec.Summary.Empty,
			&rec.FrameTime); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PruneSummaries keeps only the newest keep records of a camera.
func (s *Store) PruneSummaries(ctx context.Context, cameraID string, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM frame_summaries WHERE camera_id = ? AND id NOT IN (
			SELECT id FROM frame_summaries WHERE camera_id = ?
			ORDER BY frame_time DESC, frame_id DESC LIMIT ?
		)`,
		cameraID, cameraID, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune summaries: %w", err)
	}
	return res.RowsAffected()
}
