package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/progress"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/worksheet"
)

// LoadWorksheet fetches the stored document for (user, pillar). A user who
// has never saved this pillar gets a fresh default document, not an error.
func (s *Store) LoadWorksheet(ctx context.Context, userID uuid.UUID, pillarID int) (*worksheet.Document, error) {
	doc := &worksheet.Document{UserID: userID, Pillar: pillarID}
	var sectionsJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT sections, created_at, updated_at
		 FROM worksheets WHERE user_id = $1 AND pillar = $2`,
		userID, pillarID,
	).Scan(&sectionsJSON, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksheet.NewDocument(userID, pillarID)
		}
		return nil, &worksheet.StoreError{Op: "load worksheet", Err: err}
	}

	if err := json.Unmarshal(sectionsJSON, &doc.Sections); err != nil {
		return nil, fmt.Errorf("failed to decode stored sections: %w", err)
	}
	// Backfill sections added to the schema after this row was written.
	if err := doc.Normalize(); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveWorksheet upserts the whole document keyed by (user, pillar).
// Last write wins; there is no merge. Exactly one attempt per call.
func (s *Store) SaveWorksheet(ctx context.Context, doc *worksheet.Document) error {
	sectionsJSON, err := json.Marshal(doc.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO worksheets (user_id, pillar, sections)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, pillar) DO UPDATE SET sections = EXCLUDED.sections, updated_at = NOW()`,
		doc.UserID, doc.Pillar, sectionsJSON,
	)
	if err != nil {
		return &worksheet.StoreError{Op: "save worksheet", Err: err}
	}
	return nil
}

// LoadProgress fetches the progression state for (user, pillar), or a
// fresh state when none has been saved yet.
func (s *Store) LoadProgress(ctx context.Context, userID uuid.UUID, pillarID int) (*progress.State, error) {
	st := progress.NewState()
	var artifactsJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT current_section, unlocked_up_to, artifacts
		 FROM pillar_progress WHERE user_id = $1 AND pillar = $2`,
		userID, pillarID,
	).Scan(&st.CurrentSection, &st.UnlockedUpTo, &artifactsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return st, nil
		}
		return nil, &worksheet.StoreError{Op: "load progress", Err: err}
	}

	if len(artifactsJSON) > 0 {
		if err := json.Unmarshal(artifactsJSON, &st.ArtifactProduced); err != nil {
			return nil, fmt.Errorf("failed to decode stored artifacts: %w", err)
		}
	}
	return st, nil
}

// SaveProgress upserts the progression state keyed by (user, pillar).
func (s *Store) SaveProgress(ctx context.Context, userID uuid.UUID, pillarID int, st *progress.State) error {
	artifactsJSON, err := json.Marshal(st.ArtifactProduced)
	if err != nil {
		return fmt.Errorf("failed to marshal artifacts: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO pillar_progress (user_id, pillar, current_section, unlocked_up_to, artifacts)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, pillar) DO UPDATE
		 SET current_section = EXCLUDED.current_section,
		     unlocked_up_to = EXCLUDED.unlocked_up_to,
		     artifacts = EXCLUDED.artifacts,
		     updated_at = NOW()`,
		userID, pillarID, st.CurrentSection, st.UnlockedUpTo, artifactsJSON,
	)
	if err != nil {
		return &worksheet.StoreError{Op: "save progress", Err: err}
	}
	return nil
}
