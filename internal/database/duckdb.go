// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/careerpath/internal/logging"
	"github.com/tomtom215/careerpath/internal/metrics"
	"github.com/tomtom215/careerpath/internal/models"
)

// Nested documents are stored as JSON text so the tables mirror the Mongo
// collections one row per document.
var duckdbSchema = []string{
	`CREATE TABLE IF NOT EXISTS recommendations (
		id VARCHAR,
		user_id VARCHAR NOT NULL,
		kcse_results VARCHAR,
		recommendations VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS careers (
		id VARCHAR PRIMARY KEY,
		title VARCHAR,
		category VARCHAR,
		description VARCHAR,
		key_subjects VARCHAR
	)`,
}

// DuckDBSource reads historical data from an embedded DuckDB file. It serves
// offline training and holds exports of the Mongo collections.
type DuckDBSource struct {
	conn *sql.DB
	path string
}

// NewDuckDBSource opens (or creates) the database at path. An empty path
// opens an in-memory database.
func NewDuckDBSource(ctx context.Context, path string) (*DuckDBSource, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if path == "" {
		conn.SetMaxOpenConns(1)
	}

	s := &DuckDBSource{conn: conn, path: path}
	if err := s.initSchema(ctx); err != nil {
		closeWithLog(conn, "duckdb")
		return nil, err
	}

	logging.Debug().Str("path", path).Msg("DuckDB source opened")
	return s, nil
}

func (s *DuckDBSource) initSchema(ctx context.Context) error {
	for _, stmt := range duckdbSchema {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create duckdb schema: %w", err)
		}
	}
	return nil
}

// Recommendations returns every row of the recommendations table.
func (s *DuckDBSource) Recommendations(ctx context.Context) (out []models.RecommendationRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordSourceQuery("duckdb", RecommendationsCollection, time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, user_id, kcse_results, recommendations FROM recommendations`)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	out = []models.RecommendationRecord{}
	for rows.Next() {
		var (
			id, userID sql.NullString
			kcse, recs sql.NullString
			rec        models.RecommendationRecord
		)
		if err := rows.Scan(&id, &userID, &kcse, &recs); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.ID = models.ID(id.String)
		rec.User = models.ID(userID.String)
		if kcse.Valid && kcse.String != "" {
			rec.KCSEResults = &models.KCSEResults{}
			if err := json.Unmarshal([]byte(kcse.String), rec.KCSEResults); err != nil {
				return nil, fmt.Errorf("decode kcse_results for %q: %w", rec.ID, err)
			}
		}
		rec.Recommendations = []models.RecordEntry{}
		if recs.Valid && recs.String != "" {
			if err := json.Unmarshal([]byte(recs.String), &rec.Recommendations); err != nil {
				return nil, fmt.Errorf("decode recommendations for %q: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return out, nil
}

// Careers returns every row of the careers table.
func (s *DuckDBSource) Careers(ctx context.Context) (out []models.Career, err error) {
	start := time.Now()
	defer func() { metrics.RecordSourceQuery("duckdb", CareersCollection, time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, title, category, description, key_subjects FROM careers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query careers: %w", err)
	}
	defer rows.Close()

	out = []models.Career{}
	for rows.Next() {
		var id, title, category, description, subjects sql.NullString
		if err := rows.Scan(&id, &title, &category, &description, &subjects); err != nil {
			return nil, fmt.Errorf("scan career: %w", err)
		}
		c := models.Career{
			ID:          models.ID(id.String),
			Title:       title.String,
			Category:    category.String,
			Description: description.String,
		}
		if subjects.Valid && subjects.String != "" {
			if err := json.Unmarshal([]byte(subjects.String), &c.KeySubjects); err != nil {
				return nil, fmt.Errorf("decode key_subjects for %q: %w", c.ID, err)
			}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate careers: %w", err)
	}
	return out, nil
}

// Import replaces the contents of both tables in a single transaction.
func (s *DuckDBSource) Import(ctx context.Context, records []models.RecommendationRecord, careers []models.Career) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	for _, table := range []string{"recommendations", "careers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i := range records {
		r := &records[i]
		var kcse sql.NullString
		if r.KCSEResults != nil {
			b, err := json.Marshal(r.KCSEResults)
			if err != nil {
				return fmt.Errorf("encode kcse_results: %w", err)
			}
			kcse = sql.NullString{String: string(b), Valid: true}
		}
		entries := r.Recommendations
		if entries == nil {
			entries = []models.RecordEntry{}
		}
		recs, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode recommendations: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recommendations (id, user_id, kcse_results, recommendations) VALUES (?, ?, ?, ?)`,
			r.ID.String(), r.User.String(), kcse, string(recs)); err != nil {
			return fmt.Errorf("insert recommendation %q: %w", r.ID, err)
		}
	}

	for i := range careers {
		c := &careers[i]
		var subjects sql.NullString
		if c.KeySubjects != nil {
			b, err := json.Marshal(c.KeySubjects)
			if err != nil {
				return fmt.Errorf("encode key_subjects: %w", err)
			}
			subjects = sql.NullString{String: string(b), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO careers (id, title, category, description, key_subjects) VALUES (?, ?, ?, ?, ?)`,
			c.ID.String(), c.Title, c.Category, c.Description, subjects); err != nil {
			return fmt.Errorf("insert career %q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}

	logging.Info().
		Int("records", len(records)).
		Int("careers", len(careers)).
		Str("path", s.path).
		Msg("Imported training data into DuckDB")
	return nil
}

// Ping checks that the database answers queries.
func (s *DuckDBSource) Ping(ctx context.Context) error {
	if err := s.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping duckdb: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *DuckDBSource) Close() error {
	return s.conn.Close()
}

var _ Source = (*DuckDBSource)(nil)
