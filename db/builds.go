package db

import (
	"fmt"
	"time"
)

// Build is one recorded export.
type Build struct {
	ID         int64
	RunID      string
	Part       string
	File       string
	ParamsHash string
	SHA256     string
	Triangles  int
	Volume     float64
	Resolution float64
	// SearchIters is the number of vertex refinement steps used when meshing.
	SearchIters int
	CreatedAt   time.Time

	// Drifted is set by RecentBuilds when an earlier build of the same part
	// with the same parameters and mesh options wrote different bytes.
	Drifted bool
}

// RecordBuild stores b and returns its id.
func (c *Client) RecordBuild(b Build) (int64, error) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	res, err := c.DB.Exec(`
INSERT INTO builds (run_id, part, file, params_hash, sha256, triangles, volume, resolution, search_iters, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.RunID, b.Part, b.File, b.ParamsHash, b.SHA256, b.Triangles, b.Volume, b.Resolution, b.SearchIters, b.CreatedAt.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("insert build: %w", err)
	}
	return res.LastInsertId()
}

// RecentBuilds returns up to limit builds, newest first, optionally filtered
// by part.
func (c *Client) RecentBuilds(part string, limit int) ([]Build, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.DB.Query(`
SELECT b.id, b.run_id, b.part, b.file, b.params_hash, b.sha256, b.triangles, b.volume, b.resolution, b.search_iters, b.created_at,
	EXISTS (
		SELECT 1 FROM builds p
		WHERE p.part = b.part AND p.params_hash = b.params_hash AND p.resolution = b.resolution
			AND p.search_iters = b.search_iters
			AND p.id < b.id AND p.sha256 <> b.sha256
	)
FROM builds b
WHERE ? = '' OR b.part = ?
ORDER BY b.id DESC
LIMIT ?`, part, part, limit)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Build
	for rows.Next() {
		var b Build
		var created int64
		if err := rows.Scan(&b.ID, &b.RunID, &b.Part, &b.File, &b.ParamsHash, &b.SHA256,
			&b.Triangles, &b.Volume, &b.Resolution, &b.SearchIters, &created, &b.Drifted); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		b.CreatedAt = time.Unix(0, created)
		out = append(out, b)
	}
	return out, rows.Err()
}
