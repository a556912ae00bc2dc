// Package sqlite mirrors the subscription list into a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"feedshelf/internal/domain/entity"
	"feedshelf/internal/infra/db"
	"feedshelf/internal/repository"
)

// SubscriptionRepo stores folders and their sources in SQLite, keeping
// the order of both in a position column.
type SubscriptionRepo struct{ db db.Conn }

// NewSubscriptionRepo returns a repository running its statements on conn.
func NewSubscriptionRepo(conn db.Conn) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: conn}
}

// ReplaceAll swaps the stored list for folders in one transaction.
func (repo *SubscriptionRepo) ReplaceAll(ctx context.Context, folders []*entity.Folder) (err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceAll: BeginTx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM subscriptions`); err != nil {
		return fmt.Errorf("ReplaceAll: delete subscriptions: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM folders`); err != nil {
		return fmt.Errorf("ReplaceAll: delete folders: %w", err)
	}

	for i, folder := range folders {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO folders (name, position) VALUES (?, ?)`,
			folder.Name, i,
		); err != nil {
			return fmt.Errorf("ReplaceAll: insert folder %q: %w", folder.Name, err)
		}
		for j, src := range folder.Sources {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO subscriptions (folder_name, position, name, feed_url) VALUES (?, ?, ?, ?)`,
				folder.Name, j, src.Name, src.URL,
			); err != nil {
				return fmt.Errorf("ReplaceAll: insert subscription %q: %w", src.URL, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceAll: Commit: %w", err)
	}
	return nil
}

// ListFolders returns the stored folders and sources in saved order.
func (repo *SubscriptionRepo) ListFolders(ctx context.Context) ([]*entity.Folder, error) {
	const query = `
SELECT
    f.name,
    s.name,
    s.feed_url
FROM folders f
LEFT JOIN subscriptions s ON s.folder_name = f.name
ORDER BY f.position ASC, s.position ASC
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListFolders: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	folders := make([]*entity.Folder, 0, 8)
	var current *entity.Folder
	for rows.Next() {
		var (
			folderName string
			name, url  sql.NullString
		)
		if err := rows.Scan(&folderName, &name, &url); err != nil {
			return nil, fmt.Errorf("ListFolders: Scan: %w", err)
		}
		if current == nil || current.Name != folderName {
			current = entity.NewFolder(folderName)
			folders = append(folders, current)
		}
		// an empty folder joins to a single all-NULL subscription row
		if url.Valid {
			current.AddSource(entity.NewSource(url.String, name.String))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListFolders: rows.Err: %w", err)
	}

	return folders, nil
}
