package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskboard/internal/model"
)

// PostgresProjectRepo はPostgreSQLを使用したプロジェクトリポジトリ。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

// Create はプロジェクトを作成し、採番されたIDをproject.IDに設定する。
func (r *PostgresProjectRepo) Create(ctx context.Context, project *model.Project) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (name, description, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		project.Name, project.Description, project.OwnerID, project.CreatedAt, project.UpdatedAt,
	).Scan(&project.ID)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

// FindByIDAndOwner はIDと所有者IDの両方が一致するプロジェクトを取得する。
// 存在しない場合と所有者が異なる場合はいずれもnilを返す。
// WHERE句に所有権条件を含めることで、所有しない行をアプリケーション層に
// 持ち出すことなく単一の往復で認可と取得を行う。
func (r *PostgresProjectRepo) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Project, error) {
	project := &model.Project{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, owner_id, created_at, updated_at
		 FROM projects
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID,
		&project.CreatedAt, &project.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find project by ID and owner: %w", err)
	}

	return project, nil
}

// ExistsByIDAndOwner はIDと所有者IDの両方が一致するプロジェクトの有無を返す。
func (r *PostgresProjectRepo) ExistsByIDAndOwner(ctx context.Context, id, ownerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1 AND owner_id = $2)`,
		id, ownerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project ownership: %w", err)
	}

	return exists, nil
}

// ListByOwner は指定所有者のプロジェクト一覧をID昇順で返す。
// フィルタはSQLで行い、全件取得後の絞り込みは行わない。
func (r *PostgresProjectRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, owner_id, created_at, updated_at
		 FROM projects
		 WHERE owner_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by owner: %w", err)
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		project := &model.Project{}
		if err := rows.Scan(&project.ID, &project.Name, &project.Description,
			&project.OwnerID, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project rows: %w", err)
	}

	return projects, nil
}

// Update はプロジェクトの名前と説明を更新する。owner_idは変更しない。
func (r *PostgresProjectRepo) Update(ctx context.Context, project *model.Project) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = $1, description = $2, updated_at = now() WHERE id = $3`,
		project.Name, project.Description, project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project not found: %d", project.ID)
	}
	return nil
}

// DeleteByID は指定IDのプロジェクトを削除する。配下のタスクはCASCADE削除される。
func (r *PostgresProjectRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project not found: %d", id)
	}
	return nil
}

// compile-time interface check
var _ ProjectRepository = (*PostgresProjectRepo)(nil)
