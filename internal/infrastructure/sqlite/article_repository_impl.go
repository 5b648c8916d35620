package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/newsboard/internal/domain/entity"
	"github.com/oksasatya/newsboard/internal/domain/repository"
)

type ArticleRepository struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) List(ctx context.Context) ([]entity.ArticleWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.title, a.url, a.user_id, a.created_at, COALESCE(u.username, ?)
		FROM articles a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC, a.id DESC
	`, entity.UnknownAuthor)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]entity.ArticleWithAuthor, 0)
	for rows.Next() {
		var a entity.ArticleWithAuthor
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.UserID, &createdAt, &a.Username); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a := &entity.Article{}
	var createdAt string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, url, user_id, created_at
		FROM articles
		WHERE id = ?
	`, id).Scan(&a.ID, &a.Title, &a.URL, &a.UserID, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (title, url, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`, a.Title, a.URL, a.UserID, formatTime(createdAt))
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	a.ID = id
	a.CreatedAt = createdAt
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
