package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/newsboard/internal/domain/entity"
	"github.com/oksasatya/newsboard/internal/domain/repository"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func (r *ArticleRepository) List(ctx context.Context) ([]entity.ArticleWithAuthor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.title, a.url, a.user_id, a.created_at, COALESCE(u.username, $1)
		FROM articles a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC, a.id DESC
	`, entity.UnknownAuthor)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	out := make([]entity.ArticleWithAuthor, 0)
	for rows.Next() {
		var a entity.ArticleWithAuthor
		if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.UserID, &a.CreatedAt, &a.Username); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
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
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, url, user_id, created_at
		FROM articles
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.URL, &a.UserID, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO articles (title, url, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, a.Title, a.URL, a.UserID).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
