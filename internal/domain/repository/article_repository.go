package repository

import (
	"context"

	"github.com/oksasatya/newsboard/internal/domain/entity"
)

// ArticleRepository defines the interface for article persistence.
type ArticleRepository interface {
	// List returns every article with its owner's username, newest first.
	List(ctx context.Context) ([]entity.ArticleWithAuthor, error)
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	Create(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id int64) error
}
