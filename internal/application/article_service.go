package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/newsboard/internal/domain/entity"
	repo "github.com/oksasatya/newsboard/internal/domain/repository"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

type ArticleService struct {
	Articles repo.ArticleRepository
	Logger   *logrus.Logger
}

func NewArticleService(articles repo.ArticleRepository, logger *logrus.Logger) *ArticleService {
	return &ArticleService{Articles: articles, Logger: logger}
}

func (s *ArticleService) List(ctx context.Context) ([]entity.ArticleWithAuthor, error) {
	return s.Articles.List(ctx)
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Create stores a submission owned by author.
func (s *ArticleService) Create(ctx context.Context, author *entity.User, title, link string) (*entity.Article, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	title = helpers.StripMarkup(title)
	if utf8.RuneCountInString(title) < 5 {
		return nil, invalid("title must be at least 5 characters long")
	}
	link = strings.TrimSpace(link)
	if !isWebURL(link) {
		return nil, invalid("url must be a valid URL")
	}

	a := &entity.Article{Title: title, URL: link, UserID: author.ID}
	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"article_id": a.ID, "user_id": author.ID}).Info("article created")
	}
	return a, nil
}

// Delete removes the article when caller owns it or is an admin.
func (s *ArticleService) Delete(ctx context.Context, caller *entity.User, id int64) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	a, err := s.Articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if !caller.CanDeleteArticle(a) {
		return ErrForbidden
	}
	if err := s.Articles.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"article_id": id, "user_id": caller.ID, "role": caller.Role}).Info("article deleted")
	}
	return nil
}
