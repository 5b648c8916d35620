package entity

import "time"

// Article is a submitted link. Its owner is fixed at creation.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArticleWithAuthor is a listing row: the article joined with its owner's name.
type ArticleWithAuthor struct {
	Article
	Username string `json:"username"`
}

// UnknownAuthor is shown for articles whose owner row no longer exists.
const UnknownAuthor = "Unknown"
