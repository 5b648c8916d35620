package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/newsboard/config"
	"github.com/oksasatya/newsboard/internal/application"
	"github.com/oksasatya/newsboard/internal/container"
	"github.com/oksasatya/newsboard/pkg/helpers"
)

type demoArticle struct {
	Title string
	URL   string
}

var demoArticles = []demoArticle{
	{"The Go Programming Language", "https://go.dev/"},
	{"Effective Go", "https://go.dev/doc/effective_go"},
}

func main() {
	demo := flag.Bool("demo", false, "create a demo user with sample articles")
	deleteUser := flag.String("delete-user", "", "delete the named user and their articles")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	warnings, err := cfg.Validate()
	for _, w := range warnings {
		logger.Warn(w)
	}
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	closeDB, err := container.OpenDatabase(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer closeDB()

	// sessions are never issued here
	container.UseMemory()
	container.SetConfig(cfg)
	container.SetLogger(logger)
	if err := container.Build(); err != nil {
		log.Fatalf("wiring: %v", err)
	}
	users := container.GetUserService()

	created, err := users.EnsureAdmin(ctx, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	fmt.Printf("admin account ensured (created=%v)\n", created)

	if *demo {
		seedDemo(ctx, users, container.GetArticleService())
	}

	if *deleteUser != "" {
		if *deleteUser == application.AdminUsername {
			log.Fatalf("refusing to delete the bootstrap admin")
		}
		if err := users.DeleteUser(ctx, *deleteUser); err != nil {
			log.Fatalf("delete user %q: %v", *deleteUser, err)
		}
		fmt.Printf("deleted user %s and their articles\n", *deleteUser)
	}
}

func seedDemo(ctx context.Context, users *application.UserService, articles *application.ArticleService) {
	const name, password = "demoUser", "password123"

	u, _, err := users.Register(ctx, name, password)
	if errors.Is(err, application.ErrUsernameTaken) {
		fmt.Printf("demo user %s already exists, skipping\n", name)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s password=%s\n", u.ID, u.Username, password)

	for _, a := range demoArticles {
		art, err := articles.Create(ctx, u, a.Title, a.URL)
		if err != nil {
			log.Fatalf("failed to seed article: %v", err)
		}
		fmt.Printf("seeded article: id=%d title=%q\n", art.ID, art.Title)
	}
}
