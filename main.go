// Command blogapi runs the blogging API server. It wires configuration, the
// database pool, migrations, the background mail queue, and the HTTP router,
// and shuts all of them down gracefully on SIGINT/SIGTERM. A second
// subcommand re-sends the welcome email to an existing user.
//
// @title Blog API
// @version 1.0
// @description Blogging API: token-authenticated users, owner-gated posts, asynchronous welcome email.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/urfave/cli/v2"

	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/background"
	"github.com/user/blogapi-go/config"
	"github.com/user/blogapi-go/db"
	_ "github.com/user/blogapi-go/docs"
	"github.com/user/blogapi-go/mail"
	"github.com/user/blogapi-go/posts"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	app := &cli.App{
		Name:           "blogapi",
		Usage:          "blogging API with token auth and owner-gated posts",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Action: func(c *cli.Context) error {
					return runServer()
				},
			},
			{
				Name:      "send-welcome",
				Usage:     "send the welcome email to an existing user",
				ArgsUsage: "<user-id>",
				Action:    runSendWelcome,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// The mail queue outlives individual requests; registration enqueues and
	// moves on. Stop() drains in-flight jobs during shutdown.
	mailer := mail.NewMailer(cfg.Mail)
	mailQueue := background.NewMailQueue(mailer, cfg.Mail.QueueSize, cfg.Mail.Workers)

	authService := auth.NewService(auth.NewStore(pool), mailQueue)
	authHandlers := auth.NewHandlers(authService)

	postService := posts.NewService(posts.NewStore(pool))
	postHandlers := posts.NewHandlers(postService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())

	r.Group(func(r chi.Router) {
		r.Use(auth.BearerMiddleware(authService))
		r.Post("/logout", authHandlers.HandleLogout())
		r.Post("/logout-all-devices", authHandlers.HandleLogoutAll())
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandlers.HandleList())
		r.Get("/{id}", postHandlers.HandleGet())

		r.Group(func(r chi.Router) {
			r.Use(auth.BearerMiddleware(authService))
			r.Post("/", postHandlers.HandleCreate())
			r.Put("/{id}", postHandlers.HandleUpdate())
			r.Delete("/{id}", postHandlers.HandleDelete())
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Draining mail queue...")
	mailQueue.Stop()

	log.Println("Server exited")
	return nil
}

// runSendWelcome implements `blogapi send-welcome <user-id>`: load the user
// and send the welcome email synchronously, bypassing the queue.
func runSendWelcome(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: blogapi send-welcome <user-id>", 1)
	}
	userID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || userID <= 0 {
		return cli.Exit("user-id must be a positive integer", 1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	defer pool.Close()

	store := auth.NewStore(pool)
	user, err := store.GetUserByID(context.Background(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrNoRecord) {
			return cli.Exit("User not found.", 1)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	mailer := mail.NewMailer(cfg.Mail)
	if err := mailer.Send(mail.WelcomeMessage(user.Name, user.Email)); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	fmt.Printf("Welcome email sent to user ID: %d\n", userID)
	return nil
}
