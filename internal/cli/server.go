package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/config"
	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/infra/memory"
	pgstore "millionaire-quiz-service/internal/infra/postgres"
	redisstore "millionaire-quiz-service/internal/infra/redis"
	transport "millionaire-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)

	var topics app.TopicRepository
	var profiles app.ProfileRepository
	var loader memory.QuizLoader
	if pool != nil {
		topics = pgstore.NewTopicStore(pool)
		profiles = pgstore.NewProfileStore(pool)
		loader = pgstore.NewQuizLoader(pool)
	} else {
		// No document store configured: serve the built-in demo content.
		topics = memory.NewTopicStore(sampleTopics())
		profiles = memory.NewProfileStore(sampleProfiles())
		loader = memory.NewStaticQuizLoader(sampleQuizzes())
	}

	var quizzes app.QuizRepository
	if redisClient != nil {
		quizzes = redisstore.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizzes = memory.NewQuizRepository(loader, quizTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	service := app.NewGameService(topics, quizzes, profiles, sessions)
	advanceDelay := config.TTLDuration(cfg.Game.AdvanceDelay, 2*time.Second)
	wsHandler := transport.NewWSHandler(service, advanceDelay)
	apiHandler := transport.NewAPIHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/topics", apiHandler.Topics)
	mux.HandleFunc("/leaderboard", apiHandler.Standings)
	mux.HandleFunc("/achievements", apiHandler.Achievements)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz game service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleTopics provides demo topics; swap the stores for the document
// DB-backed ones in production.
func sampleTopics() map[string]domain.Topic {
	return map[string]domain.Topic{
		"topic-1": {
			ID:            "topic-1",
			Name:          "General Knowledge",
			CreatedBy:     "teacher-1",
			CreatedByName: "Ms. Example",
			Active:        true,
		},
	}
}

func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"topic-1": {
			ID:      "quiz-1",
			TopicID: "topic-1",
			Questions: []domain.Question{
				{
					Text:          "What is 2 + 2?",
					CorrectAnswer: "4",
					WrongAnswers:  []string{"3", "5", "22"},
				},
				{
					Text:          "Which planet is closest to the sun?",
					CorrectAnswer: "Mercury",
					WrongAnswers:  []string{"Venus", "Mars", "Jupiter"},
				},
				{
					Text:          "How many continents are there?",
					CorrectAnswer: "7",
					WrongAnswers:  []string{"5", "6", "8"},
				},
			},
		},
	}
}

func sampleProfiles() map[string]domain.Profile {
	return map[string]domain.Profile{
		"student-1": {
			UserID:    "student-1",
			FirstName: "Alice",
			LastName:  "Example",
			Email:     "alice@example.org",
			Role:      domain.RoleStudent,
			Jokers: map[domain.JokerType]int{
				domain.JokerFiftyFifty: 2,
				domain.JokerTimerStop:  2,
			},
		},
	}
}
