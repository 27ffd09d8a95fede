package protocal

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"support-relay/configs"
	httpAdapter "support-relay/internal/adapters/input/http"
	"support-relay/internal/adapters/output/memory"
	"support-relay/internal/adapters/output/openai"
	"support-relay/internal/adapters/output/postgres"
	"support-relay/internal/adapters/output/redisstore"
	"support-relay/internal/application"
	"support-relay/internal/ports/output"
	"support-relay/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// newSessionStore func - selects the session store backend from config
func newSessionStore() (output.SessionStore, error) {
	switch configs.GetViper().Relay.Store {
	case "postgres":
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			configs.GetViper().Postgres.Host,
			configs.GetViper().Postgres.Port,
			configs.GetViper().Postgres.Username,
			configs.GetViper().Postgres.Password,
			configs.GetViper().Postgres.DbName,
			configs.GetViper().Postgres.SSLMode,
		)
		if err != nil {
			return nil, err
		}
		return postgres.NewSessionRepository(dbConGorm.Postgres)
	case "redis":
		return redisstore.NewRedisSessionStore(context.Background(), configs.GetViper().Redis.URL)
	default:
		return memory.NewMemorySessionStore(), nil
	}
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	if err := godotenv.Load(); err != nil {
		logrus.Debugln("no .env file found")
	}
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	store, err := newSessionStore()
	if err != nil {
		return err
	}
	logrus.Info("Session store backend: ", configs.GetViper().Relay.Store)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			if err := store.Close(); err != nil {
				log.Println("Error when closing session store: ", err)
			}
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapter (reply generator), optional: no api key means the
	// relay stores visitor messages without automated replies
	var generator output.ReplyGenerator
	if configs.GetViper().Generator.APIKey != "" {
		client, err := openai.NewOpenAIClientAdapter(configs.GetViper().Generator)
		if err != nil {
			logrus.Fatalf("Failed to create reply generator: %v", err)
		}
		generator = client
	} else {
		logrus.Warn("No generator api key configured, automated replies disabled")
	}
	// Application services (use cases)
	relaySrv := application.NewRelayService(store, generator, configs.GetViper().Relay.StrictDiscovery)
	directorySrv := application.NewDirectoryService(store, configs.GetViper().Relay.PreviewLength)
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(relaySrv, directorySrv, store)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	magnolia := app.Group("/v1/api")
	{
		magnolia.Post("/sessions", hdl.CreateSession)
		magnolia.Get("/sessions", hdl.ListSessions)
		magnolia.Get("/sessions/:id/messages", hdl.GetSessionMessages)
		magnolia.Post("/messages/visitor", hdl.SubmitVisitorMessage)
		magnolia.Post("/messages/staff", hdl.SubmitStaffMessage)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}
