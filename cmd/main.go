package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/xelyqor/xelyqor-backend/internal/data/db"
	"github.com/xelyqor/xelyqor-backend/internal/data/repos"
	"github.com/xelyqor/xelyqor-backend/internal/http/handlers"
	"github.com/xelyqor/xelyqor-backend/internal/observability"
	"github.com/xelyqor/xelyqor-backend/internal/platform/envutil"
	"github.com/xelyqor/xelyqor-backend/internal/platform/groq"
	"github.com/xelyqor/xelyqor-backend/internal/platform/logger"
	"github.com/xelyqor/xelyqor-backend/internal/server"
	"github.com/xelyqor/xelyqor-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(envutil.Str("LOG_MODE", "dev"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "xelyqor-backend",
		Environment: envutil.Str("APP_ENV", "dev"),
		Version:     envutil.Str("APP_VERSION", "dev"),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(shutdownCtx)
		}()
	}
	observability.Set(observability.NewMetrics(log))

	postgres, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("failed to connect to postgres", "error", err)
	}
	if err := db.AutoMigrateAll(postgres.DB()); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	subjectRepo := repos.NewSubjectRepo(postgres.DB(), log)
	lectureRepo := repos.NewLectureRepo(postgres.DB(), log)
	materialsRepo := repos.NewStudyMaterialsRepo(postgres.DB(), log)
	settingsRepo := repos.NewUserSettingsRepo(postgres.DB(), log)

	aiClient, err := groq.NewClient(log)
	if err != nil {
		log.Fatal("failed to init groq client", "error", err)
	}

	extractor := services.NewTextExtractor(log)
	youtube := services.NewYouTubeService(log)
	recording := services.NewRecordingService(log, aiClient)
	generation := services.NewGenerationService(log, aiClient, lectureRepo, materialsRepo)
	studyTools := services.NewStudyToolsService(log, aiClient, lectureRepo, materialsRepo)
	chat := services.NewChatService(log, aiClient, lectureRepo)
	solver := services.NewSolverService(log, aiClient, extractor)

	router := server.NewRouter(server.RouterConfig{
		Log:      log,
		Health:   handlers.NewHealthHandler(),
		Subject:  handlers.NewSubjectHandler(log, subjectRepo, studyTools, extractor),
		Lecture:  handlers.NewLectureHandler(log, lectureRepo, generation, youtube, extractor, recording),
		Material: handlers.NewMaterialHandler(log, materialsRepo, generation),
		Chat:     handlers.NewChatHandler(log, chat),
		Solver:   handlers.NewSolverHandler(log, solver),
		Concept:  handlers.NewConceptHandler(log, studyTools),
		Settings: handlers.NewSettingsHandler(log, settingsRepo),
	})

	port := envutil.Str("PORT", "8000")
	log.Info("starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
