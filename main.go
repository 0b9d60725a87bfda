package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"spkbot/internal/api"
	"spkbot/internal/broadcast"
	"spkbot/internal/claims"
	"spkbot/internal/config"
	"spkbot/internal/db"
	"spkbot/internal/handlers"
	"spkbot/internal/referral"
	"spkbot/internal/session"
	"spkbot/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	store, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать базу данных: %v", err)
	}
	defer store.Close()

	botClient, err := telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev")
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	sessionManager := session.NewManager(cfg.SessionTTL)
	defer sessionManager.Close()

	claimRegistry := claims.NewRegistry()

	handlerDeps := handlers.HandlerDependencies{
		Config:         cfg,
		BotClient:      botClient,
		SessionManager: sessionManager,
		Store:          store,
		Claims:         claimRegistry,
		ClaimWorkflow:  claims.NewWorkflow(claimRegistry, store),
		Referrals:      referral.NewEngine(store),
		Broadcaster:    broadcast.NewDispatcher(botClient, cfg.BroadcastDelay),
	}

	botHandler := handlers.NewBotHandler(handlerDeps)

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()
	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Api-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	apiDeps := api.ApiDependencies{
		Config:    cfg,
		SecretKey: cfg.APISecret,
		Store:     store,
	}
	api.SetupRoutes(apiRouter, apiDeps)

	// HTTP-сервер административного API в отдельной горутине.
	go func() {
		log.Printf("Запуск HTTP-сервера API на порту %s", cfg.HTTPPort)
		if err := http.ListenAndServe(":"+cfg.HTTPPort, apiRouter); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	// Запуск самого бота
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botClient.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
		} else if update.CallbackQuery != nil {
			log.Printf("Callback от %s: %s", update.CallbackQuery.From.UserName, update.CallbackQuery.Data)
		}
		go botHandler.HandleUpdate(update)
	}
}
