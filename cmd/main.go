package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	cancelAppointmentHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/cancel_appointment"
	checkInAppointmentHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/check_in_appointment"
	createAppointmentHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/create_appointment"
	createFacilityRuleHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/create_facility_rule"
	deleteFacilityRuleHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/delete_facility_rule"
	getAppointmentHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/get_availability"
	getCarrierAppointmentsHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/get_carrier_appointments"
	getFacilityAppointmentsHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/get_facility_appointments"
	getFacilityRulesHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/get_facility_rules"
	updateAppointmentStatusHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/update_appointment_status"
	updateFacilityRuleHandler "github.com/m04kA/DMS-AppointmentService/internal/api/handlers/update_facility_rule"
	"github.com/m04kA/DMS-AppointmentService/internal/api/middleware"
	"github.com/m04kA/DMS-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/DMS-AppointmentService/internal/infra/storage/appointment"
	ruleRepo "github.com/m04kA/DMS-AppointmentService/internal/infra/storage/rule"
	carrierServiceClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/carrierservice"
	facilityServiceClient "github.com/m04kA/DMS-AppointmentService/internal/integrations/facilityservice"
	appointmentsService "github.com/m04kA/DMS-AppointmentService/internal/service/appointments"
	"github.com/m04kA/DMS-AppointmentService/internal/service/jobs"
	rulesService "github.com/m04kA/DMS-AppointmentService/internal/service/rules"
	createAppointmentUC "github.com/m04kA/DMS-AppointmentService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/m04kA/DMS-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/DMS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/DMS-AppointmentService/pkg/logger"
	"github.com/m04kA/DMS-AppointmentService/pkg/metrics"
	"github.com/m04kA/DMS-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/DMS-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting DMS-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	)
	carrierClient := carrierServiceClient.NewClient(
		cfg.CarrierService.URL,
		time.Duration(cfg.CarrierService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FacilityService=%s timeout=%ds, CarrierService=%s timeout=%ds)",
		cfg.FacilityService.URL, cfg.FacilityService.Timeout, cfg.CarrierService.URL, cfg.CarrierService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		ruleRepository        *ruleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &appointmentsService.RealTimeProvider{}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		facilityClient,
		timeProvider,
		log,
	)
	ruleSvc := rulesService.NewService(
		ruleRepository,
		facilityClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		ruleRepository,
		facilityClient,
		carrierClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		ruleRepository,
		appointmentRepository,
		facilityClient,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	checkInAppointment := checkInAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getCarrierAppointments := getCarrierAppointmentsHandler.NewHandler(appointmentSvc, log)
	getFacilityAppointments := getFacilityAppointmentsHandler.NewHandler(appointmentSvc, log)
	getFacilityRules := getFacilityRulesHandler.NewHandler(ruleSvc, log)
	createFacilityRule := createFacilityRuleHandler.NewHandler(ruleSvc, log)
	updateFacilityRule := updateFacilityRuleHandler.NewHandler(ruleSvc, log)
	deleteFacilityRule := deleteFacilityRuleHandler.NewHandler(ruleSvc, log)

	// Запускаем фоновый свипер no-show по расписанию
	noShowSweeper := jobs.NewNoShowSweeper(
		appointmentRepository,
		timeProvider,
		cfg.Jobs.NoShowGraceMinutes,
		log,
	)

	cronScheduler := cron.New()
	_, err = cronScheduler.AddFunc(cfg.Jobs.NoShowSweepSchedule, func() {
		noShowSweeper.Run(context.Background())
	})
	if err != nil {
		log.Fatal("Failed to schedule no-show sweeper: %v", err)
	}
	cronScheduler.Start()
	log.Info("No-show sweeper scheduled (%s, grace=%dm)",
		cfg.Jobs.NoShowSweepSchedule, cfg.Jobs.NoShowGraceMinutes)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступности фасилити на день
	api.HandleFunc("/facilities/{facilityId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на доки ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Отметка прибытия на ворота
	protected.HandleFunc("/appointments/{appointmentId}/check-in", checkInAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для менеджеров фасилити)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей перевозчика
	protected.HandleFunc("/carriers/{carrierId}/appointments", getCarrierAppointments.Handle).Methods(http.MethodGet)

	// --- Управление фасилити (для менеджеров) ---
	// Список записей фасилити
	protected.HandleFunc("/facilities/{facilityId}/appointments", getFacilityAppointments.Handle).Methods(http.MethodGet)

	// Правила доступности фасилити
	protected.HandleFunc("/facilities/{facilityId}/rules", getFacilityRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/facilities/{facilityId}/rules", createFacilityRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{facilityId}/rules/{ruleId}", updateFacilityRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/facilities/{facilityId}/rules/{ruleId}", deleteFacilityRule.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем планировщик фоновых задач
	cronCtx := cronScheduler.Stop()
	<-cronCtx.Done()
	log.Info("No-show sweeper stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
