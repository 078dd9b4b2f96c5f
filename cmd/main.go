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

	cancelAppointmentHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/create_appointment"
	getAdminAbsencesHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_admin_absences"
	getAdminAppointmentsHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_admin_appointments"
	getAppointmentHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_available_slots"
	getAvailableTechniciansHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_available_technicians"
	getCustomerAppointmentsHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_customer_appointments"
	getTechnicianAbsencesHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/get_technician_absences"
	rescheduleAppointmentHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/reschedule_appointment"
	reviewAbsenceHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/review_absence"
	submitAbsenceHandler "github.com/auracontrol/AC-BookingService/internal/api/handlers/submit_absence"
	"github.com/auracontrol/AC-BookingService/internal/api/middleware"
	"github.com/auracontrol/AC-BookingService/internal/config"
	"github.com/auracontrol/AC-BookingService/internal/domain"
	absenceRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/absence"
	appointmentRepo "github.com/auracontrol/AC-BookingService/internal/infra/storage/appointment"
	catalogServiceClient "github.com/auracontrol/AC-BookingService/internal/integrations/catalogservice"
	notifyServiceClient "github.com/auracontrol/AC-BookingService/internal/integrations/notifyservice"
	absencesService "github.com/auracontrol/AC-BookingService/internal/service/absences"
	appointmentsService "github.com/auracontrol/AC-BookingService/internal/service/appointments"
	createAppointmentUC "github.com/auracontrol/AC-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/auracontrol/AC-BookingService/internal/usecase/get_available_slots"
	getAvailableTechniciansUC "github.com/auracontrol/AC-BookingService/internal/usecase/get_available_technicians"
	rescheduleAppointmentUC "github.com/auracontrol/AC-BookingService/internal/usecase/reschedule_appointment"
	"github.com/auracontrol/AC-BookingService/pkg/dbmetrics"
	"github.com/auracontrol/AC-BookingService/pkg/logger"
	"github.com/auracontrol/AC-BookingService/pkg/metrics"
	"github.com/auracontrol/AC-BookingService/pkg/simpletxmanager"
	"github.com/auracontrol/AC-BookingService/pkg/txmanager"
	"github.com/auracontrol/AC-BookingService/pkg/types"
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

	log.Info("Starting AC-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Рабочий календарь салона
	schedule, err := buildSchedule(cfg.Schedule)
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}

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
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		absenceRepository     *absenceRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		absenceRepository = absenceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		absenceRepository = absenceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		notifyClient,
		txMgr,
		cfg.Booking.CancelNoticeMinutes,
		log,
	)
	absencesSvc := absencesService.NewService(
		absenceRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		absenceRepository,
		catalogClient,
		notifyClient,
		txMgr,
		schedule,
		cfg.Booking.AutoConfirm,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		absenceRepository,
		catalogClient,
		notifyClient,
		txMgr,
		schedule,
		cfg.Booking.CancelNoticeMinutes,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		absenceRepository,
		catalogClient,
		schedule,
		log,
	)
	getAvailableTechniciansUseCase := getAvailableTechniciansUC.NewUseCase(
		appointmentRepository,
		absenceRepository,
		catalogClient,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableTechnicians := getAvailableTechniciansHandler.NewHandler(getAvailableTechniciansUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAdminAppointments := getAdminAppointmentsHandler.NewHandler(appointmentsSvc, log)
	submitAbsence := submitAbsenceHandler.NewHandler(absencesSvc, log)
	getTechnicianAbsences := getTechnicianAbsencesHandler.NewHandler(absencesSvc, log)
	reviewAbsence := reviewAbsenceHandler.NewHandler(absencesSvc, log)
	getAdminAbsences := getAdminAbsencesHandler.NewHandler(absencesSvc, log)

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

	// Доступные слоты для записи на услугу
	api.HandleFunc("/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Доступные мастера на конкретное время
	api.HandleFunc("/services/{serviceId}/available-technicians",
		getAvailableTechnicians.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Предстоящие и прошедшие записи клиента
	protected.HandleFunc("/appointments/upcoming", getCustomerAppointments.HandleUpcoming).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/history", getCustomerAppointments.HandleHistory).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена и перенос записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPut)

	// Подтверждение и завершение записи мастером
	technician := protected.PathPrefix("").Subrouter()
	technician.Use(middleware.RequireRole(middleware.RoleTechnician))
	technician.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	technician.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Заявки на отсутствие (для мастеров) ---
	technician.HandleFunc("/absence-requests", submitAbsence.Handle).Methods(http.MethodPost)
	technician.HandleFunc("/technicians/me/absence-requests", getTechnicianAbsences.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(middleware.RoleAdmin))
	admin.HandleFunc("/appointments", getAdminAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/absence-requests", getAdminAbsences.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/absence-requests/{absenceId}/review", reviewAbsence.Handle).Methods(http.MethodPut)

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

// buildSchedule собирает рабочий календарь из конфигурации
func buildSchedule(cfg config.ScheduleConfig) (domain.BusinessSchedule, error) {
	openTime, err := types.NewTimeStringFromString(cfg.OpenTime)
	if err != nil {
		return domain.BusinessSchedule{}, fmt.Errorf("open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.CloseTime)
	if err != nil {
		return domain.BusinessSchedule{}, fmt.Errorf("close_time: %w", err)
	}
	breakStart, err := types.NewTimeStringFromString(cfg.BreakStart)
	if err != nil {
		return domain.BusinessSchedule{}, fmt.Errorf("break_start: %w", err)
	}
	breakEnd, err := types.NewTimeStringFromString(cfg.BreakEnd)
	if err != nil {
		return domain.BusinessSchedule{}, fmt.Errorf("break_end: %w", err)
	}

	return domain.BusinessSchedule{
		OpenTime:        openTime,
		CloseTime:       closeTime,
		BreakStart:      breakStart,
		BreakEnd:        breakEnd,
		SlotStepMinutes: cfg.SlotStepMinutes,
	}, nil
}
