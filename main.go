package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"

	"github.com/UtopicUnicorn995/teamstarAPI/db"
	"github.com/UtopicUnicorn995/teamstarAPI/handlers"
	"github.com/UtopicUnicorn995/teamstarAPI/logging"
	"github.com/UtopicUnicorn995/teamstarAPI/middleware"
	"github.com/UtopicUnicorn995/teamstarAPI/services"
	"github.com/UtopicUnicorn995/teamstarAPI/utils"
)

const requestTimeout = 10 * time.Second

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Teamstar API...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	jwtSecret := os.Getenv("JWT_SECRET")
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	if jwtSecret == "" {
		logging.Logger.Fatal("Event ID: ENV_MISSING, Description: JWT_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, mongoURI, mongoDBName)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer store.Disconnect(context.Background())
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB database %s.", mongoDBName)

	httpClient := utils.NewHTTPClient()
	notificationsBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notifications-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	notifier := services.NewNotificationService(httpClient, notificationsBreaker, os.Getenv("NOTIFICATIONS_URL"))

	jwtService := services.NewJWTService(jwtSecret)
	userService := services.NewUserService(store, jwtService)
	customerService := services.NewCustomerService(store)
	teamService := services.NewTeamService(store)
	taskService := services.NewTaskService(store, notifier)
	reportService := services.NewReportService(store)
	messageService := services.NewMessageService(store)
	eventService := services.NewEventService(store, notifier)

	loginHandler := handlers.NewLoginHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)
	reportHandler := handlers.NewReportHandler(reportService)
	messageHandler := handlers.NewMessageHandler(messageService, userService)
	eventHandler := handlers.NewEventHandler(eventService)

	r := mux.NewRouter()

	// Every route runs under a request deadline, the unauthenticated ones
	// included; login hits the store too.
	r.Use(middleware.Deadline(requestTimeout))

	// Routes reachable without a token.
	r.HandleFunc("/api/login", loginHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/createNewUser", userHandler.RegisterNewUser).Methods(http.MethodPost)
	r.HandleFunc("/api/forgotPassword", userHandler.ForgotPassword).Methods(http.MethodPut)
	r.HandleFunc("/api/findUserId", userHandler.FindUserID).Methods(http.MethodPost)
	r.HandleFunc("/api/getAppVersionCode", handlers.AppVersionCode).Methods(http.MethodGet)

	// Everything else requires a valid token.
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.Auth(jwtService))

	protected.HandleFunc("/getAllUsers", userHandler.GetAllUsers).Methods(http.MethodGet)
	protected.HandleFunc("/getUser/{user_id}", userHandler.GetUser).Methods(http.MethodGet)
	protected.HandleFunc("/getCurrentUser", userHandler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/addMember", userHandler.AddMember).Methods(http.MethodPost)
	protected.HandleFunc("/deleteUser/{user_id}", userHandler.DeleteUser).Methods(http.MethodDelete)
	protected.HandleFunc("/updateCurrentUser", userHandler.UpdateCurrentUser).Methods(http.MethodPut)
	protected.HandleFunc("/changeUserRole", teamHandler.ChangeUserRole).Methods(http.MethodPatch)

	protected.HandleFunc("/createCustomer", customerHandler.CreateCustomer).Methods(http.MethodPost)
	protected.HandleFunc("/getAllCustomers", customerHandler.GetAllCustomers).Methods(http.MethodGet)
	protected.HandleFunc("/getCustomer/{id}", customerHandler.GetCustomer).Methods(http.MethodGet)
	protected.HandleFunc("/getCreatedCustomers/{user_id}", customerHandler.GetCreatedCustomers).Methods(http.MethodGet)

	protected.HandleFunc("/createTeam", teamHandler.CreateTeam).Methods(http.MethodPost)
	protected.HandleFunc("/getCustomerTeams/{customer_id}", teamHandler.GetCustomerTeams).Methods(http.MethodGet)

	protected.HandleFunc("/createTask", taskHandler.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/getAllTasks", taskHandler.GetAllTasks).Methods(http.MethodGet)
	protected.HandleFunc("/getTask/{id}", taskHandler.GetTask).Methods(http.MethodGet)
	protected.HandleFunc("/getOrganizationTask/{customer_id}", taskHandler.GetOrganizationTasks).Methods(http.MethodGet)
	protected.HandleFunc("/getCreatedTasks/{user_id}", taskHandler.GetCreatedTasks).Methods(http.MethodGet)
	protected.HandleFunc("/getTaskByTitle", taskHandler.GetTaskByTitle).Methods(http.MethodGet)
	protected.HandleFunc("/updateTask/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	protected.HandleFunc("/deleteTask/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	protected.HandleFunc("/getAllAttachments", taskHandler.GetAllAttachments).Methods(http.MethodGet)
	protected.HandleFunc("/getAttachment/{id}", taskHandler.GetAttachment).Methods(http.MethodGet)
	protected.HandleFunc("/getTaskAttachments/{task_id}", taskHandler.GetTaskAttachments).Methods(http.MethodGet)

	protected.HandleFunc("/createReport", reportHandler.CreateReport).Methods(http.MethodPost)
	protected.HandleFunc("/getAllReports", reportHandler.GetAllReports).Methods(http.MethodGet)
	protected.HandleFunc("/getReport/{id}", reportHandler.GetReport).Methods(http.MethodGet)
	protected.HandleFunc("/getCustomerReports/{customer_id}", reportHandler.GetCustomerReports).Methods(http.MethodGet)
	protected.HandleFunc("/deleteReport/{report_id}", reportHandler.DeleteReport).Methods(http.MethodDelete)

	protected.HandleFunc("/createMessage", messageHandler.CreateMessage).Methods(http.MethodPost)
	protected.HandleFunc("/getAllMessages", messageHandler.GetAllMessages).Methods(http.MethodGet)

	protected.HandleFunc("/createEvent", eventHandler.CreateEvent).Methods(http.MethodPost)

	corsRouter := enableCORS(r)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      corsRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START, Description: Server running on port %s", port)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FAILED, Description: Server failed to start: %v", err)
	}
}
