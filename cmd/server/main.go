package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/phishguard/phishsim-backend/internal/controller"
	"github.com/phishguard/phishsim-backend/internal/db"
	"github.com/phishguard/phishsim-backend/internal/handler"
	"github.com/phishguard/phishsim-backend/internal/metrics"
	"github.com/phishguard/phishsim-backend/internal/queue"
	"github.com/phishguard/phishsim-backend/internal/repository"
	"github.com/phishguard/phishsim-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()
	q := queue.NewInMemoryQueue()

	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	targetRepo := &repository.TargetRepository{DB: db.DB}
	employeeRepo := &repository.EmployeeRepository{DB: db.DB}
	companyRepo := &repository.CompanyRepository{DB: db.DB}
	queue.StartSimulatedSendSubscriber(q, targetRepo)

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		TargetRepo:   targetRepo,
		EmployeeRepo: employeeRepo,
		CompanyRepo:  companyRepo,
		Queue:        q,
		Thresholds:   metrics.CampaignThresholds,
	}

	// Executive reports classify risk with wider bands than campaign screens.
	reportService := &service.ReportService{
		CampaignRepo: campaignRepo,
		TargetRepo:   targetRepo,
		EmployeeRepo: employeeRepo,
		CompanyRepo:  companyRepo,
		Thresholds:   metrics.ExecutiveThresholds,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

	reportController := &controller.ReportController{
		ReportService: reportService,
	}

	campaignHandler := &handler.CampaignHandler{
		Repo:    campaignRepo,
		Service: campaignService,
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignHandler.GetCampaignHandlerWithStats)
	r.Post("/campaigns/{id}/start", campaignController.StartCampaign)
	r.Post("/campaigns/{id}/pause", campaignController.PauseCampaign)
	r.Post("/campaigns/{id}/resume", campaignController.ResumeCampaign)
	r.Post("/campaigns/{id}/stop", campaignController.StopCampaign)
	r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)
	r.Post("/campaigns/{id}/personalized-preview", campaignController.PersonalizedPreview)

	// Simulated engagement events
	r.Post("/targets/{id}/events", campaignController.RecordTargetEvent)

	// Report routes
	r.Get("/reports/company/{companyID}", reportController.CompanyReport)
	r.Get("/reports/company/{companyID}/employees", reportController.EmployeeReports)
	r.Get("/reports/company/{companyID}/trends", reportController.MonthlyTrends)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
