package tests

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jobconnect/pipeline/internal/config"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/jobconnect/pipeline/internal/repositories"
	"github.com/jobconnect/pipeline/internal/services"
	log "github.com/sirupsen/logrus"
)

var (
	dbCtx *repositories.DbContext
	bus   EventBus.Bus

	usersRepo         *repositories.Users
	jobsRepo          *repositories.Jobs
	applicationsRepo  *repositories.Applications
	stagesRepo        *repositories.Stages
	notificationsRepo *repositories.Notifications
	alertsRepo        *repositories.Alerts
	savedRepo         *repositories.SavedCandidates

	applicationsService  *services.ApplicationsService
	stagesService        *services.StagesService
	transitionsService   *services.TransitionsService
	notificationsService *services.NotificationsService
	alertsService        *services.AlertsService
	jobsService          *services.JobsService
)

var nextSeed int64

func upEnvironment() {

	os.Setenv("DB_CONNECTION_STRING", "testdatabase.db")
	cfg := config.Get()

	var err error
	dbCtx, err = repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("could not create db context: %s", err)
	}

	err = dbCtx.Migrate()
	if err != nil {
		log.Fatalf("could not migrate db: %s", err)
	}

	txm := repositories.NewTxManager(dbCtx.DB)
	usersRepo = repositories.NewUsersRepository(dbCtx.DB)
	jobsRepo = repositories.NewJobsRepository(dbCtx.DB)
	applicationsRepo = repositories.NewApplicationsRepository(dbCtx.DB)
	stagesRepo = repositories.NewStagesRepository(dbCtx.DB)
	notificationsRepo = repositories.NewNotificationsRepository(dbCtx.DB)
	alertsRepo = repositories.NewAlertsRepository(dbCtx.DB)
	savedRepo = repositories.NewSavedCandidatesRepository(dbCtx.DB)

	bus = EventBus.New()

	applicationsService = services.NewApplicationsService(bus, txm, applicationsRepo, stagesRepo,
		jobsRepo, usersRepo, notificationsRepo, savedRepo)
	stagesService = services.NewStagesService(txm, stagesRepo, applicationsRepo, jobsRepo)
	transitionsService = services.NewTransitionsService(bus, txm, applicationsRepo, stagesRepo,
		stagesService, jobsRepo, usersRepo, notificationsRepo)
	notificationsService = services.NewNotificationsService(notificationsRepo)
	alertsService = services.NewAlertsService(alertsRepo, jobsRepo, usersRepo)
	jobsService = services.NewJobsService(bus, txm, jobsRepo, usersRepo, notificationsRepo, noopInvalidator{})

	_, err = services.NewAlertDispatcher(bus, txm, alertsRepo, jobsRepo, notificationsRepo)
	if err != nil {
		log.Fatalf("could not create alert dispatcher: %s", err)
	}
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(id int64) {}

func downEnvironment() {
	_ = dbCtx.Close()
	_ = os.Remove("testdatabase.db")
}

func TestMain(m *testing.M) {

	err := os.Chdir("../") //project root to resolve correctly relative paths in code
	if err != nil {
		log.Fatal(err)
	}

	upEnvironment()

	code := m.Run()

	downEnvironment()

	os.Exit(code)
}

func seedUser(t *testing.T, role models.Role) *models.User {
	t.Helper()
	nextSeed++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", nextSeed),
		FullName: fmt.Sprintf("User %d", nextSeed),
		Role:     role,
	}
	if err := usersRepo.Add(context.Background(), user); err != nil {
		t.Fatalf("could not seed user: %s", err)
	}
	return user
}

func seedJob(t *testing.T, employerID int64, status models.JobStatus) *models.Job {
	t.Helper()
	nextSeed++

	job := &models.Job{
		EmployerID:     employerID,
		Title:          fmt.Sprintf("Go Developer %d", nextSeed),
		Description:    "Backend development with Go",
		Location:       "Remote",
		Status:         status,
		ExpirationDate: time.Now().AddDate(0, 1, 0),
	}
	if status == models.JobActive {
		job.PostedAt = time.Now()
	}
	if err := jobsRepo.Add(context.Background(), job); err != nil {
		t.Fatalf("could not seed job: %s", err)
	}
	return job
}

func seedActiveJob(t *testing.T) (employer *models.User, job *models.Job) {
	t.Helper()
	employer = seedUser(t, models.RoleEmployer)
	job = seedJob(t, employer.ID, models.JobActive)
	return employer, job
}
