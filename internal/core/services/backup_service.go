package services

import (
	"log"

	"github.com/robfig/cron/v3"

	"minibank/internal/adapters/persistence/filestore"
	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/config"
)

// BackupService snapshots the data directory on demand and on a cron
// schedule, and owns the delete-all reset.
type BackupService struct {
	store        *filestore.Store
	cron         *cron.Cron
	users        *repositories.UserRepository
	accounts     *repositories.AccountRepository
	loans        *repositories.LoanRepository
	customers    *repositories.SignupQueueRepository
	admins       *repositories.SignupQueueRepository
	appointments *repositories.AppointmentRepository
	feedbacks    *repositories.FeedbackRepository
	reviews      *repositories.ReviewRepository
	rates        *repositories.RateRepository
	auth         *AuthService
}

func NewBackupService(
	store *filestore.Store,
	users *repositories.UserRepository,
	accounts *repositories.AccountRepository,
	loans *repositories.LoanRepository,
	customers *repositories.SignupQueueRepository,
	admins *repositories.SignupQueueRepository,
	appointments *repositories.AppointmentRepository,
	feedbacks *repositories.FeedbackRepository,
	reviews *repositories.ReviewRepository,
	rates *repositories.RateRepository,
	auth *AuthService,
) *BackupService {
	return &BackupService{
		store:        store,
		cron:         cron.New(),
		users:        users,
		accounts:     accounts,
		loans:        loans,
		customers:    customers,
		admins:       admins,
		appointments: appointments,
		feedbacks:    feedbacks,
		reviews:      reviews,
		rates:        rates,
		auth:         auth,
	}
}

// Start registers the scheduled backup job and starts the scheduler
func (s *BackupService) Start() error {
	if !config.AppConfig.Backup.Enabled {
		log.Println("⏸️ Scheduled backups disabled")
		return nil
	}

	_, err := s.cron.AddFunc(config.AppConfig.Backup.Schedule, func() {
		path, err := s.Backup()
		if err != nil {
			log.Printf("❌ Scheduled backup failed: %v", err)
			return
		}
		log.Printf("💾 Scheduled backup written: %s", path)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 Backup scheduler started [%s]", config.AppConfig.Backup.Schedule)
	return nil
}

// Stop halts the scheduler
func (s *BackupService) Stop() {
	s.cron.Stop()
}

// Backup copies every data file into a timestamped snapshot directory
// and returns its path
func (s *BackupService) Backup() (string, error) {
	return s.store.Backup()
}

// DeleteAll wipes every data file and resets all in-memory collections.
// The bootstrap administrator is re-seeded so the system stays usable.
// Irreversible, so it requires explicit confirmation.
func (s *BackupService) DeleteAll(confirm bool) error {
	if !confirm {
		return ErrConfirmationNeeded
	}

	if err := s.store.DeleteAll(); err != nil {
		return err
	}

	s.users.Reset()
	s.accounts.Reset()
	s.loans.Reset()
	s.customers.Reset()
	s.admins.Reset()
	s.appointments.Reset()
	s.feedbacks.Reset()
	s.reviews.Reset()
	s.rates.Reset()

	if err := s.auth.EnsureBootstrapAdmin(); err != nil {
		return err
	}

	log.Println("🗑️ All data deleted and reset")
	return nil
}
