package services

import (
	"errors"
	"log"

	"minibank/internal/adapters/persistence/repositories"
	"minibank/internal/core/domain"
	"minibank/internal/pkg/password"
)

var (
	ErrUsernameTaken = errors.New("username is already taken or pending approval")
	ErrQueueEmpty    = errors.New("no pending requests in the queue")
)

// Enrolled administrators all start from the same well-known password
// and are expected to change it on first login.
const defaultAdminPassword = "admin123"

// SignupService owns the two enrollment queues. Customer requests carry
// an applicant-chosen password and an initial deposit; admin enrollments
// are created by an existing administrator and get the default password
// at approval time. Requests leave the queues strictly in FIFO order.
type SignupService struct {
	customers *repositories.SignupQueueRepository
	admins    *repositories.SignupQueueRepository
	users     *repositories.UserRepository
	accounts  *repositories.AccountRepository
	account   *AccountService
}

func NewSignupService(
	customers *repositories.SignupQueueRepository,
	admins *repositories.SignupQueueRepository,
	users *repositories.UserRepository,
	accounts *repositories.AccountRepository,
	account *AccountService,
) *SignupService {
	return &SignupService{
		customers: customers,
		admins:    admins,
		users:     users,
		accounts:  accounts,
		account:   account,
	}
}

// SubmitCustomer queues an account-opening request after the uniqueness
// gates. The national ID must be unused by any account or any request
// still waiting in either queue; usernames likewise.
func (s *SignupService) SubmitCustomer(req *domain.SignupRequest, plainPassword string) error {
	if err := password.Validate(plainPassword); err != nil {
		return err
	}
	if req.Username == "" || req.NationalID == "" {
		return domain.ErrInvalidInput
	}
	if req.InitialDeposit < 0 {
		return domain.ErrInvalidAmount
	}

	if s.usernameTaken(req.Username) {
		return ErrUsernameTaken
	}
	if s.nationalIDTaken(req.NationalID) {
		return domain.ErrDuplicateNationalID
	}

	req.PasswordDigest = password.Digest(plainPassword)
	return s.customers.Enqueue(req)
}

// SubmitAdmin queues an administrator enrollment. Admins hold no ledger
// account, so the national ID gate does not apply; the username gate does.
func (s *SignupService) SubmitAdmin(req *domain.SignupRequest) error {
	if req.Username == "" {
		return domain.ErrInvalidInput
	}
	if s.usernameTaken(req.Username) {
		return ErrUsernameTaken
	}

	return s.admins.Enqueue(req)
}

// Next returns the head of the queue for a role without removing it
func (s *SignupService) Next(role domain.Role) (*domain.SignupRequest, error) {
	req, ok := s.queueFor(role).Peek()
	if !ok {
		return nil, ErrQueueEmpty
	}
	return req, nil
}

// Pending lists every waiting request for a role, oldest first
func (s *SignupService) Pending(role domain.Role) []*domain.SignupRequest {
	return s.queueFor(role).All()
}

// ApproveNext removes the head of the queue and provisions it.
//
// Customer approval mints the next account number, opens the ledger
// account with the initial deposit, and creates the login identity.
// Admin approval creates the identity with the default password.
func (s *SignupService) ApproveNext(role domain.Role) (*domain.SignupRequest, error) {
	queue := s.queueFor(role)

	req, err := queue.Dequeue()
	if err != nil {
		return nil, ErrQueueEmpty
	}

	if role == domain.RoleAdmin {
		user := &domain.User{
			Username:       req.Username,
			PasswordDigest: password.Digest(defaultAdminPassword),
			Role:           domain.RoleAdmin,
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		log.Printf("✅ Administrator enrolled: %s", req.Username)
		return req, nil
	}

	number := s.accounts.NextNumber()
	acc := &domain.Account{
		AccountNumber: number,
		Username:      req.Username,
		Balance:       req.InitialDeposit,
		NationalID:    req.NationalID,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := s.accounts.Create(acc); err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       req.Username,
		PasswordDigest: req.PasswordDigest,
		Role:           domain.RoleCustomer,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if req.InitialDeposit > 0 {
		s.account.record(number, domain.TxDeposit, req.InitialDeposit, acc.Balance)
	}

	log.Printf("✅ Account opened: %d for %s", number, req.Username)
	return req, nil
}

// RejectNext removes and discards the head of the queue
func (s *SignupService) RejectNext(role domain.Role) (*domain.SignupRequest, error) {
	req, err := s.queueFor(role).Dequeue()
	if err != nil {
		return nil, ErrQueueEmpty
	}
	return req, nil
}

// StatusFor reports whether a username is still waiting in either queue
func (s *SignupService) StatusFor(username string) (*domain.SignupRequest, bool) {
	if req, ok := s.customers.FindByUsername(username); ok {
		return req, true
	}
	if req, ok := s.admins.FindByUsername(username); ok {
		return req, true
	}
	return nil, false
}

func (s *SignupService) queueFor(role domain.Role) *repositories.SignupQueueRepository {
	if role == domain.RoleAdmin {
		return s.admins
	}
	return s.customers
}

func (s *SignupService) usernameTaken(username string) bool {
	return s.users.ExistsByUsername(username) ||
		s.customers.HasUsername(username) ||
		s.admins.HasUsername(username)
}

func (s *SignupService) nationalIDTaken(nationalID string) bool {
	return s.accounts.NationalIDExists(nationalID) ||
		s.customers.HasNationalID(nationalID) ||
		s.admins.HasNationalID(nationalID)
}
