package filestore

import (
	"fmt"
	"strconv"
	"strings"

	"minibank/internal/core/domain"
)

// Load/Save pairs for every collection. Loads are tolerant: malformed lines
// (wrong field count, unparseable numbers) are skipped, never fatal.

// LoadUsers loads all login identities
func (s *Store) LoadUsers() ([]*domain.User, error) {
	lines, err := s.readLines(usersFile)
	if err != nil {
		return nil, err
	}
	var users []*domain.User
	for _, line := range lines {
		if u, ok := decodeUser(line); ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// SaveUsers rewrites the users file
func (s *Store) SaveUsers(users []*domain.User) error {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, encodeUser(u))
	}
	return s.writeLines(usersFile, lines)
}

// LoadAccounts loads all accounts and reports the highest account number
// observed, so the caller can recover the allocation high-water mark.
func (s *Store) LoadAccounts() ([]*domain.Account, int, error) {
	lines, err := s.readLines(accountsFile)
	if err != nil {
		return nil, 0, err
	}
	var accounts []*domain.Account
	highest := 0
	for _, line := range lines {
		if a, ok := decodeAccount(line); ok {
			accounts = append(accounts, a)
			if a.AccountNumber > highest {
				highest = a.AccountNumber
			}
		}
	}
	return accounts, highest, nil
}

// SaveAccounts rewrites the accounts file
func (s *Store) SaveAccounts(accounts []*domain.Account) error {
	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, encodeAccount(a))
	}
	return s.writeLines(accountsFile, lines)
}

// ExportAccounts writes the CSV account export used by admin reporting
func (s *Store) ExportAccounts(accounts []*domain.Account) (string, error) {
	lines := make([]string, 0, len(accounts)+1)
	lines = append(lines, "AccountNumber,Username,NationalID,Balance")
	for _, a := range accounts {
		lines = append(lines, fmt.Sprintf("%d,%s,%s,%s",
			a.AccountNumber, a.Username, a.NationalID, formatAmount(a.Balance)))
	}
	const exportFile = "accounts_export.txt"
	if err := s.writeLines(exportFile, lines); err != nil {
		return "", err
	}
	return s.path(exportFile), nil
}

// LoadLoanRequests loads all loan requests
func (s *Store) LoadLoanRequests() ([]*domain.LoanRequest, error) {
	lines, err := s.readLines(loanRequestsFile)
	if err != nil {
		return nil, err
	}
	var requests []*domain.LoanRequest
	for _, line := range lines {
		if r, ok := decodeLoanRequest(line); ok {
			requests = append(requests, r)
		}
	}
	return requests, nil
}

// SaveLoanRequests rewrites the loan requests file
func (s *Store) SaveLoanRequests(requests []*domain.LoanRequest) error {
	lines := make([]string, 0, len(requests))
	for _, r := range requests {
		lines = append(lines, encodeLoanRequest(r))
	}
	return s.writeLines(loanRequestsFile, lines)
}

// LoadAppointments loads pending or approved appointments
func (s *Store) LoadAppointments(approved bool) ([]*domain.Appointment, error) {
	name := appointmentsPendingFile
	if approved {
		name = appointmentsApprovedFile
	}
	lines, err := s.readLines(name)
	if err != nil {
		return nil, err
	}
	var appts []*domain.Appointment
	for _, line := range lines {
		if a, ok := decodeAppointment(line); ok {
			appts = append(appts, a)
		}
	}
	return appts, nil
}

// SaveAppointments rewrites the pending or approved appointments file,
// preserving insertion order
func (s *Store) SaveAppointments(appts []*domain.Appointment, approved bool) error {
	name := appointmentsPendingFile
	if approved {
		name = appointmentsApprovedFile
	}
	lines := make([]string, 0, len(appts))
	for _, a := range appts {
		lines = append(lines, encodeAppointment(a))
	}
	return s.writeLines(name, lines)
}

// LoadFeedbacks loads all service feedback entries
func (s *Store) LoadFeedbacks() ([]*domain.ServiceFeedback, error) {
	lines, err := s.readLines(serviceFeedbackFile)
	if err != nil {
		return nil, err
	}
	var feedbacks []*domain.ServiceFeedback
	for _, line := range lines {
		if f, ok := decodeFeedback(line); ok {
			feedbacks = append(feedbacks, f)
		}
	}
	return feedbacks, nil
}

// SaveFeedbacks rewrites the service feedback file
func (s *Store) SaveFeedbacks(feedbacks []*domain.ServiceFeedback) error {
	lines := make([]string, 0, len(feedbacks))
	for _, f := range feedbacks {
		lines = append(lines, encodeFeedback(f))
	}
	return s.writeLines(serviceFeedbackFile, lines)
}

// LoadReviews loads the complaints/reviews stack. The file stores newest
// first, so the slice is returned bottom-of-stack first.
func (s *Store) LoadReviews() ([]string, error) {
	lines, err := s.readLines(reviewsFile)
	if err != nil {
		return nil, err
	}
	// Reverse so that index 0 is the oldest entry
	reviews := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		reviews = append(reviews, lines[i])
	}
	return reviews, nil
}

// SaveReviews rewrites the reviews file, newest entry first
func (s *Store) SaveReviews(reviews []string) error {
	lines := make([]string, 0, len(reviews))
	for i := len(reviews) - 1; i >= 0; i-- {
		lines = append(lines, reviews[i])
	}
	return s.writeLines(reviewsFile, lines)
}

// LoadSignupRequests loads a signup queue in FIFO order. Admin enrollment
// requests live in their own file.
func (s *Store) LoadSignupRequests(role domain.Role) ([]*domain.SignupRequest, error) {
	lines, err := s.readLines(signupQueueFile(role))
	if err != nil {
		return nil, err
	}
	var requests []*domain.SignupRequest
	for _, line := range lines {
		if r, ok := decodeSignupRequest(line); ok {
			requests = append(requests, r)
		}
	}
	return requests, nil
}

// SaveSignupRequests rewrites a signup queue file in FIFO order
func (s *Store) SaveSignupRequests(role domain.Role, requests []*domain.SignupRequest) error {
	lines := make([]string, 0, len(requests))
	for _, r := range requests {
		lines = append(lines, encodeSignupRequest(r))
	}
	return s.writeLines(signupQueueFile(role), lines)
}

func signupQueueFile(role domain.Role) string {
	if role == domain.RoleAdmin {
		return adminRequestsFile
	}
	return signupRequestsFile
}

// LoadRates loads the exchange rate table: three lines, one factor each, in
// fixed currency order (USD, EUR, SAR). Missing file keeps the defaults.
func (s *Store) LoadRates() (domain.ExchangeRates, error) {
	rates := domain.DefaultRates()
	lines, err := s.readLines(exchangeRatesFile)
	if err != nil {
		return rates, err
	}
	if len(lines) >= 3 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64); err == nil {
			rates.USD = v
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64); err == nil {
			rates.EUR = v
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(lines[2]), 64); err == nil {
			rates.SAR = v
		}
	}
	return rates, nil
}

// SaveRates rewrites the exchange rate table
func (s *Store) SaveRates(rates domain.ExchangeRates) error {
	lines := []string{
		formatAmount(rates.USD),
		formatAmount(rates.EUR),
		formatAmount(rates.SAR),
	}
	return s.writeLines(exchangeRatesFile, lines)
}
