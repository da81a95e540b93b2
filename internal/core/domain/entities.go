package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

// User represents a login identity (admin or customer)
type User struct {
	Username       string
	PasswordDigest string // SHA-256 hex, never plaintext
	Role           Role
	IsLocked       bool
	FailedAttempts int
	LockoutExempt  bool // Bootstrap admin only; not persisted
}

// Account represents a bank account record (separate from login identity)
type Account struct {
	AccountNumber int
	Username      string
	Balance       float64
	NationalID    string
	Phone         string
	Address       string
}

// LoanStatus represents the state of a loan request
type LoanStatus string

const (
	LoanPending  LoanStatus = "Pending"
	LoanApproved LoanStatus = "Approved"
	LoanRejected LoanStatus = "Rejected"
)

// LoanRequest represents a single loan request for a user.
// Approved and Rejected are terminal states.
type LoanRequest struct {
	Username     string
	Amount       float64
	Reason       string
	Status       LoanStatus
	InterestRate float64
}

// AppointmentStatus represents the state of an appointment
type AppointmentStatus string

const (
	AppointmentPending  AppointmentStatus = "Pending"
	AppointmentApproved AppointmentStatus = "Approved"
)

// Appointment represents an appointment request or approved appointment
type Appointment struct {
	Username string
	Service  string
	Date     string
	Time     string
	Reason   string
	Status   AppointmentStatus
}

// ServiceFeedback represents a feedback entry about a bank service
type ServiceFeedback struct {
	Username string
	Service  string
	Text     string
	Date     time.Time
}

// SignupRequest represents a queued account-opening or admin-enrollment
// request. It carries typed fields (not a serialized display string) and
// lives only inside its queue until approved or rejected.
type SignupRequest struct {
	Username       string
	FullName       string
	NationalID     string
	InitialDeposit float64
	Phone          string
	Address        string
	Role           Role
	PasswordDigest string
}

// Transaction represents a single entry in an account's append-only log
type Transaction struct {
	Time    time.Time
	Type    string
	Amount  float64
	Balance float64
}

// Transaction type tags as written to the per-account log files
const (
	TxDeposit      = "Deposit"
	TxWithdraw     = "Withdraw"
	TxTransferOut  = "Transfer Out"
	TxTransferIn   = "Transfer In"
	TxLoanApproved = "Loan Approved"
)

// Currency identifies a conversion target in the rate table
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencySAR Currency = "SAR"
)

// ExchangeRates holds conversion factors for the three fixed target
// currencies relative to the base unit (OMR)
type ExchangeRates struct {
	USD float64
	EUR float64
	SAR float64
}

// DefaultRates returns the built-in conversion factors used when no rate
// file exists yet
func DefaultRates() ExchangeRates {
	return ExchangeRates{USD: 2.60, EUR: 2.45, SAR: 9.75}
}
