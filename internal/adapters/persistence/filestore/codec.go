package filestore

import (
	"strconv"
	"strings"
	"time"

	"minibank/internal/core/domain"
)

// Timestamp layouts. New records are written with timeLayout; parsing also
// accepts the layouts older data files were written with.
const timeLayout = "1/2/2006 3:04:05 PM"

var parseLayouts = []string{
	timeLayout,
	"01/02/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatAmount renders a float the way the data files expect: no exponent,
// no trailing zeros
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatBool matches the capitalized booleans found in existing user files
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// --- users.txt: username,passwordDigestHex,role,isLocked,failedAttempts ---

func encodeUser(u *domain.User) string {
	return strings.Join([]string{
		u.Username,
		u.PasswordDigest,
		string(u.Role),
		formatBool(u.IsLocked),
		strconv.Itoa(u.FailedAttempts),
	}, ",")
}

func decodeUser(line string) (*domain.User, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return nil, false
	}
	u := &domain.User{
		Username:       parts[0],
		PasswordDigest: parts[1],
		Role:           domain.Role(parts[2]),
	}
	if len(parts) > 3 {
		locked, _ := strconv.ParseBool(strings.ToLower(parts[3]))
		u.IsLocked = locked
	}
	if len(parts) > 4 {
		u.FailedAttempts, _ = strconv.Atoi(parts[4])
	}
	return u, true
}

// --- accounts.txt: accountNumber,username,balance,nationalID,phone,address ---

func encodeAccount(a *domain.Account) string {
	return strings.Join([]string{
		strconv.Itoa(a.AccountNumber),
		a.Username,
		formatAmount(a.Balance),
		a.NationalID,
		a.Phone,
		a.Address,
	}, ",")
}

func decodeAccount(line string) (*domain.Account, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 6 {
		return nil, false
	}
	number, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, false
	}
	balance, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, false
	}
	return &domain.Account{
		AccountNumber: number,
		Username:      parts[1],
		Balance:       balance,
		NationalID:    parts[3],
		Phone:         parts[4],
		Address:       parts[5],
	}, true
}

// --- loan_requests.txt: username|amount|reason|status|interestRate ---

func encodeLoanRequest(r *domain.LoanRequest) string {
	return strings.Join([]string{
		r.Username,
		formatAmount(r.Amount),
		r.Reason,
		string(r.Status),
		formatAmount(r.InterestRate),
	}, "|")
}

func decodeLoanRequest(line string) (*domain.LoanRequest, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 5 {
		return nil, false
	}
	amount, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, false
	}
	rate, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, false
	}
	return &domain.LoanRequest{
		Username:     parts[0],
		Amount:       amount,
		Reason:       parts[2],
		Status:       domain.LoanStatus(parts[3]),
		InterestRate: rate,
	}, true
}

// --- appointments_*.txt: username|service|date|time|reason|status ---

func encodeAppointment(a *domain.Appointment) string {
	return strings.Join([]string{
		a.Username,
		a.Service,
		a.Date,
		a.Time,
		a.Reason,
		string(a.Status),
	}, "|")
}

func decodeAppointment(line string) (*domain.Appointment, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 6 {
		return nil, false
	}
	return &domain.Appointment{
		Username: parts[0],
		Service:  parts[1],
		Date:     parts[2],
		Time:     parts[3],
		Reason:   parts[4],
		Status:   domain.AppointmentStatus(parts[5]),
	}, true
}

// --- service_feedback.txt: username|service|text|timestamp ---

func encodeFeedback(f *domain.ServiceFeedback) string {
	return strings.Join([]string{
		f.Username,
		f.Service,
		f.Text,
		f.Date.Format(timeLayout),
	}, "|")
}

func decodeFeedback(line string) (*domain.ServiceFeedback, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return nil, false
	}
	f := &domain.ServiceFeedback{
		Username: parts[0],
		Service:  parts[1],
		Text:     parts[2],
	}
	if t, ok := parseTime(parts[3]); ok {
		f.Date = t
	} else {
		f.Date = time.Now()
	}
	return f, true
}

// --- signup_requests.txt / admin_requests.txt:
//     username|fullName|nationalID|initialDeposit|phone|address|role|passwordDigest ---

func encodeSignupRequest(r *domain.SignupRequest) string {
	return strings.Join([]string{
		r.Username,
		r.FullName,
		r.NationalID,
		formatAmount(r.InitialDeposit),
		r.Phone,
		r.Address,
		string(r.Role),
		r.PasswordDigest,
	}, "|")
}

func decodeSignupRequest(line string) (*domain.SignupRequest, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 8 {
		return nil, false
	}
	deposit, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, false
	}
	return &domain.SignupRequest{
		Username:       parts[0],
		FullName:       parts[1],
		NationalID:     parts[2],
		InitialDeposit: deposit,
		Phone:          parts[4],
		Address:        parts[5],
		Role:           domain.Role(parts[6]),
		PasswordDigest: parts[7],
	}, true
}

// --- transactions/acc_<n>.txt:
//     timestamp | type | Amount: amt | Balance: bal ---

func encodeTransaction(t *domain.Transaction) string {
	return t.Time.Format(timeLayout) +
		" | " + t.Type +
		" | Amount: " + formatAmount(t.Amount) +
		" | Balance: " + formatAmount(t.Balance)
}

func decodeTransaction(line string) (*domain.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return nil, false
	}
	when, ok := parseTime(parts[0])
	if !ok {
		return nil, false
	}
	amountStr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[2]), "Amount:"))
	balanceStr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[3]), "Balance:"))
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		return nil, false
	}
	balance, err := strconv.ParseFloat(balanceStr, 64)
	if err != nil {
		return nil, false
	}
	return &domain.Transaction{
		Time:    when,
		Type:    strings.TrimSpace(parts[1]),
		Amount:  amount,
		Balance: balance,
	}, true
}
