package filestore

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Data file names. Field order and delimiters must stay compatible with
// existing data files, so these are fixed.
const (
	accountsFile             = "accounts.txt"
	usersFile                = "users.txt"
	reviewsFile              = "reviews.txt"
	loanRequestsFile         = "loan_requests.txt"
	serviceFeedbackFile      = "service_feedback.txt"
	appointmentsPendingFile  = "appointments_pending.txt"
	appointmentsApprovedFile = "appointments_approved.txt"
	exchangeRatesFile        = "exchange_rates.txt"
	signupRequestsFile       = "signup_requests.txt"
	adminRequestsFile        = "admin_requests.txt"
	transactionsDir          = "transactions"
)

// Store persists every collection as line-oriented text files under a single
// data directory. Full-collection writes go through an atomic temp-then-rename
// so a crash mid-write never corrupts an existing file.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory layout if needed
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, transactionsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store is rooted at
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) transactionPath(accountNumber int) string {
	return filepath.Join(s.dir, transactionsDir, fmt.Sprintf("acc_%d.txt", accountNumber))
}

// readLines reads all lines from a file. A missing file is not an error; it
// simply yields no lines.
func (s *Store) readLines(name string) ([]string, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return lines, nil
}

// writeLines rewrites a whole file atomically: write to a temp file first,
// then rename over the original. On failure the in-memory state stays
// authoritative and the caller may retry the save.
func (s *Store) writeLines(name string, lines []string) error {
	target := s.path(name)
	tmp := target + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// Backup copies every data file plus the transaction logs into a timestamped
// backup directory next to the data directory. Returns the backup path.
func (s *Store) Backup() (string, error) {
	backupDir := filepath.Join(s.dir, "backup_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(filepath.Join(backupDir, transactionsDir), 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	files := []string{
		accountsFile, usersFile, reviewsFile, loanRequestsFile,
		serviceFeedbackFile, appointmentsPendingFile, appointmentsApprovedFile,
		exchangeRatesFile, signupRequestsFile, adminRequestsFile,
	}
	for _, name := range files {
		if err := copyFile(s.path(name), filepath.Join(backupDir, name)); err != nil {
			return "", err
		}
	}

	logs, err := filepath.Glob(filepath.Join(s.dir, transactionsDir, "*.txt"))
	if err != nil {
		return "", fmt.Errorf("list transaction logs: %w", err)
	}
	for _, src := range logs {
		dst := filepath.Join(backupDir, transactionsDir, filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return "", err
		}
	}

	log.Printf("✅ Data backed up to %s", backupDir)
	return backupDir, nil
}

// DeleteAll removes every data file and transaction log. The in-memory
// collections are cleared separately by their repositories.
func (s *Store) DeleteAll() error {
	files := []string{
		accountsFile, usersFile, reviewsFile, loanRequestsFile,
		serviceFeedbackFile, appointmentsPendingFile, appointmentsApprovedFile,
		exchangeRatesFile, signupRequestsFile, adminRequestsFile,
	}
	for _, name := range files {
		if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}

	logs, err := filepath.Glob(filepath.Join(s.dir, transactionsDir, "*.txt"))
	if err != nil {
		return fmt.Errorf("list transaction logs: %w", err)
	}
	for _, fn := range logs {
		if err := os.Remove(fn); err != nil {
			return fmt.Errorf("delete %s: %w", fn, err)
		}
	}
	return nil
}

// copyFile copies src to dst, skipping files that do not exist yet
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}
