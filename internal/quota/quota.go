// Package quota enforces a daily call cap for the metered summarization API.
// The counter survives process restarts: every Record persists the state to
// a JSON file before returning, and the day window is a UTC calendar date,
// not a rolling 24h timer.
package quota

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// counter is the persisted state. Missing or corrupt state is treated as
// zero calls today, never as an error.
type counter struct {
	Date       string `json:"date"`
	CallsToday int    `json:"callsToday"`
}

// Limiter guards a daily call budget. Safe for concurrent use; the
// check-and-record pair is still only race-free within one caller, so the
// summarization stage keeps calls strictly sequential.
type Limiter struct {
	mu       sync.Mutex
	filePath string
	cap      int
	state    counter
	now      func() time.Time // overridable in tests
}

func NewLimiter(filePath string, cap int) *Limiter {
	l := &Limiter{
		filePath: filePath,
		cap:      cap,
		now:      time.Now,
	}
	l.state = l.load()
	return l
}

// CanSpend reports whether calls more requests fit under today's cap.
func (l *Limiter) CanSpend(calls int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	return l.state.CallsToday+calls <= l.cap
}

// Record adds to today's count, persists synchronously and returns the new
// total. Callers record exactly once per attempted API call, success or
// failure.
func (l *Limiter) Record(calls int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	l.state.CallsToday += calls
	if err := l.persist(); err != nil {
		log.Printf("Warning: failed to persist usage counter: %v", err)
	}
	return l.state.CallsToday
}

// Remaining returns how many calls are left today, never negative.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	if left := l.cap - l.state.CallsToday; left > 0 {
		return left
	}
	return 0
}

func (l *Limiter) today() string {
	return l.now().UTC().Format(dateLayout)
}

// rollover resets the counter when the stored date is not today. Called
// before every check or mutation, with the mutex held.
func (l *Limiter) rollover() {
	if today := l.today(); l.state.Date != today {
		log.Printf("Usage counter rollover: %q -> %q", l.state.Date, today)
		l.state = counter{Date: today}
	}
}

func (l *Limiter) load() counter {
	fresh := counter{Date: l.today()}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return fresh
	}

	var c counter
	if err := json.Unmarshal(data, &c); err != nil {
		log.Printf("Warning: corrupt usage counter file %s, starting from zero", l.filePath)
		return fresh
	}
	if c.CallsToday < 0 || c.Date == "" {
		return fresh
	}
	return c
}

func (l *Limiter) persist() error {
	data, err := json.MarshalIndent(l.state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(l.filePath, data, 0o644)
}
