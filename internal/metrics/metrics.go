package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedsFailed        int64
	ArticlesProcessed  int64
	DuplicatesFiltered int64
	AITakeaways        int64
	FallbackTakeaways  int64
	WebhooksSent       int64
	WebhooksFailed     int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed++
}

func (m *Metrics) AddArticlesProcessed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesProcessed += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementAITakeaways() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AITakeaways++
}

func (m *Metrics) IncrementFallbackTakeaways() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackTakeaways++
}

func (m *Metrics) IncrementWebhooksSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WebhooksSent++
}

func (m *Metrics) IncrementWebhooksFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WebhooksFailed++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":              m.FeedsFetched,
		"feeds_failed":               m.FeedsFailed,
		"articles_processed":         m.ArticlesProcessed,
		"duplicates_filtered":        m.DuplicatesFiltered,
		"ai_takeaways":               m.AITakeaways,
		"fallback_takeaways":         m.FallbackTakeaways,
		"webhooks_sent":              m.WebhooksSent,
		"webhooks_failed":            m.WebhooksFailed,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
