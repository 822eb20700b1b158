package game

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/pscheid92/quizpulse/internal/metrics"
)

// Scoreboard owns the mutable per-player counters. The engine mutates it
// from its actor goroutine, but stats/top reads arrive on the dispatcher
// path, so all access goes through the mutex.
type Scoreboard struct {
	mu      sync.Mutex
	records map[string]*domain.UserRecord
	repo    domain.UserRepository
}

// NewScoreboard seeds the board with previously persisted records.
// seed may be nil.
func NewScoreboard(repo domain.UserRepository, seed map[string]*domain.UserRecord) *Scoreboard {
	records := make(map[string]*domain.UserRecord, len(seed))
	for name, rec := range seed {
		cp := *rec
		cp.Name = name
		records[name] = &cp
	}
	return &Scoreboard{records: records, repo: repo}
}

// RecordCorrect credits a correct answer and returns the new point total.
func (s *Scoreboard) RecordCorrect(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.getOrCreate(name)
	rec.Points++
	rec.CorrectAnswers++
	rec.TotalAnswers++
	return rec.Points
}

// RecordIncorrect counts a failed attempt without awarding anything.
func (s *Scoreboard) RecordIncorrect(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(name).TotalAnswers++
}

// RecordStarted bumps the quizzes-started counter.
func (s *Scoreboard) RecordStarted(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(name).QuizzesStarted++
}

// RecordStopped bumps the quizzes-stopped counter.
func (s *Scoreboard) RecordStopped(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(name).QuizzesStopped++
}

// Lookup returns a copy of the record for name.
func (s *Scoreboard) Lookup(name string) (domain.UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[name]
	if !ok {
		return domain.UserRecord{}, false
	}
	return *rec, true
}

// Top returns up to n record copies ranked by points, name as tiebreak.
func (s *Scoreboard) Top(n int) []domain.UserRecord {
	s.mu.Lock()
	ranked := make([]domain.UserRecord, 0, len(s.records))
	for _, rec := range s.records {
		ranked = append(ranked, *rec)
	}
	s.mu.Unlock()

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Name < ranked[j].Name
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Persist flushes all records to the repository. Best-effort: failures are
// logged and counted, never propagated into the game core.
func (s *Scoreboard) Persist(ctx context.Context) {
	s.mu.Lock()
	snapshot := make(map[string]*domain.UserRecord, len(s.records))
	for name, rec := range s.records {
		cp := *rec
		snapshot[name] = &cp
	}
	s.mu.Unlock()

	if err := s.repo.SaveAll(ctx, snapshot); err != nil {
		metrics.PersistOpsTotal.WithLabelValues("error").Inc()
		slog.Warn("Failed to persist scores", "records", len(snapshot), "error", err)
		return
	}
	metrics.PersistOpsTotal.WithLabelValues("ok").Inc()
}

func (s *Scoreboard) getOrCreate(name string) *domain.UserRecord {
	rec, ok := s.records[name]
	if !ok {
		rec = &domain.UserRecord{Name: name}
		s.records[name] = rec
	}
	return rec
}
