package control

import (
	"fmt"
	"strings"
	"time"

	"github.com/kidbank-dev/kidbank/internal/model"
	"github.com/kidbank-dev/kidbank/internal/store"
	"github.com/kidbank-dev/kidbank/internal/vcs"
)

// DefaultAnswer is the challenge answer used when none is configured.
const DefaultAnswer = "ice cold"

// Stats summarizes a child's audit log.
type Stats struct {
	Total     int
	Successes int
	Failures  int
	Last      *model.ControlAttempt
}

// Service implements the parental access challenge. Every attempt,
// right or wrong, lands in the audit log.
type Service struct {
	layout store.Layout
	repo   *Repository
	vcs    *vcs.Manager
	answer string
	now    func() time.Time
}

// NewService creates a control Service. An empty answer selects
// DefaultAnswer.
func NewService(layout store.Layout, versioning *vcs.Manager, answer string) *Service {
	if answer == "" {
		answer = DefaultAnswer
	}
	return &Service{
		layout: layout,
		repo:   NewRepository(layout),
		vcs:    versioning,
		answer: answer,
		now:    store.Now,
	}
}

// Verify checks an answer against the configured challenge answer and
// appends an audit row either way. Comparison is case-insensitive and
// ignores surrounding whitespace. A wrong answer is not an error, just
// a false result.
func (s *Service) Verify(child model.Child, answer string) (bool, error) {
	ok := normalize(answer) == normalize(s.answer)

	next, err := s.repo.NextID(child.Dir)
	if err != nil {
		return false, err
	}

	attempt := model.ControlAttempt{
		ID:             next,
		AttemptedValue: strings.TrimSpace(answer),
		Timestamp:      s.now(),
		Success:        ok,
	}
	if err := s.repo.Append(child.Dir, attempt); err != nil {
		return false, err
	}

	outcome := "denied"
	if ok {
		outcome = "granted"
	}
	s.vcs.Record(s.layout.ChildDir(child.Dir), store.AttemptsFile,
		fmt.Sprintf("Update control attempts: access %s (attempt %d)", outcome, next))

	return ok, nil
}

// Stats returns attempt statistics for a child.
func (s *Service) Stats(child model.Child) (Stats, error) {
	attempts, err := s.repo.List(child.Dir)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(attempts)}
	for i := range attempts {
		if attempts[i].Success {
			stats.Successes++
		} else {
			stats.Failures++
		}
	}
	if len(attempts) > 0 {
		stats.Last = &attempts[len(attempts)-1]
	}
	return stats, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
