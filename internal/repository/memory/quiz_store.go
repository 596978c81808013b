package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// QuizAttempt is the server-side half of a generated quiz: the answer key
// never leaves the process.
type QuizAttempt struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Skill     string
	Answers   []int
	CreatedAt time.Time
}

type QuizStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewQuizStore(ttl time.Duration) *QuizStore {
	return &QuizStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *QuizStore) Save(attempt *QuizAttempt) {
	s.cache.Set(attempt.ID.String(), attempt, cache.DefaultExpiration)
}

func (s *QuizStore) Get(id uuid.UUID) (*QuizAttempt, bool) {
	if x, found := s.cache.Get(id.String()); found {
		return x.(*QuizAttempt), true
	}
	return nil, false
}

// Take returns the attempt and removes it, so each quiz is graded once.
func (s *QuizStore) Take(id uuid.UUID) (*QuizAttempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.Get(id)
	if ok {
		s.cache.Delete(id.String())
	}
	return attempt, ok
}
