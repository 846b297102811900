package quiz

import (
	"sync"
	"time"
)

// Pending is a question that has been presented to a chat and is waiting
// for the next reply.
type Pending struct {
	ChatID   int64
	UserID   int64
	Question *Question
	AskedAt  time.Time
}

// PendingQuestions holds at most one pending question per chat, each with a
// TTL. It replaces the implicit one-shot reply callback of the transport
// with an explicit record, which makes cancellation and restarts explicit:
// a restart loses at most the questions that were pending.
type PendingQuestions struct {
	mu     sync.Mutex
	ttl    time.Duration
	byChat map[int64]Pending
	now    func() time.Time
}

// NewPendingQuestions creates an empty registry with the given TTL.
func NewPendingQuestions(ttl time.Duration) *PendingQuestions {
	return &PendingQuestions{
		ttl:    ttl,
		byChat: make(map[int64]Pending),
		now:    time.Now,
	}
}

// Put records a pending question for a chat, replacing any previous one.
func (p *PendingQuestions) Put(chatID, userID int64, q *Question) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byChat[chatID] = Pending{
		ChatID:   chatID,
		UserID:   userID,
		Question: q,
		AskedAt:  p.now(),
	}
}

// Take removes and returns the pending question for a chat. The second
// return is false when there is none or it has already expired; either
// way the chat has no pending question afterwards.
func (p *PendingQuestions) Take(chatID int64) (Pending, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pending, ok := p.byChat[chatID]
	if !ok {
		return Pending{}, false
	}
	delete(p.byChat, chatID)
	if p.now().Sub(pending.AskedAt) > p.ttl {
		return Pending{}, false
	}
	return pending, true
}

// Drop discards the pending question for a chat, if any.
func (p *PendingQuestions) Drop(chatID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.byChat, chatID)
}

// SweepExpired removes all expired records and returns how many were
// dropped. Called periodically by the scheduler.
func (p *PendingQuestions) SweepExpired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	var dropped int
	cutoff := p.now().Add(-p.ttl)
	for chatID, pending := range p.byChat {
		if pending.AskedAt.Before(cutoff) {
			delete(p.byChat, chatID)
			dropped++
		}
	}
	return dropped
}
