// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements per-key fixed-window request counting.
//
// Windows live in a size-bounded LRU whose entries expire together with their
// window, so idle clients cost nothing after one period.
package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultSize bounds the number of tracked clients.
const DefaultSize = 10_000

type window struct {
	count   int
	resetAt time.Time
}

// Result describes the decision for one request.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter allows at most limit requests per key in each period. It is safe
// for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	windows *expirable.LRU[string, *window]
	limit   int
	period  time.Duration
	now     func() time.Time
}

// New returns a Limiter tracking up to size keys. A non-positive size means
// DefaultSize.
func New(limit int, period time.Duration, size int) *Limiter {
	if size <= 0 {
		size = DefaultSize
	}
	return &Limiter{
		windows: expirable.NewLRU[string, *window](size, nil, period),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow counts one request for key and reports whether it fits the window.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows.Get(key)
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.windows.Add(key, w)
	}
	w.count++

	res := Result{Limit: l.limit, ResetAt: w.resetAt}
	if w.count > l.limit {
		res.RetryAfter = w.resetAt.Sub(now)
		return res
	}
	res.Allowed = true
	res.Remaining = l.limit - w.count
	return res
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	return l.windows.Len()
}
