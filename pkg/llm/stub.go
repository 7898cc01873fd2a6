package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Stub is a deterministic Generator for tests and offline runs. It records
// every request it receives.
type Stub struct {
	mu       sync.Mutex
	reply    []byte
	err      error
	requests []Request
}

// Succeed returns a stub whose every call yields v encoded as JSON. A []byte
// or string v is returned verbatim.
func Succeed(v any) *Stub {
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		var err error
		raw, err = json.Marshal(v)
		if err != nil {
			panic(err)
		}
	}
	return &Stub{reply: raw}
}

// Fail returns a stub whose every call fails with err.
func Fail(err error) *Stub {
	return &Stub{err: err}
}

func (s *Stub) Generate(_ context.Context, req Request) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]byte, len(s.reply))
	copy(out, s.reply)
	return out, nil
}

// Calls reports how many requests the stub has served.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, if any.
func (s *Stub) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}
