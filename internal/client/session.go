package client

import "sync"

// Session holds the bearer token shared by every request of a Client.
type Session struct {
	mu       sync.Mutex
	token    string
	nextID   int
	onLogout map[int]func()
}

func NewSession(token string) *Session {
	return &Session{token: token, onLogout: make(map[int]func())}
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the token without notifying subscribers.
func (s *Session) Clear() {
	s.SetToken("")
}

// OnLogout registers fn to run whenever the server rejects the held token.
// The returned func removes the subscription.
func (s *Session) OnLogout(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.onLogout[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.onLogout, id)
		s.mu.Unlock()
	}
}

// expire clears a held token and notifies subscribers. A session without a
// token has nothing to expire, so anonymous 401s are silent.
func (s *Session) expire() {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	subs := make([]func(), 0, len(s.onLogout))
	for _, fn := range s.onLogout {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
