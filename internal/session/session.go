package session

import (
	"context"
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github/chapool/wallet-session/internal/i18n"
	"github/chapool/wallet-session/internal/provider"
	"golang.org/x/text/language"
)

// Recorder observes session activity, e.g. for metrics.
type Recorder interface {
	ConnectFinished(outcome string)
	AccountsChanged()
	StateChanged(state State)
}

// Outcomes passed to Recorder.ConnectFinished besides the ErrorKind values.
const (
	OutcomeConnected  = "connected"
	OutcomeNoAccounts = "no_accounts"
	OutcomeStale      = "stale"
)

type Option func(*WalletSession)

func WithTranslator(t Translator) Option {
	return func(s *WalletSession) { s.translator = t }
}

func WithClock(c time2.Clock) Option {
	return func(s *WalletSession) { s.clock = c }
}

func WithRecorder(r Recorder) Option {
	return func(s *WalletSession) { s.recorder = r }
}

func WithID(id string) Option {
	return func(s *WalletSession) { s.id = id }
}

// WalletSession is the single owner of the connection state and the only component
// that talks to the wallet provider.
//
// All methods are safe for concurrent use. Observers are notified in the order the
// transitions were applied and must not call Connect, Disconnect, ProbeAvailability or
// OnExternalAccountsChanged synchronously from the callback.
type WalletSession struct {
	provider   provider.Provider
	translator Translator
	clock      time2.Clock
	recorder   Recorder
	id         string

	mu          sync.Mutex
	state       State
	address     string
	lastError   *ErrorInfo
	available   bool
	updatedAt   time.Time
	attempt     uint64 // bumped whenever an in-flight connect must be discarded
	unsubscribe func()
	closed      bool

	// emitMu is taken before mu is released so notifications keep transition order.
	emitMu      sync.Mutex
	observersMu sync.Mutex
	observers   map[uint64]func(Session)
	nextObs     uint64
}

// New creates a disconnected session and probes the provider right away.
func New(p provider.Provider, opts ...Option) *WalletSession {
	s := &WalletSession{
		provider:  p,
		clock:     time2.DefaultClock,
		id:        uuid.New().String(),
		state:     StateDisconnected,
		observers: make(map[uint64]func(Session)),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.translator == nil {
		s.translator = i18n.Default().For(language.English)
	}

	s.updatedAt = s.clock.Now()
	s.applyAvailabilityLocked(p.Present())

	return s
}

func (s *WalletSession) ID() string {
	return s.id
}

// ProviderName is the display name of the wallet backing the session.
func (s *WalletSession) ProviderName() string {
	return s.provider.Name()
}

// Snapshot returns the current session.
func (s *WalletSession) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every future transition. The returned function removes it.
func (s *WalletSession) Subscribe(fn func(Session)) func() {
	s.observersMu.Lock()
	defer s.observersMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.observersMu.Lock()
			defer s.observersMu.Unlock()
			delete(s.observers, id)
		})
	}
}

// Start registers the account change listener with the provider. Calling it again is a no-op.
func (s *WalletSession) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.unsubscribe != nil {
		return
	}

	s.unsubscribe = s.provider.SubscribeAccountsChanged(s.OnExternalAccountsChanged)
	log.Debug().Str("session", s.id).Str("provider", s.provider.Name()).Msg("Listening for wallet account changes")
}

// Close removes the provider listener. A connect still waiting for the wallet is discarded
// once it returns.
func (s *WalletSession) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.closed = true
	s.attempt++
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	log.Debug().Str("session", s.id).Msg("Wallet session closed")
}

// ProbeAvailability checks synchronously whether the wallet is present.
// If it is not, LastError becomes ErrorKindProviderMissing.
func (s *WalletSession) ProbeAvailability() bool {
	present := s.provider.Present()
	s.transition(func() bool {
		return s.applyAvailabilityLocked(present)
	})
	return present
}

// Connect asks the wallet to authorize an account.
//
// Wallet failures are recorded in LastError, leave the session disconnected and are also
// returned as *ErrorInfo. An empty authorization leaves the session unchanged and returns
// ErrNoAccounts. A result that arrives after Disconnect, an account revocation or Close is
// dropped and ErrStaleConnect or ErrClosed is returned.
func (s *WalletSession) Connect(ctx context.Context) (Session, error) {
	present := s.provider.Present()

	var (
		attempt   uint64
		prevState State
		prevAddr  string
		prevErr   *ErrorInfo
		result    error
	)

	snap := s.transition(func() bool {
		if s.closed {
			result = ErrClosed
			return false
		}

		changed := s.applyAvailabilityLocked(present)
		if !present {
			result = s.lastError
			return s.resetLocked(false) || changed
		}

		if s.state == StateConnecting {
			s.lastError = s.newErrorInfo(ErrorKindProviderBusy, nil)
			result = s.lastError
			return true
		}

		prevState, prevAddr, prevErr = s.state, s.address, s.lastError
		s.attempt++
		attempt = s.attempt
		s.state = StateConnecting
		s.address = ""
		return true
	})

	if result != nil {
		s.record(result)
		return snap, result
	}

	log.Debug().Str("session", s.id).Msg("Requesting wallet accounts")
	accounts, err := s.provider.RequestAccounts(ctx)

	snap = s.transition(func() bool {
		if s.closed {
			result = ErrClosed
			if s.state != StateConnecting {
				return false
			}
			s.state = StateDisconnected
			// drop a busy error raised against this attempt
			s.lastError = prevErr
			return true
		}

		if s.attempt != attempt {
			result = ErrStaleConnect
			return false
		}

		if err != nil {
			info := s.classify(err)
			s.lastError = info
			s.state = StateDisconnected
			s.address = ""
			result = info
			return true
		}

		address, ok := firstAddress(accounts)
		if !ok {
			result = ErrNoAccounts
			// a concurrent account change already moved the session on
			if s.state != StateConnecting {
				return false
			}
			s.state, s.address, s.lastError = prevState, prevAddr, prevErr
			return true
		}

		s.state = StateConnected
		s.address = address
		s.lastError = nil
		return true
	})

	s.record(result)

	switch {
	case result == nil:
		log.Info().Str("session", s.id).Str("address", snap.Address).Msg("Wallet connected")
	case err != nil:
		log.Warn().Str("session", s.id).Err(err).Msg("Wallet connection failed")
	default:
		log.Debug().Str("session", s.id).Err(result).Msg("Wallet connect finished without a new connection")
	}

	return snap, result
}

// Disconnect forgets the connected account locally. The wallet is never contacted.
func (s *WalletSession) Disconnect() Session {
	return s.transition(func() bool {
		return s.resetLocked(true)
	})
}

// OnExternalAccountsChanged applies an account change reported by the wallet.
// An empty list revokes the session like Disconnect, otherwise the first account
// becomes the connected address and LastError is cleared. It may fire in any state.
func (s *WalletSession) OnExternalAccountsChanged(accounts []string) {
	if s.recorder != nil {
		s.recorder.AccountsChanged()
	}

	if len(accounts) == 0 {
		log.Info().Str("session", s.id).Msg("Wallet revoked all accounts")
		s.Disconnect()
		return
	}

	address, ok := firstAddress(accounts)
	if !ok {
		log.Warn().Str("session", s.id).Msg("Ignoring account change with an empty address")
		return
	}

	var changed bool
	s.transition(func() bool {
		if s.closed {
			return false
		}
		if s.state == StateConnected && s.address == address && s.lastError == nil {
			return false
		}

		s.state = StateConnected
		s.address = address
		s.lastError = nil
		changed = true
		return true
	})

	if changed {
		log.Info().Str("session", s.id).Str("address", address).Msg("Wallet account changed")
	}
}

// transition applies mutate under the lock and notifies observers if it reports a change.
func (s *WalletSession) transition(mutate func() bool) Session {
	s.mu.Lock()
	if !mutate() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}

	s.updatedAt = s.clock.Now()
	snap := s.snapshotLocked()

	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	if s.recorder != nil {
		s.recorder.StateChanged(snap.State)
	}

	s.observersMu.Lock()
	observers := make([]func(Session), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.observersMu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}

	return snap
}

// resetLocked moves to Disconnected. Any connect in flight is discarded.
func (s *WalletSession) resetLocked(clearError bool) bool {
	s.attempt++

	changed := s.state != StateDisconnected || s.address != ""
	s.state = StateDisconnected
	s.address = ""

	if clearError && s.lastError != nil {
		s.lastError = nil
		changed = true
	}

	return changed
}

func (s *WalletSession) applyAvailabilityLocked(present bool) bool {
	changed := s.available != present
	s.available = present

	if !present && (s.lastError == nil || s.lastError.Kind != ErrorKindProviderMissing) {
		s.lastError = s.newErrorInfo(ErrorKindProviderMissing, nil)
		changed = true
	}

	return changed
}

func (s *WalletSession) snapshotLocked() Session {
	return Session{
		ID:                s.id,
		State:             s.state,
		Address:           s.address,
		LastError:         s.lastError,
		ProviderAvailable: s.available,
		UpdatedAt:         s.updatedAt,
	}
}

func (s *WalletSession) record(result error) {
	if s.recorder == nil {
		return
	}

	var outcome string
	switch result {
	case nil:
		outcome = OutcomeConnected
	case ErrNoAccounts:
		outcome = OutcomeNoAccounts
	case ErrStaleConnect, ErrClosed:
		outcome = OutcomeStale
	default:
		outcome = string(ErrorKindUnknown)
		if info, ok := result.(*ErrorInfo); ok {
			outcome = string(info.Kind)
		}
	}

	s.recorder.ConnectFinished(outcome)
}

// firstAddress returns the account the session adopts. Addresses are opaque, only
// emptiness is checked.
func firstAddress(accounts []string) (string, bool) {
	if len(accounts) == 0 || accounts[0] == "" {
		return "", false
	}
	return accounts[0], true
}
