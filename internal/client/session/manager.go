package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olivierdt/skyjo-cli/internal/client/api"
	"github.com/olivierdt/skyjo-cli/internal/client/storage"
	"github.com/olivierdt/skyjo-cli/internal/dbx"
	"github.com/olivierdt/skyjo-cli/internal/logging"
)

// User-facing outcomes of the auth operations. Server-supplied error text
// takes precedence over the generic fallbacks when available.
const (
	msgLoginSuccess    = "Signed in successfully!"
	msgLoginFailed     = "Something went wrong while signing in."
	msgRegisterSuccess = "Account created successfully!"
	msgRegisterFailed  = "Something went wrong while creating your account."
	msgLogoutSuccess   = "Signed out successfully!"
)

// RegisterValues carries the raw registration form values, already validated
// by the form layer. The manager forwards them to the server untouched.
type RegisterValues struct {
	Firstname       string
	Lastname        string
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Manager mediates every transition of the session, token, message and
// loading state. It is the only component that talks to the auth API or to
// durable storage.
//
// Contract:
//   - Initialize: verify a stored token once at startup; no token, no call.
//   - Login/Register: credential exchange; true on success, false otherwise.
//     Failures never escape as errors; they settle into a status message.
//   - Logout: synchronous, never fails.
//   - Operations honor context cancellation: a canceled context suppresses
//     the late session/message update, but loading is always cleared.
//
// Operations are not serialized against each other; concurrent calls race
// and the last committed transition wins. Callers are expected to disable
// submit paths while Loading is set.
type Manager struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	mu        sync.Mutex
	state     State
	subs      map[int]func(State)
	nextSubID int

	onAuthenticated []func(User)
	onLoggedOut     []func()
}

// NewManager constructs a Manager bound to the given API client and local DB.
func NewManager(client api.Client, db *sql.DB, log logging.Logger) *Manager {
	return &Manager{
		client: client,
		db:     db,
		log:    log,
		state:  State{Status: StatusUnknown},
		subs:   make(map[int]func(State)),
	}
}

// State returns a snapshot of the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// IsAuthenticated reports whether a session is currently present.
func (m *Manager) IsAuthenticated() bool {
	return m.State().IsAuthenticated()
}

// Token returns the persisted bearer token, or "" when none is stored.
// Collaborators that need the credential (the game session handshake) read
// it here; the manager is the sole owner of the storage slot.
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.tokens().Get(ctx)
}

// Subscribe registers fn to receive a state snapshot after every committed
// transition. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// OnAuthenticated registers fn to be invoked whenever a session is
// established (login, register, or startup verification).
func (m *Manager) OnAuthenticated(fn func(User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onAuthenticated = append(m.onAuthenticated, fn)
}

// OnLoggedOut registers fn to be invoked whenever the session is cleared
// by an explicit logout.
func (m *Manager) OnLoggedOut(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLoggedOut = append(m.onLoggedOut, fn)
}

// Initialize runs once at startup. If a token is stored, it is exchanged for
// a fresh session; on any failure the token is deleted and the session ends
// anonymous. With no stored token it settles immediately without a network
// call. Loading is set for the whole duration of the verification.
func (m *Manager) Initialize(ctx context.Context) {
	token, err := m.tokens().Get(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read stored token", "error", err)
	}

	if token == "" {
		m.recordAudit(ctx, storage.ReasonNoToken, "")
		m.commit(func(s *State) {
			s.Status = StatusAnonymous
			s.Loading = false
		})
		return
	}

	m.commit(func(s *State) { s.Loading = true })

	verified, err := m.client.Verify(ctx, token)
	if ctx.Err() != nil {
		m.commit(func(s *State) { s.Loading = false })
		return
	}
	if err != nil {
		m.log.Warn(ctx, "stored token rejected", "error", err)
		if derr := m.tokens().Delete(ctx); derr != nil {
			m.log.Error(ctx, "failed to delete stored token", "error", derr)
		}
		m.recordAudit(ctx, storage.ReasonVerifyRejected, "")
		m.commit(func(s *State) {
			s.Status = StatusAnonymous
			s.User = nil
			s.Loading = false
		})
		return
	}

	user := User{ID: verified.ID, Username: verified.Username}
	m.recordAudit(ctx, storage.ReasonVerifyOK, user.Username)
	m.commit(func(s *State) {
		s.Status = StatusAuthenticated
		s.User = &user
		s.Loading = false
	})
	m.fireAuthenticated(user)
}

// Login exchanges email/password for a session. On success the token is
// persisted and true is returned; on rejection or transport failure the
// session is left untouched, an error message is set, and false is returned.
func (m *Manager) Login(ctx context.Context, email string, password string) bool {
	m.commit(func(s *State) { s.Loading = true })

	creds, err := m.client.Login(ctx, email, password)
	if ctx.Err() != nil {
		m.commit(func(s *State) { s.Loading = false })
		return false
	}
	if err != nil {
		m.log.Warn(ctx, "login failed", "error", err)
		m.failWith(err, msgLoginFailed)
		return false
	}

	if err := m.establish(ctx, creds, storage.ReasonLogin, msgLoginSuccess); err != nil {
		m.log.Error(ctx, "failed to persist credentials", "error", err)
		m.failWith(err, msgLoginFailed)
		return false
	}
	return true
}

// Register creates an account and, like Login, establishes a session on
// success. Field-level validation is the form layer's responsibility.
func (m *Manager) Register(ctx context.Context, values RegisterValues) bool {
	m.commit(func(s *State) { s.Loading = true })

	creds, err := m.client.Register(ctx, api.RegisterRequest{
		Firstname:       values.Firstname,
		Lastname:        values.Lastname,
		Username:        values.Username,
		Email:           values.Email,
		Password:        values.Password,
		PasswordConfirm: values.PasswordConfirm,
	})
	if ctx.Err() != nil {
		m.commit(func(s *State) { s.Loading = false })
		return false
	}
	if err != nil {
		m.log.Warn(ctx, "registration failed", "error", err)
		m.failWith(err, msgRegisterFailed)
		return false
	}

	if err := m.establish(ctx, creds, storage.ReasonRegister, msgRegisterSuccess); err != nil {
		m.log.Error(ctx, "failed to persist credentials", "error", err)
		m.failWith(err, msgRegisterFailed)
		return false
	}
	return true
}

// Logout deletes the persisted token, clears the session and sets a success
// message. It is synchronous, makes no network call, and never fails.
func (m *Manager) Logout() {
	ctx := context.Background()
	username := ""
	if s := m.State(); s.User != nil {
		username = s.User.Username
	}

	if err := m.tokens().Delete(ctx); err != nil {
		m.log.Error(ctx, "failed to delete stored token", "error", err)
	}
	m.recordAudit(ctx, storage.ReasonLogout, username)

	m.commit(func(s *State) {
		s.Status = StatusAnonymous
		s.User = nil
		s.Message = &Message{Kind: MessageSuccess, Text: msgLogoutSuccess}
	})
	m.fireLoggedOut()
}

// ResetMessage clears the status message without touching session or loading.
func (m *Manager) ResetMessage() {
	m.commit(func(s *State) { s.Message = nil })
}

// establish commits the authenticated state after a successful credential
// exchange: token and audit row are written in one transaction, then the
// session, message and hooks fire. A session is never established without
// its token on disk: when the write fails, the state is left untouched and
// the error is returned for the caller to settle.
func (m *Manager) establish(ctx context.Context, creds *api.Credentials, reason storage.AuditReason, text string) error {
	user := User{ID: creds.User.ID, Username: creds.User.Username}

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := storage.NewSQLiteTokenRepository(tx).Set(ctx, creds.Token); err != nil {
			return err
		}
		return storage.NewSQLiteAuditRepository(tx).Record(ctx, newAuditEvent(reason, user.Username))
	})
	if err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}

	m.commit(func(s *State) {
		s.Status = StatusAuthenticated
		s.User = &user
		s.Loading = false
		s.Message = &Message{Kind: MessageSuccess, Text: text}
	})
	m.fireAuthenticated(user)
	return nil
}

// failWith settles a failed operation: loading cleared, error message set
// from the server-supplied reason or the generic fallback.
func (m *Manager) failWith(err error, fallback string) {
	text := api.Reason(err)
	if text == "" {
		text = fallback
	}
	m.commit(func(s *State) {
		s.Loading = false
		s.Message = &Message{Kind: MessageError, Text: text}
	})
}

// commit applies mutate under the lock and notifies subscribers with a
// snapshot outside of it.
func (m *Manager) commit(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	snap := m.state.clone()
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (m *Manager) fireAuthenticated(user User) {
	m.mu.Lock()
	hooks := append([](func(User))(nil), m.onAuthenticated...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn(user)
	}
}

func (m *Manager) fireLoggedOut() {
	m.mu.Lock()
	hooks := append([](func())(nil), m.onLoggedOut...)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

func (m *Manager) tokens() storage.TokenRepository {
	return storage.NewSQLiteTokenRepository(m.db)
}

// recordAudit appends a lifecycle transition to the local audit log. Audit
// failures are logged and never fail the auth operation itself.
func (m *Manager) recordAudit(ctx context.Context, reason storage.AuditReason, username string) {
	repo := storage.NewSQLiteAuditRepository(m.db)
	if err := repo.Record(ctx, newAuditEvent(reason, username)); err != nil {
		m.log.Warn(ctx, "failed to record audit event", "error", err)
	}
}

func newAuditEvent(reason storage.AuditReason, username string) storage.AuditEvent {
	return storage.AuditEvent{
		ID:         uuid.NewString(),
		Reason:     reason,
		Username:   username,
		RecordedAt: time.Now().UTC(),
	}
}
