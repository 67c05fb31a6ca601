package auth

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/supabase-community/gotrue-go/types"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

type EventType string

const (
	EventInitialSession EventType = "INITIAL_SESSION"
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
)

// Event is one auth-state transition. Every event replaces the current
// session and triggers role resolution, or clears all state on sign-out.
type Event struct {
	Type    EventType
	Session *models.Session
}

// Manager is the process-wide session context: it holds the current
// (session, role, brand-info) triple, consumes auth-state-change events,
// and owns the sign-up/sign-in/sign-out operations. Explicit lifecycle:
// Start subscribes, Close unsubscribes. State is read through accessors,
// never raw setters.
type Manager struct {
	auth     *Client
	dbc      *db.Client
	profiles *ProfileStore

	delay              time.Duration
	maxRetries         int
	storedRefreshToken string

	mu        sync.RWMutex
	session   *models.Session
	role      models.Role
	brand     *models.BrandInfo
	resolving bool

	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(cfg *config.Config, authClient *Client, dbClient *db.Client) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		auth:               authClient,
		dbc:                dbClient,
		profiles:           NewProfileStore(dbClient),
		delay:              cfg.ResolveDelay,
		maxRetries:         cfg.ResolveMaxRetries,
		storedRefreshToken: cfg.SessionRefreshToken,
		events:             make(chan Event, 8),
		ctx:                ctx,
		cancel:             cancel,
	}
}

// Start begins consuming auth-state events and restores a persisted
// session when a stored refresh token is configured.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.loop()

	if m.storedRefreshToken != "" {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			res, err := m.auth.AuthClient.RefreshToken(m.storedRefreshToken)
			if err != nil {
				log.Printf("Could not restore stored session: %v", err)
				return
			}
			m.dispatch(Event{Type: EventInitialSession, Session: sessionFromToken(res)})
		}()
	}
}

// Close tears the manager down. A retry loop in flight observes the
// cancelled context and stops; its late result is discarded.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

func (m *Manager) Session() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *Manager) Role() models.Role {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.role
}

func (m *Manager) Brand() *models.BrandInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.brand
}

func (m *Manager) Resolving() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolving
}

// State returns a consistent snapshot of the bootstrap view.
func (m *Manager) State() models.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.SessionState{
		Session:   m.session,
		Role:      m.role,
		Brand:     m.brand,
		Resolving: m.resolving,
	}
}

// Register signs up a plain user account and inserts its profile row.
func (m *Manager) Register(email, password string) (*models.Session, error) {
	res, err := m.auth.AuthClient.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"role": string(models.RoleUser),
		},
	})
	if err != nil {
		return nil, errs.Auth(err.Error())
	}

	session := sessionFromSignup(res)
	if err := m.profiles.CreateUserProfile(session.User.ID, email); err != nil {
		return nil, err
	}

	m.dispatch(Event{Type: EventSignedIn, Session: session})
	return session, nil
}

// RegisterBrand signs up a brand admin account. The brand row and its
// admin profile are created together by the create_brand_and_profile
// routine, the one place the backend guarantees multi-row atomicity. If
// the routine fails, the fresh auth identity is signed out again so no
// orphaned account is left behind.
func (m *Manager) RegisterBrand(req models.BrandSignupRequest) (*models.Session, error) {
	res, err := m.auth.AuthClient.Signup(types.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Data: map[string]interface{}{
			"role": string(models.RoleBrandAdmin),
		},
	})
	if err != nil {
		return nil, errs.Auth(err.Error())
	}

	session := sessionFromSignup(res)

	params := map[string]any{
		"brand_name":        req.BrandName,
		"brand_description": req.BrandDescription,
		"brand_website":     req.BrandWebsite,
		"user_id":           session.User.ID,
		"user_email":        req.Email,
	}
	if _, err := db.Rpc(m.dbc.SystemClient(), "create_brand_and_profile", params); err != nil {
		log.Printf("Brand creation failed, signing out auth user %s: %v", session.User.ID, err)
		if logoutErr := m.auth.AuthClient.WithToken(session.AccessToken).Logout(); logoutErr != nil {
			log.Printf("Sign-out after failed brand creation also failed: %v", logoutErr)
		}
		return nil, errs.DataAccess("creating brand and profile", err)
	}

	m.dispatch(Event{Type: EventSignedIn, Session: session})
	return session, nil
}

// Authenticate signs in with email and password.
func (m *Manager) Authenticate(email, password string) (*models.Session, error) {
	res, err := m.auth.AuthClient.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errs.Auth(err.Error())
	}

	session := sessionFromToken(res)
	m.dispatch(Event{Type: EventSignedIn, Session: session})
	return session, nil
}

// EndSession revokes the current session and clears all state.
func (m *Manager) EndSession() error {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()

	if session != nil {
		if err := m.auth.AuthClient.WithToken(session.AccessToken).Logout(); err != nil {
			return errs.Auth(err.Error())
		}
	}
	m.dispatch(Event{Type: EventSignedOut})
	return nil
}

// Refresh exchanges the current refresh token for a new session.
func (m *Manager) Refresh() (*models.Session, error) {
	m.mu.RLock()
	session := m.session
	m.mu.RUnlock()

	if session == nil || session.RefreshToken == "" {
		return nil, errs.Auth("no session to refresh")
	}

	res, err := m.auth.AuthClient.RefreshToken(session.RefreshToken)
	if err != nil {
		return nil, errs.Auth(err.Error())
	}

	next := sessionFromToken(res)
	m.dispatch(Event{Type: EventTokenRefreshed, Session: next})
	return next, nil
}

func (m *Manager) dispatch(ev Event) {
	select {
	case m.events <- ev:
	case <-m.ctx.Done():
	}
}

func (m *Manager) loop() {
	defer m.wg.Done()
	for {
		select {
		case ev := <-m.events:
			m.handle(ev)
		case <-m.ctx.Done():
			return
		}
	}
}

// Events are handled strictly in order: the two-step flows behind them
// are sequential, so resolution for one event completes before the next
// is looked at.
func (m *Manager) handle(ev Event) {
	log.Printf("Auth state change: %s", ev.Type)

	if ev.Type == EventSignedOut || ev.Session == nil {
		m.mu.Lock()
		m.session = nil
		m.role = ""
		m.brand = nil
		m.resolving = false
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.session = ev.Session
	m.role = ""
	m.brand = nil
	m.resolving = true
	m.mu.Unlock()

	m.resolve(ev.Session.User.ID, ev.Type == EventSignedIn)
}

// resolve looks up the profile row for userID and records its role and,
// for brand admins, the brand info. The profile row is written by the
// backend after sign-up and may not have committed yet, so a missing row
// is not an error: resolution waits a fixed interval and tries again, up
// to maxRetries attempts. A fresh sign-in waits one interval before the
// first attempt to reduce the chance of racing the profile-creation
// write. Any other failure is logged and resolution is abandoned; role
// stays unset and role-gated features treat the caller as
// unauthenticated even though a session exists.
func (m *Manager) resolve(userID string, freshSignIn bool) {
	defer func() {
		m.mu.Lock()
		m.resolving = false
		m.mu.Unlock()
	}()

	if freshSignIn && !m.wait() {
		return
	}

	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		profile, err := m.profiles.Get(userID)
		if err == nil {
			m.recordRole(profile)
			return
		}
		if !errs.IsNotFound(err) {
			log.Printf("Error fetching user role: %v", err)
			return
		}
		log.Printf("Profile row for %s not committed yet, retrying (%d/%d)", userID, attempt, m.maxRetries)
		if !m.wait() {
			return
		}
	}

	log.Printf("Profile row for %s never appeared after %d attempts", userID, m.maxRetries)
}

func (m *Manager) wait() bool {
	select {
	case <-time.After(m.delay):
		return true
	case <-m.ctx.Done():
		return false
	}
}

func (m *Manager) recordRole(profile *models.UserProfile) {
	var brand *models.BrandInfo
	if profile.Role == models.RoleBrandAdmin && profile.BrandID != "" {
		b, err := m.profiles.GetBrand(profile.BrandID)
		if err != nil {
			log.Printf("Error fetching brand info: %v", err)
		} else {
			brand = b
		}
	}

	m.mu.Lock()
	m.role = profile.Role
	m.brand = brand
	m.mu.Unlock()
}

func sessionFromToken(res *types.TokenResponse) *models.Session {
	return &models.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
		TokenType:    res.TokenType,
		User: models.User{
			ID:    res.User.ID.String(),
			Email: res.User.Email,
		},
	}
}

func sessionFromSignup(res *types.SignupResponse) *models.Session {
	return &models.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
		TokenType:    res.TokenType,
		User: models.User{
			ID:    res.User.ID.String(),
			Email: res.User.Email,
		},
	}
}
