package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cocktail_rig/internal/models"
	"cocktail_rig/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockCatalog struct {
	pumps     models.PumpConfig
	pumpsErr  error
	saveErr   error
	lastRaw   map[string]string
	cocktails []models.Cocktail
	listErr   error
	replErr   error
	lastColl  models.CocktailCollection
	cocktail  *models.Cocktail
	getErr    error
	lastName  string
	ingErr    error
	lastIng   *models.Ingredients
	selection string
	selErr    error
	lastToken string
}

func (m *mockCatalog) PumpConfig(ctx context.Context) (models.PumpConfig, error) {
	return m.pumps, m.pumpsErr
}
func (m *mockCatalog) SavePumpConfig(ctx context.Context, raw map[string]string) (models.PumpConfig, error) {
	m.lastRaw = raw
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return models.NewPumpConfig(raw, 12)
}
func (m *mockCatalog) Cocktails(ctx context.Context) ([]models.Cocktail, error) {
	return m.cocktails, m.listErr
}
func (m *mockCatalog) ReplaceCocktails(ctx context.Context, coll models.CocktailCollection) error {
	m.lastColl = coll
	return m.replErr
}
func (m *mockCatalog) Cocktail(ctx context.Context, name string) (*models.Cocktail, error) {
	m.lastName = name
	return m.cocktail, m.getErr
}
func (m *mockCatalog) UpdateIngredients(ctx context.Context, name string, ing *models.Ingredients) error {
	m.lastName = name
	m.lastIng = ing
	return m.ingErr
}
func (m *mockCatalog) Selection(ctx context.Context) (string, error) {
	return m.selection, m.selErr
}
func (m *mockCatalog) Select(ctx context.Context, token string) (string, error) {
	m.lastToken = token
	if m.selErr != nil {
		return "", m.selErr
	}
	return models.SafeName(token), nil
}

type mockCalibration struct {
	value   float64
	getErr  error
	setErr  error
	lastSet float64
}

func (m *mockCalibration) Get(ctx context.Context) (float64, error) { return m.value, m.getErr }
func (m *mockCalibration) Set(ctx context.Context, v float64) error {
	m.lastSet = v
	return m.setErr
}

type mockOperator struct {
	mu sync.Mutex

	startErr    error
	lastPour    service.PourParams
	lastSeconds float64
	lastKind    string
	current     models.Operation
	canceled    bool
	updates     chan models.Operation
	unsubscribe int
}

func (m *mockOperator) start(kind string) (models.Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastKind = kind
	if m.startErr != nil {
		return models.Operation{}, m.startErr
	}
	m.current = models.Operation{ID: "op-1", Kind: kind, State: models.StatePreparing}
	return m.current, nil
}

func (m *mockOperator) StartPour(p service.PourParams) (models.Operation, error) {
	m.mu.Lock()
	m.lastPour = p
	m.mu.Unlock()
	return m.start(models.OperationPour)
}
func (m *mockOperator) StartPrime(seconds float64) (models.Operation, error) {
	m.mu.Lock()
	m.lastSeconds = seconds
	m.mu.Unlock()
	return m.start(models.OperationPrime)
}
func (m *mockOperator) StartClean(seconds float64) (models.Operation, error) {
	m.mu.Lock()
	m.lastSeconds = seconds
	m.mu.Unlock()
	return m.start(models.OperationClean)
}
func (m *mockOperator) Current() models.Operation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}
func (m *mockOperator) CancelCurrent() (models.Operation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.Running() {
		return m.current, false
	}
	m.canceled = true
	return m.current, true
}
func (m *mockOperator) Subscribe() (<-chan models.Operation, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updates == nil {
		m.updates = make(chan models.Operation, 8)
	}
	return m.updates, func() {
		m.mu.Lock()
		m.unsubscribe++
		m.mu.Unlock()
	}
}

func (m *mockOperator) Wait() {}

type mockEventLog struct {
	resp     []models.RigEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RigEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// authed returns a service whose token check accepts any bearer token.
func authed(s *service.Service) *service.Service {
	s.Authorization = &mockAuth{parseID: 1}
	return s
}

// doRaw sends an unauthenticated request without a body.
func doRaw(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}
