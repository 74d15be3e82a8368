package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// ==================== Material API fake ====================

type fakeMaterialAPI struct {
	materials []domain.Material
	fileData  map[string][]byte
	fileInfo  map[string]*domain.FileInfo
	fetchErr  error

	enrolled []string
	deleted  []string
	forced   []string
	uploaded []domain.MaterialUpload
}

var _ driven.MaterialAPI = (*fakeMaterialAPI)(nil)

func (f *fakeMaterialAPI) List(_ context.Context, department string) ([]domain.Material, error) {
	if department == "" {
		return f.materials, nil
	}
	var out []domain.Material
	for _, m := range f.materials {
		if m.Department == department {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterialAPI) ListEnrolled(_ context.Context) ([]domain.Material, error) {
	return f.materials, nil
}

func (f *fakeMaterialAPI) Get(_ context.Context, id string) (*domain.Material, error) {
	for i := range f.materials {
		if f.materials[i].ID == id {
			return &f.materials[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMaterialAPI) FetchFile(_ context.Context, id string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	data, ok := f.fileData[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (f *fakeMaterialAPI) FileInfo(_ context.Context, id string) (*domain.FileInfo, error) {
	info, ok := f.fileInfo[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return info, nil
}

func (f *fakeMaterialAPI) Enroll(_ context.Context, id string) error {
	f.enrolled = append(f.enrolled, id)
	return nil
}

func (f *fakeMaterialAPI) Upload(_ context.Context, input domain.MaterialUpload) (*domain.Material, error) {
	f.uploaded = append(f.uploaded, input)
	return &domain.Material{ID: "uploaded", Title: input.Title}, nil
}

func (f *fakeMaterialAPI) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMaterialAPI) ForceDelete(_ context.Context, id string) error {
	f.forced = append(f.forced, id)
	return nil
}

// ==================== Progress API fake ====================

type progressCall struct {
	kind   string // "update", "page", "complete"
	page   int
	update domain.ProgressUpdate
}

type fakeProgressAPI struct {
	mu        sync.Mutex
	record    *domain.Progress
	updateErr error
	markErr   error
	calls     []progressCall
}

var _ driven.ProgressAPI = (*fakeProgressAPI)(nil)

func (f *fakeProgressAPI) Get(_ context.Context, materialID string) (*domain.Progress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.record == nil {
		return nil, domain.ErrNotFound
	}
	rec := *f.record
	rec.MaterialID = materialID
	return &rec, nil
}

func (f *fakeProgressAPI) Update(_ context.Context, _ string, update domain.ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.calls = append(f.calls, progressCall{kind: "update", update: update})
	return nil
}

func (f *fakeProgressAPI) MarkPage(_ context.Context, _ string, page int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.calls = append(f.calls, progressCall{kind: "page", page: page})
	return nil
}

func (f *fakeProgressAPI) MarkComplete(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	f.calls = append(f.calls, progressCall{kind: "complete"})
	return nil
}

func (f *fakeProgressAPI) callKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]string, len(f.calls))
	for i, c := range f.calls {
		kinds[i] = c.kind
	}
	return kinds
}

// ==================== Document source fake ====================

type fakeDocSource struct {
	pages       int
	openErr     error
	validateErr error
	lastHandle  *fakeDocHandle
}

var _ driven.DocumentSource = (*fakeDocSource)(nil)

func (f *fakeDocSource) Open(_ context.Context, _ []byte) (driven.DocumentHandle, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.lastHandle = &fakeDocHandle{pages: f.pages}
	return f.lastHandle, nil
}

func (f *fakeDocSource) Validate(_ context.Context, _ []byte) error {
	return f.validateErr
}

type fakeDocHandle struct {
	pages     int
	renders   []domain.Viewport
	renderErr error
	closed    bool
}

func (h *fakeDocHandle) PageCount() int { return h.pages }

func (h *fakeDocHandle) RenderPage(_ context.Context, page int, vp domain.Viewport) (*domain.RenderedPage, error) {
	if h.renderErr != nil {
		return nil, h.renderErr
	}
	h.renders = append(h.renders, vp)
	return &domain.RenderedPage{
		PageNumber: page,
		Lines:      []string{fmt.Sprintf("page %d", page)},
	}, nil
}

func (h *fakeDocHandle) Close() error {
	h.closed = true
	return nil
}

// ==================== Prefs store fake ====================

type fakePrefsStore struct {
	mu    sync.Mutex
	prefs map[string]driven.ViewerPrefs
}

var _ driven.ViewerPrefsStore = (*fakePrefsStore)(nil)

func newFakePrefsStore() *fakePrefsStore {
	return &fakePrefsStore{prefs: make(map[string]driven.ViewerPrefs)}
}

func prefsKey(userID, materialID string) string {
	return userID + "/" + materialID
}

func (f *fakePrefsStore) GetPrefs(_ context.Context, userID, materialID string) (*driven.ViewerPrefs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prefs[prefsKey(userID, materialID)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePrefsStore) SaveZoom(_ context.Context, userID, materialID string, scale float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.prefs[prefsKey(userID, materialID)]
	p.ZoomScale = scale
	f.prefs[prefsKey(userID, materialID)] = p
	return nil
}

func (f *fakePrefsStore) SaveLastPage(_ context.Context, userID, materialID string, page int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.prefs[prefsKey(userID, materialID)]
	p.LastPage = page
	f.prefs[prefsKey(userID, materialID)] = p
	return nil
}

// ==================== Quiz state fake ====================

type fakeQuizState struct {
	mu      sync.Mutex
	stats   map[string]domain.QuizStats
	history map[string][]domain.QuizAttempt
}

var _ driven.QuizStateStore = (*fakeQuizState)(nil)

func newFakeQuizState() *fakeQuizState {
	return &fakeQuizState{
		stats:   make(map[string]domain.QuizStats),
		history: make(map[string][]domain.QuizAttempt),
	}
}

func (f *fakeQuizState) GetStats(_ context.Context, userID string) (domain.QuizStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats[userID], nil
}

func (f *fakeQuizState) SaveStats(_ context.Context, userID string, stats domain.QuizStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[userID] = stats
	return nil
}

func (f *fakeQuizState) AppendAttempt(_ context.Context, userID string, attempt domain.QuizAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	hist := append([]domain.QuizAttempt{attempt}, f.history[userID]...)
	if len(hist) > domain.QuizHistoryLimit {
		hist = hist[:domain.QuizHistoryLimit]
	}
	f.history[userID] = hist
	return nil
}

func (f *fakeQuizState) History(_ context.Context, userID string) ([]domain.QuizAttempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history[userID], nil
}

// ==================== Session store fake ====================

type fakeSessionStore struct {
	mu    sync.Mutex
	token string
}

var _ driven.SessionStore = (*fakeSessionStore)(nil)

func (f *fakeSessionStore) SaveToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

func (f *fakeSessionStore) Token(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeSessionStore) ClearToken(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	return nil
}

// ==================== Config fake ====================

type mapConfig struct {
	data map[string]any
}

var _ driven.ConfigStore = (*mapConfig)(nil)

func newMapConfig() *mapConfig {
	return &mapConfig{data: make(map[string]any)}
}

func (c *mapConfig) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *mapConfig) GetString(key string) string {
	s, _ := c.data[key].(string)
	return s
}

func (c *mapConfig) GetInt(key string) int {
	i, _ := c.data[key].(int)
	return i
}

func (c *mapConfig) GetFloat(key string) float64 {
	f, _ := c.data[key].(float64)
	return f
}

func (c *mapConfig) GetBool(key string) bool {
	b, _ := c.data[key].(bool)
	return b
}

func (c *mapConfig) Set(key string, value any) error {
	c.data[key] = value
	return nil
}

func (c *mapConfig) Save() error { return nil }
func (c *mapConfig) Load() error { return nil }
func (c *mapConfig) Path() string {
	return "config.toml"
}

// ==================== Auth fixtures ====================

// fakeAuthAPI implements driven.AuthAPI.
type fakeAuthAPI struct {
	token    string
	loginErr error
	meErr    error
	user     *domain.User
}

var _ driven.AuthAPI = (*fakeAuthAPI)(nil)

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthAPI) Register(_ context.Context, input driven.RegisterInput) (*domain.User, error) {
	return &domain.User{Email: input.Email, FullName: input.FullName}, nil
}

func (f *fakeAuthAPI) Me(_ context.Context) (*domain.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

// fakeCarrier implements driven.TokenCarrier.
type fakeCarrier struct {
	mu    sync.Mutex
	token string
}

var _ driven.TokenCarrier = (*fakeCarrier)(nil)

func (f *fakeCarrier) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeCarrier) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// loggedInAuth returns an auth service with a fixed in-memory session.
func loggedInAuth(userID string) *AuthService {
	auth := NewAuthService(&fakeAuthAPI{}, &fakeCarrier{}, &fakeSessionStore{})
	auth.session = &domain.Session{
		Token: "tok",
		User:  &domain.User{ID: userID, Email: "u@example.test", Role: domain.RoleUser},
	}
	return auth
}
