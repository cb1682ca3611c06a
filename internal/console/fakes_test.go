package console

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ewaste-admin-console/internal/apitest"
	"ewaste-admin-console/internal/model"
	"ewaste-admin-console/internal/service"
	"ewaste-admin-console/internal/session"
)

type fakeView struct {
	mu           sync.Mutex
	rows         map[string][]Row
	placeholders map[string]string
	denied       string
	activeTab    string
}

func newFakeView() *fakeView {
	return &fakeView{rows: map[string][]Row{}, placeholders: map[string]string{}}
}

func (v *fakeView) ShowRows(panel string, rows []Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows[panel] = rows
	delete(v.placeholders, panel)
}

func (v *fakeView) ShowPlaceholder(panel, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.placeholders[panel] = text
	delete(v.rows, panel)
}

func (v *fakeView) Deny(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.denied = message
}

func (v *fakeView) ActivateTab(tab string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeTab = tab
}

func (v *fakeView) panelRows(panel string) []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows[panel]
}

func (v *fakeView) placeholder(panel string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.placeholders[panel]
}

type fakePrompter struct {
	answer   bool
	confirms []string
	alerts   []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)
	return p.answer
}

func (p *fakePrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

type fakeNavigator struct {
	logins int
}

func (n *fakeNavigator) ToLogin() { n.logins++ }

// env is a console wired to the in-memory marketplace backend.
type env struct {
	backend  *apitest.Backend
	api      *service.AdminClient
	sessions *session.Manager
	view     *fakeView
	prompt   *fakePrompter
	nav      *fakeNavigator
	console  *Console
	admin    model.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	b := apitest.NewBackend()
	admin := b.AddUser(model.User{ID: "root", Email: "root@ewaste.io", FullName: "Root", IsAdmin: true})
	srv := apitest.NewServer(t, b)

	e := &env{
		backend:  b,
		api:      service.NewAdminClient(srv.URL, 0, nil),
		sessions: session.NewManager(session.NewMemoryStore()),
		view:     newFakeView(),
		prompt:   &fakePrompter{answer: true},
		nav:      &fakeNavigator{},
		admin:    admin,
	}
	e.console = New(Options{
		API:       e.api,
		Sessions:  e.sessions,
		View:      e.view,
		Prompter:  e.prompt,
		Navigator: e.nav,
		Log:       zap.NewNop(),
	})
	return e
}

// login stores a valid credential for userID.
func (e *env) login(t *testing.T, userID string) string {
	t.Helper()
	token := e.backend.IssueToken(userID)
	require.NoError(t, e.sessions.SetToken(token))
	return token
}

func (e *env) adminCalls(method, path string) int {
	return e.backend.CallCount(method, path)
}
