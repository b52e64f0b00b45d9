package tmux

import (
	"errors"
	"reflect"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type fakeClient struct {
	sessions    []*gotmux.Session
	sessionsErr error
	clients     []*gotmux.Client
	clientsErr  error

	switchErr      error
	lastSwitchOpts *gotmux.SwitchClientOptions
	newErr         error
	newNames       []string
	closed         int
}

func (f *fakeClient) ListSessions() ([]*gotmux.Session, error) {
	if f.sessionsErr != nil {
		return nil, f.sessionsErr
	}
	return f.sessions, nil
}

func (f *fakeClient) ListClients() ([]*gotmux.Client, error) {
	if f.clientsErr != nil {
		return nil, f.clientsErr
	}
	return f.clients, nil
}

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	if opts != nil {
		cp := *opts
		f.lastSwitchOpts = &cp
	}
	return f.switchErr
}

func (f *fakeClient) NewSession(opts *gotmux.SessionOptions) (*gotmux.Session, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	f.newNames = append(f.newNames, opts.Name)
	return &gotmux.Session{Name: opts.Name}, nil
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

// withStubTmux installs fake as the control-mode client and returns the
// number of connections opened so far.
func withStubTmux(t *testing.T, fake *fakeClient) *int {
	t.Helper()
	prev := newTmux
	_ = Close()
	opened := 0
	newTmux = func(string) (tmuxClient, error) {
		opened++
		return fake, nil
	}
	t.Cleanup(func() {
		_ = Close()
		newTmux = prev
	})
	return &opened
}

func TestListSessionsUsesRealClients(t *testing.T) {
	fake := &fakeClient{
		sessions: []*gotmux.Session{
			{Name: "main", Windows: 3, Attached: 2},
			{Name: "scratch", Windows: 1, Attached: 1},
		},
		clients: []*gotmux.Client{
			{Name: "/dev/pts/1", Session: "main"},
			{Name: "control", Session: "main", ControlMode: true},
			{Name: "control", Session: "scratch", ControlMode: true},
		},
	}
	withStubTmux(t, fake)
	sessions, err := ListSessions("/tmp/sock")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []Session{
		{Name: "main", Windows: 3, Attached: true, Clients: []string{"/dev/pts/1"}},
		{Name: "scratch", Windows: 1},
	}
	if !reflect.DeepEqual(sessions, want) {
		t.Fatalf("expected %#v, got %#v", want, sessions)
	}
}

func TestListSessionsFallsBackToAttachedCount(t *testing.T) {
	fake := &fakeClient{
		sessions:   []*gotmux.Session{{Name: "main", Windows: 1, Attached: 1}},
		clientsErr: errors.New("unsupported"),
	}
	withStubTmux(t, fake)
	sessions, err := ListSessions("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || !sessions[0].Attached {
		t.Fatalf("expected attached from session count, got %#v", sessions)
	}
}

func TestListSessionsExecFallbackWhenEmpty(t *testing.T) {
	withStubTmux(t, &fakeClient{})
	calls := withStubExec(t, "main\t3\t1\nscratch\t1\t0\n", nil)
	sessions, err := ListSessions("/tmp/sock")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 || sessions[0].Name != "main" || sessions[0].Windows != 3 || sessions[1].Attached {
		t.Fatalf("unexpected fallback sessions %#v", sessions)
	}
	if got := (*calls)[0]; got[0] != "tmux" || got[1] != "-S" || got[3] != "list-sessions" {
		t.Fatalf("unexpected invocation %v", got)
	}
}

func TestListSessionsDropsClientOnError(t *testing.T) {
	boom := errors.New("no server")
	fake := &fakeClient{sessionsErr: boom}
	opened := withStubTmux(t, fake)
	if _, err := ListSessions(""); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if fake.closed != 1 {
		t.Fatalf("expected failed client closed, got %d closes", fake.closed)
	}
	fake.sessionsErr = nil
	fake.sessions = []*gotmux.Session{{Name: "main"}}
	if _, err := ListSessions(""); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := ListSessions(""); err != nil {
		t.Fatalf("list: %v", err)
	}
	if *opened != 2 {
		t.Fatalf("expected reconnect once then reuse, opened %d", *opened)
	}
}

func TestSwitchClientUsesControlClient(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, fake)
	if err := SwitchClient("", " "); !errors.Is(err, ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
	if fake.lastSwitchOpts != nil {
		t.Fatalf("expected no switch for an empty target")
	}
	if err := SwitchClient("", "main"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if fake.lastSwitchOpts == nil || fake.lastSwitchOpts.TargetSession != "main" {
		t.Fatalf("unexpected switch options %#v", fake.lastSwitchOpts)
	}
	fake.switchErr = errors.New("can't find session")
	if err := SwitchClient("", "gone"); !errors.Is(err, fake.switchErr) {
		t.Fatalf("expected switch error, got %v", err)
	}
}

func TestNewSession(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, fake)
	if err := NewSession("", "work"); err != nil {
		t.Fatalf("new session: %v", err)
	}
	if !reflect.DeepEqual(fake.newNames, []string{"work"}) {
		t.Fatalf("unexpected sessions created %v", fake.newNames)
	}
	fake.newErr = errors.New("duplicate session")
	if err := NewSession("", "work"); !errors.Is(err, fake.newErr) {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestConnectErrorIsWrapped(t *testing.T) {
	prev := newTmux
	_ = Close()
	boom := errors.New("dial")
	newTmux = func(string) (tmuxClient, error) { return nil, boom }
	t.Cleanup(func() { newTmux = prev })
	if _, err := ListSessions(""); !errors.Is(err, boom) {
		t.Fatalf("expected connect error, got %v", err)
	}
}
