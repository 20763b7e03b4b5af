package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
	"transparency/internal/cache"
	"transparency/internal/model"
	"transparency/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// --- in-memory stores ---

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*model.User
	count int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return "", repository.ErrEmailTaken
		}
	}
	m.count++
	u.ID = "user-" + string(rune('0'+m.count))
	copied := *u
	m.byID[u.ID] = &copied
	return u.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

type memProducts struct {
	mu   sync.Mutex
	recs []*model.ProductRecord
}

func (m *memProducts) Create(_ context.Context, p *model.ProductRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = "p" + string(rune('0'+len(m.recs)))
	m.recs = append(m.recs, p)
	return p.ID, nil
}

func (m *memProducts) GetByID(_ context.Context, userID, id string) (*model.ProductRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.recs {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProducts) ListByUser(_ context.Context, userID string) ([]*model.ProductRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.ProductRecord{}
	for _, p := range m.recs {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memReports struct {
	mu   sync.Mutex
	recs map[string]*model.ReportRecord
	err  error
}

func newMemReports() *memReports { return &memReports{recs: map[string]*model.ReportRecord{}} }

func (m *memReports) Create(_ context.Context, r *model.ReportRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.recs[r.ID] = r
	return r.ID, nil
}

func (m *memReports) GetByID(_ context.Context, id string) (*model.ReportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recs[id], nil
}

type stubSelector struct {
	questions []model.Question
	delay     time.Duration
	onSelect  func()

	mu    sync.Mutex
	calls int
}

func (s *stubSelector) Select(context.Context, model.ProductData) []model.Question {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.onSelect != nil {
		s.onSelect()
	}
	time.Sleep(s.delay)
	return s.questions
}

func (s *stubSelector) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSelector) Provider() string { return "stub" }

type event struct {
	session, kind string
	payload       interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{sessionID, msgType, payload})
}

func oatBar() model.ProductData {
	return model.ProductData{
		Name: "Oat Bar", Brand: "GoodCo", Category: model.CategoryFood,
		Description: "Crunchy oat bar with honey and almonds",
		Extra: map[string]any{
			model.FieldIngredients:     "oats, honey, almonds",
			model.FieldCertifications:  []any{"Organic", "Fair Trade"},
			model.FieldCountryOfOrigin: "Canada",
		},
	}
}

// --- auth ---

func TestAuthRegisterLoginValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth := NewAuthService(newMemUsers(), "test-secret")

	reg, err := auth.Register(ctx, &model.RegisterRequest{Email: "a@b.co", Password: "pw", CompanyName: "GoodCo"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Token == "" || reg.User.ID == "" || reg.User.PasswordHash == "pw" {
		t.Fatalf("unexpected register response: %+v", reg)
	}

	if _, err := auth.Register(ctx, &model.RegisterRequest{Email: "a@b.co", Password: "x"}); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate register err = %v", err)
	}
	if _, err := auth.Register(ctx, &model.RegisterRequest{Email: "", Password: "x"}); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("missing email err = %v", err)
	}
	if _, err := auth.Register(ctx, &model.RegisterRequest{Email: "long@b.co", Password: strings.Repeat("p", 73)}); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("73-byte password err = %v", err)
	}

	login, err := auth.Login(ctx, &model.LoginRequest{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := auth.ValidateToken(login.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != reg.User.ID || claims.Email != "a@b.co" {
		t.Errorf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Errorf("token lifetime = %v", got)
	}

	for _, req := range []*model.LoginRequest{
		{Email: "a@b.co", Password: "wrong"},
		{Email: "nobody@b.co", Password: "pw"},
	} {
		if _, err := auth.Login(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) err = %v", req.Email, err)
		}
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := newMemUsers()
	issuer := NewAuthService(users, "one")
	resp, err := issuer.Register(ctx, &model.RegisterRequest{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewAuthService(users, "two").ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
	if _, err := issuer.ValidateToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

// --- products ---

func TestProductServiceAnalyze(t *testing.T) {
	t.Parallel()

	svc := NewProductService(&memProducts{})
	resp, err := svc.Analyze(oatBar())
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.TransparencyScore != 83 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Analysis.Completeness != model.CompletenessHigh || resp.Analysis.TrustLevel != model.TrustExcellent {
		t.Errorf("analysis = %+v", resp.Analysis)
	}

	var verr *model.ValidationError
	if _, err := svc.Analyze(model.ProductData{Name: "x"}); !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestProductServiceSaveAndOwnership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewProductService(&memProducts{})

	saved, err := svc.Save(ctx, "u1", oatBar())
	if err != nil {
		t.Fatal(err)
	}
	if saved.ProductID == "" || saved.TransparencyScore != 83 {
		t.Errorf("saved = %+v", saved)
	}

	if _, err := svc.Get(ctx, "u2", saved.ProductID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("other user Get err = %v", err)
	}
	got, err := svc.Get(ctx, "u1", saved.ProductID)
	if err != nil || got.Name != "Oat Bar" {
		t.Errorf("Get = %+v, %v", got, err)
	}

	list, err := svc.List(ctx, "u2")
	if err != nil || len(list) != 0 {
		t.Errorf("List(u2) = %v, %v", list, err)
	}
}

// --- reports ---

func TestReportGeneratePersistsOnlyForUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemReports()
	svc := NewReportService(repo)

	anon, err := svc.Generate(ctx, "", &model.AnalyzeRequest{ProductData: oatBar()})
	if err != nil {
		t.Fatal(err)
	}
	if len(repo.recs) != 0 {
		t.Errorf("anonymous report was stored")
	}
	if anon.Score != 83 || len(anon.Recommendations) == 0 || anon.ID == "" {
		t.Errorf("report = %+v", anon)
	}

	mine, err := svc.Generate(ctx, "u1", &model.AnalyzeRequest{ProductData: oatBar(), ProductID: "p1"})
	if err != nil {
		t.Fatal(err)
	}
	rec, err := svc.Get(ctx, "u1", mine.ID)
	if err != nil || rec.ProductID != "p1" {
		t.Errorf("Get = %+v, %v", rec, err)
	}
	if _, err := svc.Get(ctx, "u2", mine.ID); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("other user Get err = %v", err)
	}
}

func TestReportGenerateSurvivesStoreFailure(t *testing.T) {
	t.Parallel()

	repo := newMemReports()
	repo.err = errors.New("disk full")
	report, err := NewReportService(repo).Generate(context.Background(), "u1", &model.AnalyzeRequest{ProductData: oatBar()})
	if err != nil || report == nil {
		t.Fatalf("Generate = %v, %v", report, err)
	}
}

// --- sessions ---

func newSessionService(t *testing.T, followUps []model.Question) (*SessionService, *stubSelector, *recordingBroadcaster) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sel := &stubSelector{questions: followUps}
	b := &recordingBroadcaster{}
	svc := NewSessionService(cache.NewSessionCache(client, time.Minute), sel, NewReportService(newMemReports()))
	svc.SetBroadcaster(b)
	return svc, sel, b
}

func TestSessionFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	followUps := []model.Question{
		{ID: model.FieldIngredients, Text: "List ingredients", Type: model.QuestionTypeText, Required: true},
		{ID: model.FieldCertifications, Text: "Certifications", Type: model.QuestionTypeMultiSelect, Options: []string{"Organic", "Fair Trade"}},
	}
	svc, sel, b := newSessionService(t, followUps)

	s, err := svc.Start(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Stage != model.StageInitial || len(s.Questions) != 4 {
		t.Fatalf("start = %+v", s)
	}

	var verr *model.ValidationError
	if _, err := svc.Next(ctx, s.ID); !errors.As(err, &verr) {
		t.Fatalf("Next on empty session err = %v", err)
	}

	base := oatBar()
	base.Extra = nil
	if _, err := svc.SaveAnswers(ctx, s.ID, base); err != nil {
		t.Fatal(err)
	}
	s, err = svc.Next(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if s.Stage != model.StageExpanded || len(s.Questions) != 6 || sel.callCount() != 1 {
		t.Fatalf("expanded = %+v (calls %d)", s, sel.callCount())
	}

	if _, err := svc.Next(ctx, s.ID); !errors.As(err, &verr) || verr.Fields[0] != model.FieldIngredients {
		t.Fatalf("Next without ingredients err = %v", err)
	}
	if _, err := svc.Report(ctx, s.ID); !errors.Is(err, ErrSessionIncomplete) {
		t.Errorf("Report before completion err = %v", err)
	}

	if _, err := svc.SaveAnswers(ctx, s.ID, model.ProductData{Extra: oatBar().Extra}); err != nil {
		t.Fatal(err)
	}
	s, err = svc.Next(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if s.Stage != model.StageCompleted || s.Report == nil || s.Report.Score != 83 {
		t.Fatalf("completed = %+v", s)
	}

	again, err := svc.Next(ctx, s.ID)
	if err != nil || again.Report.ID != s.Report.ID || sel.callCount() != 1 {
		t.Errorf("Next on completed session changed it: %+v, %v", again, err)
	}
	if _, err := svc.SaveAnswers(ctx, s.ID, base); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("SaveAnswers after completion err = %v", err)
	}

	if len(b.events) != 2 || b.events[0].kind != EventQuestionsExpanded || b.events[1].kind != EventReportReady {
		t.Fatalf("events = %+v", b.events)
	}
	ready := b.events[1].payload.(model.SessionEvent)
	if ready.Score == nil || *ready.Score != 83 {
		t.Errorf("report_ready payload = %+v", ready)
	}
}

func TestSessionNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t, nil)
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v", err)
	}
	if _, err := svc.Next(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v", err)
	}
}

func startBaseSession(t *testing.T, svc *SessionService) string {
	t.Helper()
	ctx := context.Background()
	s, err := svc.Start(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	base := oatBar()
	base.Extra = nil
	if _, err := svc.SaveAnswers(ctx, s.ID, base); err != nil {
		t.Fatal(err)
	}
	return s.ID
}

func TestSessionConcurrentNextExpandsOnce(t *testing.T) {
	t.Parallel()

	followUps := []model.Question{{ID: model.FieldIngredients, Text: "List ingredients", Type: model.QuestionTypeText, Required: true}}
	svc, sel, b := newSessionService(t, followUps)
	sel.delay = 50 * time.Millisecond
	id := startBaseSession(t, svc)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Next(context.Background(), id)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("successful advances = %d, errs = %v", succeeded, errs)
	}
	if sel.callCount() != 1 {
		t.Errorf("follow-ups generated %d times", sel.callCount())
	}

	s, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if s.Stage != model.StageExpanded || len(s.Questions) != 5 {
		t.Errorf("session = %+v", s)
	}
	if len(b.events) != 1 {
		t.Errorf("events = %+v", b.events)
	}
}

func TestSessionAnswersSavedDuringNextAreKept(t *testing.T) {
	t.Parallel()

	svc, sel, _ := newSessionService(t, []model.Question{{ID: model.FieldIngredients, Text: "List ingredients", Type: model.QuestionTypeText}})
	id := startBaseSession(t, svc)

	var saveErr error
	sel.onSelect = func() {
		_, saveErr = svc.SaveAnswers(context.Background(), id, model.ProductData{
			Extra: map[string]any{model.FieldIngredients: "oats, honey, salt"},
		})
	}

	s, err := svc.Next(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if saveErr != nil {
		t.Fatalf("SaveAnswers during Next: %v", saveErr)
	}
	if got := s.Answers.String(model.FieldIngredients); got != "oats, honey, salt" {
		t.Errorf("ingredients after Next = %q", got)
	}
	stored, _ := svc.Get(context.Background(), id)
	if got := stored.Answers.String(model.FieldIngredients); got != "oats, honey, salt" {
		t.Errorf("stored ingredients = %q", got)
	}
}
