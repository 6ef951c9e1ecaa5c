package op

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

var fixedNow = time.Unix(1700000000, 0).UTC()

type stubRecords struct {
	profiles    int
	gameStates  int
	progresses  int
	socials     int
	leagues     int
	upsertErr   error
	codeOwner   string
	codeErr     error
	lookupCodes []string
}

var _ ports.PlayerRecordRepository = (*stubRecords)(nil)

func (s *stubRecords) UpsertProfile(_ context.Context, _ string, _ merge.Profile) error {
	s.profiles++
	return s.upsertErr
}

func (s *stubRecords) UpsertGameState(_ context.Context, _ string, _ merge.GameState) error {
	s.gameStates++
	return s.upsertErr
}

func (s *stubRecords) UpsertProgress(_ context.Context, _ string, _ merge.Progress) error {
	s.progresses++
	return s.upsertErr
}

func (s *stubRecords) UpsertSocial(_ context.Context, _ string, _ merge.Social) error {
	s.socials++
	return s.upsertErr
}

func (s *stubRecords) UpsertLeague(_ context.Context, _ string, _ merge.League) error {
	s.leagues++
	return s.upsertErr
}

func (s *stubRecords) IsRegistered(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *stubRecords) GetCredentials(_ context.Context, _ string) (ports.PlayerCredentials, error) {
	return ports.PlayerCredentials{}, ports.ErrNotFound
}

func (s *stubRecords) FindPlayerByReferralCode(_ context.Context, code string) (string, error) {
	s.lookupCodes = append(s.lookupCodes, code)
	if s.codeErr != nil {
		return "", s.codeErr
	}
	return s.codeOwner, nil
}

func (s *stubRecords) ListPlayerIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

type stubTasks struct {
	mcq        []merge.McqTask
	text       []merge.TextTask
	fetchErr   error
	submitErr  error
	submitted  []string
	fetchCalls int
}

var _ ports.TaskContentProvider = (*stubTasks)(nil)

func (s *stubTasks) FetchMcqTasks(_ context.Context, n int) ([]merge.McqTask, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if n < len(s.mcq) {
		return s.mcq[:n], nil
	}
	return s.mcq, nil
}

func (s *stubTasks) FetchTextTasks(_ context.Context, n int) ([]merge.TextTask, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if n < len(s.text) {
		return s.text[:n], nil
	}
	return s.text, nil
}

func (s *stubTasks) SubmitMcqAnswers(_ context.Context, _, datapointID string, _ map[int]string) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, datapointID)
	return nil
}

func (s *stubTasks) SubmitTextAnswer(_ context.Context, _, datapointID string, _ int, _ string) error {
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, datapointID)
	return nil
}

type stubLedger struct {
	quote       float64
	quoteErr    error
	txRef       string
	transferErr error
	transfers   int
}

var _ ports.Ledger = (*stubLedger)(nil)

func (s *stubLedger) Quote(_ context.Context, _ int, _ string, _ int) (float64, error) {
	if s.quoteErr != nil {
		return 0, s.quoteErr
	}
	return s.quote, nil
}

func (s *stubLedger) Transfer(_ context.Context, _ int, _, _ string) (string, error) {
	if s.transferErr != nil {
		return "", s.transferErr
	}
	s.transfers++
	return s.txRef, nil
}

type stubLinks struct{ links []merge.LinkTask }

var _ ports.LinkProvider = stubLinks{}

func (s stubLinks) RandomLinks(n int) []merge.LinkTask {
	if n < len(s.links) {
		return s.links[:n]
	}
	return s.links
}

type stubTxManager struct{ err error }

var _ ports.TxManager = stubTxManager{}

func (s stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

type stubReconciler struct {
	calls int
	err   error
	last  merge.PlayerState
}

func (s *stubReconciler) Reconcile(_ context.Context, state merge.PlayerState) error {
	s.calls++
	s.last = state
	if s.err != nil {
		return s.err
	}
	return nil
}

type resolverKit struct {
	resolver *Resolver
	records  *stubRecords
	tasks    *stubTasks
	ledger   *stubLedger
	recon    *stubReconciler
	state    merge.PlayerState
	rng      *rand.Rand
}

func newResolverKit(t *testing.T) *resolverKit {
	t.Helper()
	kit := &resolverKit{
		records: &stubRecords{},
		tasks:   &stubTasks{},
		ledger:  &stubLedger{},
		recon:   &stubReconciler{},
		rng:     rand.New(rand.NewSource(7)),
	}
	kit.resolver = &Resolver{
		Records:    kit.records,
		Tasks:      kit.tasks,
		Ledger:     kit.ledger,
		Links:      stubLinks{},
		Reconciler: kit.recon,
		TxManager:  stubTxManager{},
		Now:        func() time.Time { return fixedNow },
	}
	kit.state = merge.NewPlayerState("p1", fixedNow, kit.rng)
	return kit
}

func (k *resolverKit) apply(t *testing.T, cmd Command) Result {
	t.Helper()
	res, err := k.resolver.Apply(context.Background(), &k.state, cmd, k.rng)
	if err != nil {
		t.Fatalf("apply %s: %v", cmd.Type, err)
	}
	return res
}

func (k *resolverKit) applyErr(t *testing.T, cmd Command) error {
	t.Helper()
	_, err := k.resolver.Apply(context.Background(), &k.state, cmd, k.rng)
	if err == nil {
		t.Fatalf("apply %s: expected an error", cmd.Type)
	}
	return err
}
