package workflow

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajaydixit/finsight/internal/client"
	"github.com/ajaydixit/finsight/internal/schema"
)

// fakeAnalyzer records every request it sees and returns a canned
// outcome, optionally blocking until released.
type fakeAnalyzer struct {
	mu       sync.Mutex
	requests []client.Request
	bodies   []string

	result *schema.AnalysisResult
	err    error

	entered chan struct{}
	release chan struct{}
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req client.Request) (*schema.AnalysisResult, error) {
	body, _ := io.ReadAll(req.File)

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakeAnalyzer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func validResult(t *testing.T) *schema.AnalysisResult {
	t.Helper()
	res, err := schema.Parse([]byte(`{
		"credit_readiness": {"score": 72, "grade": "B"},
		"financial_summary": {"metrics": {"total_revenue": 500000}},
		"projections": [{"month": "Jan", "projected_revenue": 510000, "projected_net_cashflow": 125000}],
		"ai_report": "Stable growth trend."
	}`))
	require.NoError(t, err)
	return res
}

func TestNewStartsIdle(t *testing.T) {
	flow := New(&fakeAnalyzer{}, "", "")
	assert.Equal(t, Idle, flow.State())
	assert.Nil(t, flow.File())
	assert.Equal(t, "Retail", flow.BusinessType())
	assert.Equal(t, "en", flow.Language())
}

func TestSelectFileReplacesPrevious(t *testing.T) {
	flow := New(&fakeAnalyzer{}, "Retail", "en")

	require.NoError(t, flow.SelectFile("first.csv", []byte("a")))
	assert.Equal(t, FileSelected, flow.State())

	require.NoError(t, flow.SelectFile("second.csv", []byte("b")))
	assert.Equal(t, FileSelected, flow.State())
	assert.Equal(t, "second.csv", flow.File().Name)
}

func TestSubmitFromIdleIsRejected(t *testing.T) {
	fake := &fakeAnalyzer{}
	flow := New(fake, "Retail", "en")

	err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoFileSelected)
	assert.Equal(t, Idle, flow.State())
	assert.Zero(t, fake.calls(), "no network call may happen without a file")
}

func TestSubmitSuccess(t *testing.T) {
	fake := &fakeAnalyzer{result: validResult(t)}
	flow := New(fake, "Retail", "en")

	require.NoError(t, flow.SelectFile("statement.csv", []byte("date,type,amount\n")))
	require.NoError(t, flow.Submit(context.Background()))

	assert.Equal(t, Succeeded, flow.State())
	require.NotNil(t, flow.Result())
	assert.Equal(t, 72, flow.Result().CreditReadiness.Score)
	assert.Nil(t, flow.File(), "success clears the selected file")
	assert.Nil(t, flow.Err())
	assert.NotEmpty(t, flow.ScanID())

	require.Equal(t, 1, fake.calls())
	assert.Equal(t, "statement.csv", fake.requests[0].FileName)
	assert.Equal(t, "Retail", fake.requests[0].BusinessType)
	assert.Equal(t, "en", fake.requests[0].Language)
	assert.Equal(t, "date,type,amount\n", fake.bodies[0])
}

func TestSubmitFailureKeepsFile(t *testing.T) {
	fake := &fakeAnalyzer{err: &client.APIError{Kind: client.KindServer, Op: "analyze", Status: 500}}
	flow := New(fake, "Retail", "en")

	require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))
	err := flow.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, Failed, flow.State())
	assert.Nil(t, flow.Result())
	assert.True(t, client.IsKind(flow.Err(), client.KindServer))
	require.NotNil(t, flow.File(), "failure keeps the file for resubmission")
	assert.Equal(t, "statement.csv", flow.File().Name)
}

func TestResubmitAfterFailure(t *testing.T) {
	fake := &fakeAnalyzer{err: errors.New("connection refused")}
	flow := New(fake, "Retail", "en")

	require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))
	require.Error(t, flow.Submit(context.Background()))
	assert.Equal(t, Failed, flow.State())

	// Same file, no re-selection needed
	fake.err = nil
	fake.result = validResult(t)
	require.NoError(t, flow.Submit(context.Background()))

	assert.Equal(t, Succeeded, flow.State())
	require.Equal(t, 2, fake.calls())
	assert.Equal(t, "statement.csv", fake.requests[1].FileName)
}

func TestSubmitAlwaysResolves(t *testing.T) {
	for _, outcome := range []struct {
		name  string
		fake  *fakeAnalyzer
		state State
	}{
		{"success", &fakeAnalyzer{result: &schema.AnalysisResult{}}, Succeeded},
		{"failure", &fakeAnalyzer{err: errors.New("boom")}, Failed},
	} {
		t.Run(outcome.name, func(t *testing.T) {
			flow := New(outcome.fake, "Retail", "en")
			require.NoError(t, flow.SelectFile("f.csv", []byte("x")))
			_ = flow.Submit(context.Background())
			assert.Equal(t, outcome.state, flow.State(), "workflow must never stay in Submitting")
		})
	}
}

func TestReentrantSubmitMakesNoSecondCall(t *testing.T) {
	fake := &fakeAnalyzer{
		result:  validResult(t),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	flow := New(fake, "Retail", "en")
	require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))

	done := make(chan error, 1)
	go func() {
		done <- flow.Submit(context.Background())
	}()

	select {
	case <-fake.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("analyzer was never invoked")
	}
	assert.Equal(t, Submitting, flow.State())

	err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitting)

	close(fake.release)
	require.NoError(t, <-done)

	assert.Equal(t, Succeeded, flow.State())
	assert.Equal(t, 1, fake.calls(), "re-entrant submit must not produce a second network call")
}

func TestSelectFileRejectedWhileSubmitting(t *testing.T) {
	fake := &fakeAnalyzer{
		result:  validResult(t),
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	flow := New(fake, "Retail", "en")
	require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))

	done := make(chan error, 1)
	go func() {
		done <- flow.Submit(context.Background())
	}()
	<-fake.entered

	err := flow.SelectFile("other.csv", []byte("y"))
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, Submitting, transitionErr.From)

	close(fake.release)
	require.NoError(t, <-done)
}

func TestLanguageChangeAffectsOnlyNextRequest(t *testing.T) {
	fake := &fakeAnalyzer{err: errors.New("down")}
	flow := New(fake, "Retail", "en")

	require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))
	require.Error(t, flow.Submit(context.Background()))
	assert.Equal(t, "en", fake.requests[0].Language)

	require.NoError(t, flow.SetLanguage("hi"))
	fake.err = nil
	fake.result = validResult(t)
	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, "hi", fake.requests[1].Language)
}

func TestSetLanguageRejectsUnknownTag(t *testing.T) {
	flow := New(&fakeAnalyzer{}, "Retail", "en")
	assert.Error(t, flow.SetLanguage("fr"))
	assert.Equal(t, "en", flow.Language())
}

func TestResetClearsEverything(t *testing.T) {
	t.Run("from succeeded", func(t *testing.T) {
		fake := &fakeAnalyzer{result: validResult(t)}
		flow := New(fake, "Retail", "en")
		require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))
		require.NoError(t, flow.Submit(context.Background()))

		require.NoError(t, flow.Reset())
		assert.Equal(t, Idle, flow.State())
		assert.Nil(t, flow.File())
		assert.Nil(t, flow.Result())
		assert.Nil(t, flow.Err())
		assert.Empty(t, flow.ScanID())
	})

	t.Run("from failed", func(t *testing.T) {
		fake := &fakeAnalyzer{err: errors.New("boom")}
		flow := New(fake, "Retail", "en")
		require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))
		require.Error(t, flow.Submit(context.Background()))

		require.NoError(t, flow.Reset())
		assert.Equal(t, Idle, flow.State())
		assert.Nil(t, flow.File())
		assert.Nil(t, flow.Err())
	})

	t.Run("invalid from idle", func(t *testing.T) {
		flow := New(&fakeAnalyzer{}, "Retail", "en")
		var transitionErr *TransitionError
		require.ErrorAs(t, flow.Reset(), &transitionErr)
	})

	t.Run("invalid from file selected", func(t *testing.T) {
		flow := New(&fakeAnalyzer{}, "Retail", "en")
		require.NoError(t, flow.SelectFile("statement.csv", []byte("x")))
		var transitionErr *TransitionError
		require.ErrorAs(t, flow.Reset(), &transitionErr)
	})
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		Idle:         "idle",
		FileSelected: "file selected",
		Submitting:   "submitting",
		Succeeded:    "succeeded",
		Failed:       "failed",
		State(99):    "unknown",
	} {
		assert.Equal(t, want, state.String())
	}
}
