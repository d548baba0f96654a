package factory

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lukemay/quizroom-go/internal/dependencies/mocks"
	"github.com/lukemay/quizroom-go/internal/services/room"
	"github.com/lukemay/quizroom-go/internal/services/roundclock"
	"github.com/lukemay/quizroom-go/internal/storage/memory"
	"github.com/lukemay/quizroom-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	FakeClock  *clockwork.FakeClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(
		store, fakeClock, mockRandom,
		room.DefaultConfig(), roundclock.DefaultConfig(),
		testutil.NopLogger())

	return &TestApp{
		App:        app,
		FakeClock:  fakeClock,
		MockRandom: mockRandom,
	}
}
