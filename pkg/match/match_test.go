package match_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/lobby"
	"laptudirm.com/x/bughouse/pkg/match"
	"laptudirm.com/x/bughouse/pkg/rules"
)

func newTestState(t *testing.T) *match.State {
	t.Helper()
	r := rules.Default()
	return match.New("test-match", &r, rand.New(rand.NewSource(1)), zap.NewNop().Sugar())
}

func TestJoinAssignsSessionToken(t *testing.T) {
	st := newTestState(t)
	now := time.Now()

	p, err := st.Join("p1", "Alice", now)
	require.NoError(t, err)
	assert.NotEmpty(t, p.SessionToken, "Join: expected a non-empty SessionToken")
	assert.Equal(t, lobby.FactionRandom, p.Faction.Kind, "Join: new participant's Faction.Kind")
}

func TestJoinRejectsInvalidName(t *testing.T) {
	st := newTestState(t)
	_, err := st.Join("p1", "ab", time.Now())
	assert.Error(t, err, "Join with too-short name")
}

func TestJoinRejectsDuplicateOnlineName(t *testing.T) {
	st := newTestState(t)
	now := time.Now()
	_, err := st.Join("p1", "Alice", now)
	require.NoError(t, err)

	_, err = st.Join("p2", "Alice", now)
	assert.Error(t, err, "Join p2 with name already online")
}

func TestSetFactionRejectedMidGame(t *testing.T) {
	st := newTestState(t)
	now := time.Now()
	seatFullMatch(t, st, now)

	err := st.SetFaction("r1", lobby.Observer())
	require.Error(t, err, "SetFaction mid-game")
	assert.True(t, gameerror.Of(gameerror.WrongTurnMode).Is(err), "SetFaction mid-game: got %v, want WrongTurnMode", err)
}

func TestSetReadyStartsCountdownThenGame(t *testing.T) {
	st := newTestState(t)
	now := time.Now()
	seatFullMatch(t, st, now)

	require.Equal(t, match.PhaseGame, st.Phase, "Phase after countdown elapses")
	require.NotNil(t, st.Game, "Game after countdown elapses")
}

func TestSetReadyUnknownParticipant(t *testing.T) {
	st := newTestState(t)
	err := st.SetReady("ghost", true, time.Now())
	assert.True(t, gameerror.Of(gameerror.NotPlayer).Is(err), "SetReady unknown participant: got %v, want NotPlayer", err)
}

// seatFullMatch joins four fixed-team players, readies them all, and
// ticks past the pre-game countdown so st ends up with a running game.
func seatFullMatch(t *testing.T, st *match.State, now time.Time) {
	t.Helper()
	ids := map[string]bughouse.Team{
		"r1": bughouse.Red, "r2": bughouse.Red,
		"b1": bughouse.Blue, "b2": bughouse.Blue,
	}
	for id, team := range ids {
		_, err := st.Join(id, id+"name", now)
		require.NoErrorf(t, err, "Join %s", id)
		require.NoErrorf(t, st.SetFaction(id, lobby.Fixed(team)), "SetFaction %s", id)
	}
	for id := range ids {
		require.NoErrorf(t, st.SetReady(id, true, now), "SetReady %s", id)
	}
	require.Equal(t, match.PhaseCountdown, st.Phase, "Phase once everyone is ready")
	st.Tick(now.Add(match.CountdownDuration + time.Second))
}
