// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package altered_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/bughouse/pkg/altered"
	"laptudirm.com/x/bughouse/pkg/bughouse"
	"laptudirm.com/x/bughouse/pkg/envoy"
	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/rules"
	"laptudirm.com/x/bughouse/pkg/square"
	"laptudirm.com/x/bughouse/pkg/startpos"
	"laptudirm.com/x/bughouse/pkg/turn"
)

func newTestAlteredGame(t *testing.T) *altered.AlteredGame {
	t.Helper()
	r := rules.Default()
	var names [envoy.BoardN][force.N]string
	names[envoy.A] = [force.N]string{"Alice", "Bob"}
	names[envoy.B] = [force.N]string{"Carol", "Dave"}
	g := bughouse.NewGame(&r, names, startpos.Classical())
	g.Start(time.Now())

	white := force.White
	var perspective [envoy.BoardN]*force.Force
	perspective[envoy.A] = &white
	return altered.New(g, perspective)
}

func TestTryLocalTurnAppliesAsNormalWhenToMove(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)
	to := square.New(square.FileE, square.Rank4)

	_, err := a.TryLocalTurn(envoy.A, turn.NewExplicitInput(turn.NewMove(from, to)), time.Now())
	require.NoError(t, err)

	local := a.LocalGame().Board(envoy.A)
	assert.False(t, local.Grid.IsEmpty(to), "local game should reflect the pending move, e4 should hold the pawn")
	assert.True(t, a.Confirmed.Board(envoy.A).Grid.IsEmpty(to), "confirmed game should NOT reflect an unconfirmed local turn")
}

func TestTryLocalTurnRejectsNotPlayer(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank7)
	to := square.New(square.FileE, square.Rank5)

	// Board B has no perspective set (client isn't playing it).
	_, err := a.TryLocalTurn(envoy.B, turn.NewExplicitInput(turn.NewMove(from, to)), time.Now())
	assert.True(t, gameerror.Of(gameerror.NotPlayer).Is(err), "TryLocalTurn on an unplayed board: err = %v, want NotPlayer", err)
}

func TestTryLocalTurnRejectsASecondPendingPreturn(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)
	to := square.New(square.FileE, square.Rank4)
	input := turn.NewExplicitInput(turn.NewMove(from, to))

	// First call fills the Normal slot (White is to move on a fresh board).
	_, err := a.TryLocalTurn(envoy.A, input, time.Now())
	require.NoError(t, err)

	from2 := square.New(square.FileD, square.Rank2)
	to2 := square.New(square.FileD, square.Rank4)
	input2 := turn.NewExplicitInput(turn.NewMove(from2, to2))
	// Local game now has White's pending move applied, so Black is to
	// move there; this second call is filed as a preturn.
	_, err = a.TryLocalTurn(envoy.A, input2, time.Now())
	require.NoError(t, err)

	from3 := square.New(square.FileC, square.Rank2)
	to3 := square.New(square.FileC, square.Rank4)
	input3 := turn.NewExplicitInput(turn.NewMove(from3, to3))
	_, err = a.TryLocalTurn(envoy.A, input3, time.Now())
	assert.True(t, gameerror.Of(gameerror.PreturnLimitReached).Is(err), "third pending turn (second preturn): err = %v, want PreturnLimitReached", err)
}

func TestApplyRemoteTurnClearsMatchingLocalTurn(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)
	to := square.New(square.FileE, square.Rank4)
	input := turn.NewExplicitInput(turn.NewMove(from, to))

	_, err := a.TryLocalTurn(envoy.A, input, time.Now())
	require.NoError(t, err)

	e := envoy.Envoy{Board: envoy.A, Force: force.White}
	_, err = a.ApplyRemoteTurn(e, input, time.Now())
	require.NoError(t, err)

	assert.True(t, a.Confirmed.Board(envoy.A).Grid.IsEmpty(from), "confirmed board should now reflect the move, e2 should be empty")
}

func TestStartAndAbortDrag(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)

	require.NoError(t, a.StartDragPiece(envoy.A, force.White, piece.Pawn, from))

	err := a.StartDragPiece(envoy.A, force.White, piece.Pawn, from)
	assert.True(t, gameerror.Of(gameerror.DragAlreadyStarted).Is(err), "second StartDragPiece: err = %v, want DragAlreadyStarted", err)

	require.NoError(t, a.AbortDragPiece())

	err = a.AbortDragPiece()
	assert.True(t, gameerror.Of(gameerror.NoDragInProgress).Is(err), "AbortDragPiece with nothing in flight: err = %v, want NoDragInProgress", err)
}

func TestStartDragPieceRejectsWrongPiece(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)

	err := a.StartDragPiece(envoy.A, force.White, piece.Knight, from)
	assert.True(t, gameerror.Of(gameerror.PieceNotFound).Is(err), "dragging the wrong kind off e2: err = %v, want PieceNotFound", err)
}

func TestDragPieceDropBackOnSourceCancels(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)
	require.NoError(t, a.StartDragPiece(envoy.A, force.White, piece.Pawn, from))

	_, err := a.DragPieceDrop(from, piece.Queen)
	assert.True(t, gameerror.Of(gameerror.Cancelled).Is(err), "dropping back on source: err = %v, want Cancelled", err)
}

func TestDragPieceDropProducesMove(t *testing.T) {
	a := newTestAlteredGame(t)
	from := square.New(square.FileE, square.Rank2)
	to := square.New(square.FileE, square.Rank4)
	require.NoError(t, a.StartDragPiece(envoy.A, force.White, piece.Pawn, from))

	input, err := a.DragPieceDrop(to, piece.Queen)
	require.NoError(t, err)
	require.Equal(t, turn.InputDragDrop, input.Kind, "DragPieceDrop should wrap its result as InputDragDrop")
	assert.Equal(t, turn.KindMove, input.DragDrop.Kind, "DragPieceDrop of a quiet pawn push should produce a Move turn")
}

func TestFreezeDisablesLocalTurnsAndUnfreezeRestores(t *testing.T) {
	a := newTestAlteredGame(t)
	a.Freeze(0)
	require.True(t, a.IsFrozen())

	from := square.New(square.FileE, square.Rank2)
	to := square.New(square.FileE, square.Rank4)
	_, err := a.TryLocalTurn(envoy.A, turn.NewExplicitInput(turn.NewMove(from, to)), time.Now())
	assert.True(t, gameerror.Of(gameerror.GameOver).Is(err), "TryLocalTurn while frozen: err = %v, want GameOver", err)

	a.Unfreeze()
	require.False(t, a.IsFrozen())

	_, err = a.TryLocalTurn(envoy.A, turn.NewExplicitInput(turn.NewMove(from, to)), time.Now())
	assert.NoError(t, err, "TryLocalTurn after Unfreeze")
}

func TestCancelPreturnClearsOverlay(t *testing.T) {
	a := newTestAlteredGame(t)
	// Drain White's turn so Black becomes the local mover and board A's
	// White perspective must file its next turn as a preturn.
	from := square.New(square.FileE, square.Rank2)
	to := square.New(square.FileE, square.Rank4)
	_, err := a.TryLocalTurn(envoy.A, turn.NewExplicitInput(turn.NewMove(from, to)), time.Now())
	require.NoError(t, err)

	preFrom := square.New(square.FileD, square.Rank2)
	preTo := square.New(square.FileD, square.Rank4)
	_, err = a.TryLocalTurn(envoy.A, turn.NewExplicitInput(turn.NewMove(preFrom, preTo)), time.Now())
	require.NoError(t, err)

	a.CancelPreturn(envoy.A)
	local := a.LocalGame().Board(envoy.A)
	assert.True(t, local.Grid.IsEmpty(preTo), "cancelled preturn should not be reflected in the local game")
}
