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

// Package castling tracks which rook, if any, each force may still
// castle with on each side of the king, naming the rook by its starting
// file rather than assuming it sits on A or H. Fischer random setups
// routinely start a rook anywhere between B and G, so "the rook that
// started on column X" is the only representation that survives both
// classical and shuffled starts.
package castling

import "laptudirm.com/x/bughouse/pkg/force"

// Side names which wing a castling move heads towards. It is not always
// the same as "kingside"/"queenside" once the king's own starting file
// varies under Fischer random, so spec §3 calls it a-side/h-side: the
// side of the board the rook originally stood on.
type Side int8

const (
	ASide Side = iota
	HSide

	SideN = 2
)

func (s Side) String() string {
	if s == ASide {
		return "a-side"
	}
	return "h-side"
}

// NoFile marks a side with no remaining (or never granted) right.
const NoFile = -1

// Rights records, per force and per side, the file of the rook that may
// still participate in castling, or NoFile if that right is gone.
type Rights struct {
	file [2][2]int8 // [force][side] -> file (0-7) or NoFile
}

// New returns a Rights value with no rights granted.
func New() Rights {
	var r Rights
	r.file[force.White][ASide] = NoFile
	r.file[force.White][HSide] = NoFile
	r.file[force.Black][ASide] = NoFile
	r.file[force.Black][HSide] = NoFile
	return r
}

// Grant records that f may castle towards side with the rook currently
// on rookFile.
func (r *Rights) Grant(f force.Force, side Side, rookFile int8) {
	r.file[f][side] = rookFile
}

// Revoke removes f's right to castle on side.
func (r *Rights) Revoke(f force.Force, side Side) {
	r.file[f][side] = NoFile
}

// RevokeForce removes both of f's castling rights, as happens the
// moment f's king moves or is captured.
func (r *Rights) RevokeForce(f force.Force) {
	r.Revoke(f, ASide)
	r.Revoke(f, HSide)
}

// Has reports whether f still has a castling right on side.
func (r Rights) Has(f force.Force, side Side) bool {
	return r.file[f][side] != NoFile
}

// RookFile returns the file of the rook f may still castle with on
// side, and whether that right exists at all.
func (r Rights) RookFile(f force.Force, side Side) (int8, bool) {
	file := r.file[f][side]
	return file, file != NoFile
}

// IsZero reports whether no force has any remaining castling right.
func (r Rights) IsZero() bool {
	return r == New()
}
