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

// Package notation parses and formats algebraic bughouse turns and
// exports completed games as BPGN or PGN-pair documents (spec §4.7,
// C3). Parsing here is purely syntactic: it recognizes the shape of an
// algebraic string and reports what it names, leaving disambiguation
// against an actual position to pkg/bgboard, which knows which pieces
// can reach which squares.
package notation

import (
	"strings"

	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/gameerror"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

// Kind discriminates the syntactic shape a parsed algebraic string took.
type Kind int

const (
	KindMove Kind = iota
	KindDrop
	KindCastle
	KindDuck
)

// Parsed is the syntactic decomposition of one algebraic turn string,
// before any grid-dependent disambiguation or legality check.
type Parsed struct {
	Kind Kind

	PieceKind piece.Kind // mover for Move/Drop; zero for Castle/Duck

	// DisambigFile/DisambigRank narrow the origin square when the
	// notation carries one (e.g. "Nbd2", "R1a3"); -1 means "not
	// given".
	DisambigFile square.File
	DisambigRank square.Rank

	Capture bool
	To      square.Square

	// Promotion, when PromotionKind != turn.NoPromotion equivalent:
	HasPromotion bool
	UpgradeTo    piece.Kind    // valid when StealSource == square.None
	StealSource  square.Square // valid when != square.None: steal promotion

	Check bool
	Mate  bool

	CastleSide castling.Side // valid when Kind == KindCastle
}

// ParseAlgebraic decomposes an algebraic turn string into its syntactic
// parts. It does not consult a position, so it cannot detect ambiguity
// or illegal trajectories; pkg/bgboard layers that on top.
func ParseAlgebraic(s string) (Parsed, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Parsed{}, gameerror.New(gameerror.InvalidNotation, "empty turn string")
	}

	suffix := ""
	for len(s) > 0 {
		last := s[len(s)-1]
		if last == '+' || last == '#' {
			suffix = string(last) + suffix
			s = s[:len(s)-1]
			continue
		}
		break
	}

	switch s {
	case "O-O", "0-0":
		return Parsed{Kind: KindCastle, CastleSide: castling.HSide, Check: strings.Contains(suffix, "+"), Mate: strings.Contains(suffix, "#")}, nil
	case "O-O-O", "0-0-0":
		return Parsed{Kind: KindCastle, CastleSide: castling.ASide, Check: strings.Contains(suffix, "+"), Mate: strings.Contains(suffix, "#")}, nil
	}

	if strings.HasPrefix(s, "@") {
		to, ok := square.NewFromString(s[1:])
		if !ok {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "bad duck placement square %q", raw)
		}
		return Parsed{Kind: KindDuck, To: to}, nil
	}

	if idx := strings.IndexByte(s, '@'); idx >= 0 {
		kind, ok := piece.KindFromLetter(s[0])
		if !ok {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "bad drop piece in %q", raw)
		}
		to, ok := square.NewFromString(s[idx+1:])
		if !ok {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "bad drop square in %q", raw)
		}
		return Parsed{
			Kind: KindDrop, PieceKind: kind, To: to,
			Check: strings.Contains(suffix, "+"), Mate: strings.Contains(suffix, "#"),
		}, nil
	}

	return parseMove(raw, s, suffix)
}

func parseMove(raw, s, suffix string) (Parsed, error) {
	p := Parsed{
		Kind:         KindMove,
		PieceKind:    piece.Pawn,
		DisambigFile: -1,
		DisambigRank: -1,
		Check:        strings.Contains(suffix, "+"),
		Mate:         strings.Contains(suffix, "#"),
	}

	// Steal promotion: "e8/Rc1" - destination, slash, source square on
	// the partner board holding the piece to steal.
	if slash := strings.IndexByte(s, '/'); slash >= 0 {
		destPart := s[:slash]
		stealPart := s[slash+1:]
		if len(stealPart) < 3 {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "malformed steal promotion %q", raw)
		}
		kind, ok := piece.KindFromLetter(stealPart[0])
		if !ok {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "bad steal piece in %q", raw)
		}
		src, ok := square.NewFromString(stealPart[1:])
		if !ok {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "bad steal source square in %q", raw)
		}
		rest, err := parseMoveBody(raw, destPart, &p)
		if err != nil {
			return Parsed{}, err
		}
		_ = rest
		p.HasPromotion = true
		p.StealSource = src
		p.UpgradeTo = kind
		return p, nil
	}

	// Ordinary promotion: trailing "=Q" or bare "Q" after the destination.
	if eq := strings.IndexByte(s, '='); eq >= 0 {
		kind, ok := piece.KindFromLetter(s[eq+1])
		if !ok {
			return Parsed{}, gameerror.New(gameerror.InvalidNotation, "bad promotion piece in %q", raw)
		}
		if _, err := parseMoveBody(raw, s[:eq], &p); err != nil {
			return Parsed{}, err
		}
		p.HasPromotion = true
		p.StealSource = square.None
		p.UpgradeTo = kind
		return p, nil
	}

	if len(s) >= 2 {
		if kind, ok := piece.KindFromLetter(s[len(s)-1]); ok && kind != piece.Pawn {
			if _, err := parseMoveBody(raw, s[:len(s)-1], &p); err == nil {
				p.HasPromotion = true
				p.StealSource = square.None
				p.UpgradeTo = kind
				return p, nil
			}
		}
	}

	if _, err := parseMoveBody(raw, s, &p); err != nil {
		return Parsed{}, err
	}
	return p, nil
}

// parseMoveBody parses the piece-letter/disambiguation/capture/destination
// portion of a move, writing into p and returning the body with the
// piece letter and capture mark removed.
func parseMoveBody(raw, s string, p *Parsed) (string, error) {
	if s == "" {
		return "", gameerror.New(gameerror.InvalidNotation, "empty move body in %q", raw)
	}

	if kind, ok := piece.KindFromLetter(s[0]); ok && kind != piece.Pawn {
		p.PieceKind = kind
		s = s[1:]
	}

	for _, mark := range []string{"x", "×", ":"} {
		if idx := strings.Index(s, mark); idx >= 0 {
			p.Capture = true
			s = s[:idx] + s[idx+len(mark):]
			break
		}
	}

	if len(s) < 2 {
		return "", gameerror.New(gameerror.InvalidNotation, "missing destination in %q", raw)
	}

	dest := s[len(s)-2:]
	to, ok := square.NewFromString(dest)
	if !ok {
		return "", gameerror.New(gameerror.InvalidNotation, "bad destination square in %q", raw)
	}
	p.To = to

	disambig := s[:len(s)-2]
	switch len(disambig) {
	case 0:
	case 1:
		if f, ok := square.FileFromByte(disambig[0]); ok {
			p.DisambigFile = f
		} else if r, ok := square.RankFromByte(disambig[0]); ok {
			p.DisambigRank = r
		} else {
			return "", gameerror.New(gameerror.InvalidNotation, "bad disambiguation in %q", raw)
		}
	case 2:
		from, ok := square.NewFromString(disambig)
		if !ok {
			return "", gameerror.New(gameerror.InvalidNotation, "bad disambiguation square in %q", raw)
		}
		p.DisambigFile = from.File()
		p.DisambigRank = from.Rank()
	default:
		return "", gameerror.New(gameerror.InvalidNotation, "unrecognized move body in %q", raw)
	}

	return s, nil
}

// FormatMove renders a resolved move's algebraic form. needsFile/needsRank
// are computed by the caller against the live position: true when another
// like piece could also reach to, requiring that axis to disambiguate.
func FormatMove(kind piece.Kind, from, to square.Square, needsFile, needsRank, capture bool, promo *FormatPromotion, check, mate bool) string {
	var b strings.Builder
	if kind != piece.Pawn {
		b.WriteByte(kindLetter(kind))
	}
	if kind == piece.Pawn && capture {
		b.WriteByte('a' + byte(from.File()))
	} else {
		if needsFile {
			b.WriteByte('a' + byte(from.File()))
		}
		if needsRank {
			b.WriteByte('1' + byte(from.Rank()))
		}
	}
	if capture {
		b.WriteByte('x')
	}
	b.WriteString(to.String())
	if promo != nil {
		if promo.StealSource != square.None {
			b.WriteByte('/')
			b.WriteByte(kindLetter(promo.UpgradeTo))
			b.WriteString(promo.StealSource.String())
		} else {
			b.WriteByte('=')
			b.WriteByte(kindLetter(promo.UpgradeTo))
		}
	}
	appendSuffix(&b, check, mate)
	return b.String()
}

// FormatPromotion carries the promotion detail FormatMove needs.
type FormatPromotion struct {
	UpgradeTo   piece.Kind
	StealSource square.Square // square.None for a non-steal upgrade
}

// FormatDrop renders a drop turn's algebraic form, e.g. "N@f3".
func FormatDrop(kind piece.Kind, to square.Square, check, mate bool) string {
	var b strings.Builder
	b.WriteByte(kindLetter(kind))
	b.WriteByte('@')
	b.WriteString(to.String())
	appendSuffix(&b, check, mate)
	return b.String()
}

// FormatDuck renders a duck placement, e.g. "@e3".
func FormatDuck(to square.Square) string {
	return "@" + to.String()
}

// FormatCastle renders a castling turn.
func FormatCastle(side castling.Side, check, mate bool) string {
	var b strings.Builder
	if side == castling.HSide {
		b.WriteString("O-O")
	} else {
		b.WriteString("O-O-O")
	}
	appendSuffix(&b, check, mate)
	return b.String()
}

func appendSuffix(b *strings.Builder, check, mate bool) {
	switch {
	case mate:
		b.WriteByte('#')
	case check:
		b.WriteByte('+')
	}
}

func kindLetter(k piece.Kind) byte {
	s := k.String()
	if s == "" {
		return '?'
	}
	return s[0]
}
