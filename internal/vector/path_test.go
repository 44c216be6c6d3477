/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRoundedRectPathBounds(t *testing.T) {
	p := RoundedRectPath(R(10, 20, 100, 50), 12, false)
	b := p.Bounds()
	if FloatRound(b.X, 3) != 10 || FloatRound(b.Y, 3) != 20 || FloatRound(b.W, 3) != 100 || FloatRound(b.H, 3) != 50 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
	if got, want := len(p.Points()), 4*(arcSegments+1); got != want {
		t.Fatalf("points = %d, want %d", got, want)
	}
}

func TestRoundedRectPathTopOnly(t *testing.T) {
	p := RoundedRectPath(R(0, 0, 40, 40), 10, true)
	pts := p.Points()
	if got, want := len(pts), 2*(arcSegments+1)+2; got != want {
		t.Fatalf("points = %d, want %d", got, want)
	}
	if pts[len(pts)-1] != (Pt{0, 40}) || pts[len(pts)-2] != (Pt{40, 40}) {
		t.Fatalf("bottom corners should be square: %v", pts[len(pts)-2:])
	}
}

func TestRoundedRectPathClampsRadius(t *testing.T) {
	p := RoundedRectPath(R(0, 0, 10, 4), 50, false)
	b := p.Bounds()
	if FloatRound(b.W, 3) != 10 || FloatRound(b.H, 3) != 4 {
		t.Fatalf("radius not clamped: %+v", b)
	}
}

func TestEllipsePathAndReverse(t *testing.T) {
	p := EllipsePath(R(0, 0, 20, 10))
	b := p.Bounds()
	if FloatRound(b.W, 3) != 20 || FloatRound(b.H, 3) != 10 {
		t.Fatalf("unexpected ellipse bounds: %+v", b)
	}
	fwd := p.Points()
	rev := p.Reverse().Points()
	if len(fwd) != len(rev) || fwd[0] != rev[len(rev)-1] {
		t.Fatalf("reverse mismatch")
	}
}
