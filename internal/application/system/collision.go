package system

import (
	"fmt"
	"math"

	"github.com/solarlune/resolv"

	"github.com/younwookim/swordduel/internal/domain/anim"
	"github.com/younwookim/swordduel/internal/domain/entity"
	"github.com/younwookim/swordduel/internal/domain/geom"
	"github.com/younwookim/swordduel/internal/infrastructure/config"
)

const (
	tagSolid = "solid"
	tagDecor = "decor"
	tagProbe = "probe"
)

// Disarm is the outcome of the disarm rule for one tick
type Disarm int

const (
	DisarmNone Disarm = iota
	P1DisarmsP2
	P2DisarmsP1
)

// String returns the string representation of the disarm outcome
func (d Disarm) String() string {
	switch d {
	case P1DisarmsP2:
		return "p1_disarms_p2"
	case P2DisarmsP1:
		return "p2_disarms_p1"
	default:
		return "none"
	}
}

// Victim returns the side that loses its sword, -1 for DisarmNone
func (d Disarm) Victim() int {
	switch d {
	case P1DisarmsP2:
		return 1
	case P2DisarmsP1:
		return 0
	default:
		return -1
	}
}

// Terrain is a player's contact with the level
type Terrain struct {
	OnGround  bool
	WallLeft  bool
	WallRight bool
	HeadBump  bool
	Ground    *entity.Obstacle // obstacle the player stands on
}

// Contact is everything the collision engine found for one player
type Contact struct {
	Terrain

	HitOther   bool       // this player's sword reached the opponent's body
	Blocked    bool       // this player's attack met the opponent's guard
	BlockPoint geom.Point // tip position when blocked
	Kicked     bool       // this player was struck by a drop kick
	ThrownHit  bool       // this player was struck by a thrown sword
	ThrownBy   entity.EntityID
}

// Snapshot is the result of one collision pass. It is rebuilt every tick and
// never carried over.
type Snapshot struct {
	Players         [2]Contact
	SwordsColliding bool
	Disarm          Disarm
	ClashPoint      geom.Point
}

// WasStruck reports whether side took an unblocked sword hit from the opponent
func (s *Snapshot) WasStruck(side int) bool {
	o := s.Players[1-side]
	return o.HitOther && !o.Blocked
}

// CollisionEngine computes all pairwise relations between players, swords and
// terrain. Besides the level it keeps the previous animation of each player,
// which the disarm rule compares against.
type CollisionEngine struct {
	config *config.GameConfig

	solids []entity.Obstacle
	space  *resolv.Space
	probe  *resolv.Object
	near   []bool

	prev [2]anim.ID
}

// NewCollisionEngine builds the broad phase for a level
func NewCollisionEngine(level *entity.Level, cfg *config.GameConfig) *CollisionEngine {
	cell := cfg.Collision.CellSize
	if cell <= 0 {
		cell = 16
	}

	e := &CollisionEngine{
		config: cfg,
		solids: level.Solids(),
		space:  resolv.NewSpace(level.Width, level.Height, cell, cell),
	}
	e.near = make([]bool, len(e.solids))

	for i, o := range e.solids {
		obj := resolv.NewObject(float64(o.X), float64(o.Y), float64(o.W), float64(o.H), tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, float64(o.W), float64(o.H)))
		obj.Data = i
		e.space.Add(obj)
	}
	for _, o := range level.Obstacles {
		if !o.Decor {
			continue
		}
		obj := resolv.NewObject(float64(o.X), float64(o.Y), float64(o.W), float64(o.H), tagDecor)
		e.space.Add(obj)
	}

	e.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	e.space.Add(e.probe)

	e.Reset()
	return e
}

// Reset forgets the previous animations, e.g. when a new match starts
func (e *CollisionEngine) Reset() {
	e.prev = [2]anim.ID{anim.IdleMid, anim.IdleMid}
}

// Previous returns the animation a side had at the end of the last Detect
func (e *CollisionEngine) Previous(side int) anim.ID {
	return e.prev[side]
}

// Detect runs one collision pass. loose are the swords of the world pool;
// only thrown ones can strike.
func (e *CollisionEngine) Detect(p1, p2 *entity.Player, loose []entity.Sword) (Snapshot, error) {
	var snap Snapshot
	players := [2]*entity.Player{p1, p2}

	var frames [2]anim.Frame
	for i, p := range players {
		snap.Players[i].Terrain = e.terrain(p.WorldBox())

		f, err := p.Anim.CurrentFrame(p.Facing)
		if err != nil {
			return Snapshot{}, fmt.Errorf("player %d: %w", i+1, err)
		}
		if swordOut(p) && !f.HasGrip && e.config.Sword.Length > 0 {
			return Snapshot{}, fmt.Errorf("player %d %s frame %d: %w",
				i+1, p.Anim.ID(), p.Anim.Frame(), anim.ErrMissingGrip)
		}
		frames[i] = f
	}

	for a := 0; a < 2; a++ {
		d := 1 - a
		hit, blocked, tip := e.strike(players[a], players[d], frames[a], frames[d])
		snap.Players[a].HitOther = hit
		snap.Players[a].Blocked = blocked
		if blocked {
			snap.Players[a].BlockPoint = tip
		}

		if e.kicks(players[a], players[d], frames[a], frames[d]) {
			snap.Players[d].Kicked = true
		}
	}

	e.thrown(&snap, players, loose)

	if swordOut(p1) && swordOut(p2) && p1.Alive && p2.Alive {
		snap.SwordsColliding, snap.ClashPoint = e.clash(p1, p2, frames[0], frames[1])
		if snap.SwordsColliding {
			snap.Disarm = e.disarm(p1.Anim.ID(), p2.Anim.ID())
		}
	}

	e.prev[0] = p1.Anim.ID()
	e.prev[1] = p2.Anim.ID()
	return snap, nil
}

// swordOut reports whether a player holds a sword in a pose that shows it
func swordOut(p *entity.Player) bool {
	return p.Armed() && anim.SwordBearing(p.Anim.ID())
}

// SwordTip returns the blade tip for a grip in world pixels
func SwordTip(grip geom.Point, angle float64, dir geom.Direction, length int) geom.Point {
	rad := angle * math.Pi / 180
	dx := int(math.Round(float64(length) * math.Cos(rad)))
	dy := int(math.Round(float64(length) * math.Sin(rad)))
	return geom.Point{X: grip.X + dx*dir.Sign(), Y: grip.Y + dy}
}

func (e *CollisionEngine) grip(p *entity.Player, f anim.Frame) geom.Point {
	return p.Pixel().Add(f.Grip)
}

func (e *CollisionEngine) tip(p *entity.Player, f anim.Frame) geom.Point {
	return SwordTip(e.grip(p, f), f.Angle, p.Facing, e.config.Sword.Length)
}

// strike tests the attacker's sword against the defender's guard and body.
// The guard test comes first and does not suppress the body test; the
// combat system decides what a blocked hit means.
func (e *CollisionEngine) strike(a, d *entity.Player, fa, fd anim.Frame) (hit, blocked bool, tip geom.Point) {
	if !a.Alive || !d.Alive || !swordOut(a) {
		return false, false, tip
	}
	if anim.StabSuspended(a.Anim.ID()) || !anim.Attackable(d.Anim.ID()) {
		return false, false, tip
	}

	tip = e.tip(a, fa)
	blocked = e.guards(d, fd, tip)
	hit = StabHits(tip, d.Pixel(), fd.Outline)
	return hit, blocked, tip
}

// guards reports whether a defender in the block pose stops a tip
func (e *CollisionEngine) guards(d *entity.Player, fd anim.Frame, tip geom.Point) bool {
	if d.Anim.ID() != anim.HoldUp || !fd.HasGrip {
		return false
	}
	block := e.grip(d, fd)
	if tip.Y < block.Y-e.config.Sword.Length || tip.Y > block.Y {
		return false
	}
	if d.Facing == geom.Right {
		return tip.X <= block.X
	}
	return tip.X >= block.X
}

// StabHits is the sword-versus-body test. The first two outline points (in
// outline order) on the tip's row span the body; the tip hits when it lies
// between them, edges included. With a single point the tip must touch it.
func StabHits(tip, origin geom.Point, outline []geom.Point) bool {
	var xs [2]int
	n := 0
	for _, pt := range outline {
		if origin.Y+pt.Y != tip.Y {
			continue
		}
		xs[n] = origin.X + pt.X
		n++
		if n == len(xs) {
			break
		}
	}
	switch n {
	case 0:
		return false
	case 1:
		xs[1] = xs[0]
	}
	return geom.Sign(tip.X-xs[0])*geom.Sign(tip.X-xs[1]) <= 0
}

// clash reports whether the two blades cross: the tips are on the same row
// within tolerance and the first tip lies between the second sword's tip and grip.
func (e *CollisionEngine) clash(p1, p2 *entity.Player, f1, f2 anim.Frame) (bool, geom.Point) {
	t1 := e.tip(p1, f1)
	t2 := e.tip(p2, f2)
	g2 := e.grip(p2, f2)

	if geom.Abs(t1.Y-t2.Y) > e.config.Collision.ClashYTolerance {
		return false, geom.Point{}
	}
	if geom.Sign(t1.X-t2.X)*geom.Sign(t1.X-g2.X) > 0 {
		return false, geom.Point{}
	}
	return true, t1
}

// disarm applies the disarm rule to colliding swords. Both players must show
// the same animation, exactly one of them must have just entered it, and
// neither may have been stepping or walking. The player who held the pose
// disarms the one who moved into it.
func (e *CollisionEngine) disarm(cur1, cur2 anim.ID) Disarm {
	prev1, prev2 := e.prev[0], e.prev[1]
	if cur1 != cur2 || prev1 == prev2 {
		return DisarmNone
	}
	if anim.IsMoving(prev1) || anim.IsMoving(prev2) {
		return DisarmNone
	}
	switch {
	case cur1 == prev1:
		return P1DisarmsP2
	case cur2 == prev2:
		return P2DisarmsP1
	}
	return DisarmNone
}

// kicks reports whether a drop-kicking attacker touches the defender
func (e *CollisionEngine) kicks(a, d *entity.Player, fa, fd anim.Frame) bool {
	if !a.Alive || !d.Alive || a.Anim.ID() != anim.DropKick || !anim.Attackable(d.Anim.ID()) {
		return false
	}
	return fa.Bounds.Translate(a.Pixel()).Overlaps(fd.Bounds.Translate(d.Pixel()))
}

// thrown marks players struck by a sword in flight. A sword never strikes its thrower.
func (e *CollisionEngine) thrown(snap *Snapshot, players [2]*entity.Player, loose []entity.Sword) {
	for _, s := range loose {
		if s.State != entity.SwordThrown {
			continue
		}
		tip := s.Tip(e.config.Sword.Length)
		for i, p := range players {
			if !p.Alive || p.Side == s.Owner || snap.Players[i].ThrownHit {
				continue
			}
			if p.WorldBox().Contains(tip) {
				snap.Players[i].ThrownHit = true
				snap.Players[i].ThrownBy = s.ID
			}
		}
	}
}

// terrain finds the player's contacts with the level. Candidates come from the
// broad phase and are scanned in level order; the first obstacle that yields
// both a wall and a ground contact ends the scan.
func (e *CollisionEngine) terrain(box geom.Rect) Terrain {
	var t Terrain

	gT := e.config.Collision.GroundTolerance
	wT := e.config.Collision.WallTolerance
	band := e.config.Collision.WallBand

	pad := max(gT, wT) + 1
	e.probe.X = float64(box.X - pad)
	e.probe.Y = float64(box.Y - pad)
	e.probe.W = float64(box.W + 2*pad)
	e.probe.H = float64(box.H + 2*pad)
	e.probe.Update()

	check := e.probe.Check(0, 0, tagSolid)
	if check == nil {
		return t
	}
	clear(e.near)
	for _, obj := range check.ObjectsByTags(tagSolid) {
		if i, ok := obj.Data.(int); ok {
			e.near[i] = true
		}
	}

	for i := range e.solids {
		if !e.near[i] {
			continue
		}
		o := &e.solids[i]

		overX := box.X+wT <= o.Right() && box.Right()-wT >= o.X
		inBand := box.Y+band <= o.Bottom() && box.Bottom()-band >= o.Y

		if overX && box.Bottom() <= o.Bottom() && box.Bottom()+gT >= o.Y {
			t.OnGround = true
			t.Ground = o
		}
		if overX && box.Y >= o.Y && box.Y-gT <= o.Bottom() {
			t.HeadBump = true
		}
		if inBand && box.Right()+wT >= o.X && box.Right() <= o.Right() {
			t.WallRight = true
		} else if inBand && box.X >= o.X && box.X-wT <= o.Right() {
			t.WallLeft = true
		}

		if t.OnGround && (t.WallLeft || t.WallRight) {
			break
		}
	}
	return t
}
