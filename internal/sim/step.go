package sim

// StepInput is everything the step reads from outside the world.
// Bounds are passed every tick so a resize between ticks takes effect at once.
type StepInput struct {
	DX, DY int // held direction, each in -1..1
	Width  float64
	Height float64
	Tick   int // tick counter after increment for this tick
	Score  int // score before this tick's kills
}

// Hit records one bullet consumed by an enemy.
type Hit struct {
	Bullet *Bullet
	Enemy  *Enemy
}

// StepResult reports what happened during one step. GameState changes are
// derived from it by the controller; the step never touches them.
type StepResult struct {
	Fired      *Bullet
	Spawned    *Enemy
	Hits       []Hit
	Kills      []*Enemy
	Escaped    []*Enemy
	Collisions []*Enemy // enemies that reached the player
	GameOver   bool
}

// ScoreDelta sums the score value of every enemy killed this step.
func (r StepResult) ScoreDelta() int {
	total := 0
	for _, e := range r.Kills {
		total += e.Score
	}
	return total
}

// Step advances the world by one tick. Phases run in a fixed order:
//  1. input  2. auto-fire  3. bullets  4. spawn  5. enemies + player collision
//  6. bullet/enemy collision  7. off-screen cull
func Step(w *World, in StepInput, sp *Spawner) StepResult {
	var res StepResult

	// 1. INPUT: apply held directions, then clamp into the current bounds.
	w.Player.X += float64(in.DX) * PlayerSpeed
	w.Player.Y += float64(in.DY) * PlayerSpeed
	w.Player.X = clamp(w.Player.X, BoundsMargin, in.Width-BoundsMargin)
	w.Player.Y = clamp(w.Player.Y, BoundsMargin, in.Height-BoundsMargin)

	// 2. AUTO-FIRE
	if in.Tick%FireInterval == 0 {
		b := w.newBullet(w.Player)
		w.Bullets = append(w.Bullets, b)
		res.Fired = b
	}

	// 3. BULLETS
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		b.Pos = b.Pos.Add(b.Velocity)
		if b.Pos.Y < BulletCullY {
			continue
		}
		kept = append(kept, b)
	}
	clearTail(w.Bullets, len(kept))
	w.Bullets = kept

	// 4. SPAWN
	if sp != nil {
		if t, pos, ok := sp.Roll(in.Width, in.Score); ok {
			e := w.newEnemy(t, pos)
			w.Enemies = append(w.Enemies, e)
			res.Spawned = e
		}
	}

	// 5. ENEMIES: every enemy advances even after a collision is found;
	// the game-over flag stays latched for the rest of the tick.
	for _, e := range w.Enemies {
		e.Pos.Y += e.Type.Speed()
		if circlesOverlap(e.Pos, e.Radius, w.Player, PlayerRadius) {
			res.Collisions = append(res.Collisions, e)
			res.GameOver = true
		}
	}

	// 6. BULLET/ENEMY COLLISION
	res.Hits = resolveHits(w)
	for _, h := range res.Hits {
		if h.Enemy.Health <= 0 && !containsEnemy(res.Kills, h.Enemy) {
			res.Kills = append(res.Kills, h.Enemy)
		}
	}

	// 7. CULL: anything still alive below the playfield leaves without score.
	limit := in.Height + EnemyCullMargin
	alive := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Pos.Y > limit {
			res.Escaped = append(res.Escaped, e)
			continue
		}
		alive = append(alive, e)
	}
	clearTail(w.Enemies, len(alive))
	w.Enemies = alive

	return res
}

// resolveHits is a two-pass collision scan. The first pass assigns each
// bullet to the first enemy (in insertion order) it overlaps, against the
// positions after movement. The second pass commits: consumed bullets are
// removed, health is reduced once per hit and dead enemies are removed.
// A bullet is consumed by at most one enemy; several bullets may strike the
// same enemy in one tick.
func resolveHits(w *World) []Hit {
	var hits []Hit
	consumed := make(map[*Bullet]bool)
	for _, b := range w.Bullets {
		for _, e := range w.Enemies {
			if circlesOverlap(b.Pos, b.Radius, e.Pos, e.Radius) {
				hits = append(hits, Hit{Bullet: b, Enemy: e})
				consumed[b] = true
				break
			}
		}
	}
	if len(hits) == 0 {
		return nil
	}

	for _, h := range hits {
		if h.Enemy.Health > 0 {
			h.Enemy.Health--
		}
	}

	bullets := w.Bullets[:0]
	for _, b := range w.Bullets {
		if !consumed[b] {
			bullets = append(bullets, b)
		}
	}
	clearTail(w.Bullets, len(bullets))
	w.Bullets = bullets

	enemies := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Health > 0 {
			enemies = append(enemies, e)
		}
	}
	clearTail(w.Enemies, len(enemies))
	w.Enemies = enemies

	return hits
}

func containsEnemy(list []*Enemy, e *Enemy) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// clearTail nils the slots past n so filtered-out entities can be collected.
func clearTail[T any](s []*T, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}
