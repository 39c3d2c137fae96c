package mazerun

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/raycast"
)

// playerWallTexture names the texture drawn for walls the player places.
const playerWallTexture = "player"

// controls is the movement intent for one tick.
type controls struct {
	forward, backward       bool
	turnLeft, turnRight     bool
	strafeLeft, strafeRight bool
	run, crawl              bool
}

func (c controls) moving() bool {
	return c.forward || c.backward || c.strafeLeft || c.strafeRight
}

// escapeAttempt tracks a catch in progress.
type escapeAttempt struct {
	elapsed float64
	presses int
}

// session is one attempt at one level: the maze state plus every timer
// the game layer keeps around it.
type session struct {
	cfg        config.MazeConfig
	difficulty *config.DifficultyManager
	level      *maze.Level
	camera     Camera

	started      bool
	time         float64 // seconds since the first move
	moves        float64 // tiles walked
	monsterTimer float64
	escape       *escapeAttempt

	hasGun bool

	compassShown  bool
	compassCharge float64
	compassBurned bool
	compassIdle   float64 // seconds since the compass last drained

	sensorLeft   float64
	wallCooldown float64

	reported  bool
	notice    string
	noticeTTL float64

	hints hintCache
}

func newSession(level *maze.Level, cfg config.MazeConfig) *session {
	s := &session{level: level}
	s.configure(cfg)
	s.reset()
	return s
}

// configure swaps the configuration without touching progress.
func (s *session) configure(cfg config.MazeConfig) {
	s.cfg = cfg
	s.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	if s.camera.Facing.LenSquared() == 0 {
		s.camera = NewCamera(cfg.Display.PlaneLength())
	} else {
		s.camera = s.camera.WithPlaneLength(cfg.Display.PlaneLength())
	}
	s.compassCharge = math.Min(s.compassCharge, cfg.Compass.Time)
}

// reset restarts the level from scratch.
func (s *session) reset() {
	s.level.Reset()
	s.camera = NewCamera(s.cfg.Display.PlaneLength())
	s.started = false
	s.time = 0
	s.moves = 0
	s.monsterTimer = 0
	s.escape = nil
	s.hasGun = false
	s.compassShown = false
	s.compassCharge = s.cfg.Compass.Time
	s.compassBurned = false
	s.compassIdle = 0
	s.sensorLeft = 0
	s.wallCooldown = 0
	s.reported = false
	s.notice = ""
	s.noticeTTL = 0
	s.hints = hintCache{}
}

func (s *session) say(msg string) {
	s.notice = msg
	s.noticeTTL = 3
}

func (s *session) options() raycast.Options {
	return raycast.Options{
		EdgeAsWall:   s.cfg.Display.EdgeAsWall,
		SolidMarkers: s.cfg.Display.SolidMarkers,
		SpriteRange:  s.cfg.Display.SpriteRange,
	}
}

// monsterWait is the delay before the monster first moves.
func (s *session) monsterWait() (float64, bool) {
	if s.cfg.Monster.StartOverride != nil {
		return *s.cfg.Monster.StartOverride, true
	}
	return s.level.MonsterWait()
}

// step advances the session by dt seconds. in carries this tick's key
// presses and ctl the held movement keys. It returns a result on the tick
// the level is won or lost.
func (s *session) step(in core.InputFrame, ctl controls, mapBlocks bool, dt float64) *core.RunResult {
	if s.level.Finished() {
		return s.report()
	}

	if s.noticeTTL > 0 {
		s.noticeTTL -= dt
		if s.noticeTTL <= 0 {
			s.notice = ""
		}
	}

	s.commands(in)

	var events maze.EventSet
	if s.escape != nil {
		s.stepEscape(in, dt)
	} else if !mapBlocks {
		events = s.move(ctl, dt)
	}
	s.handle(events)

	if s.started {
		s.time += dt
	}
	s.stepItems(dt)
	s.stepCompass(dt)
	s.stepMonster(dt)

	return s.report()
}

// commands applies the one-shot actions of a tick.
func (s *session) commands(in core.InputFrame) {
	if in.Has(core.ActionCompass) {
		s.compassShown = !s.compassShown
	}
	if in.Has(core.ActionFlag) {
		if set, err := s.level.ToggleFlag(s.level.PlayerTile()); err == nil {
			if set {
				s.say("flag placed")
			} else {
				s.say("flag removed")
			}
		}
	}
	if in.Has(core.ActionFire) {
		s.fire()
	}
	if in.Has(core.ActionPlaceWall) {
		s.placeWall()
	}
}

// move applies held movement and returns the events the move raised.
func (s *session) move(ctl controls, dt float64) maze.EventSet {
	turn := 0.0
	if ctl.turnRight {
		turn += s.cfg.Movement.TurnSpeed * dt
	}
	if ctl.turnLeft {
		turn -= s.cfg.Movement.TurnSpeed * dt
	}
	if turn != 0 {
		s.camera = s.camera.Turn(turn)
	}
	if !ctl.moving() {
		return 0
	}

	speed := s.cfg.Movement.MoveSpeed * dt
	if ctl.run {
		speed *= s.cfg.Movement.RunMultiplier
	}
	if ctl.crawl {
		speed *= s.cfg.Movement.CrawlMultiplier
	}

	var delta maze.Vec
	if ctl.forward {
		delta = delta.Add(s.camera.Facing)
	}
	if ctl.backward {
		delta = delta.Sub(s.camera.Facing)
	}
	right := s.camera.Right()
	if ctl.strafeRight {
		delta = delta.Add(right)
	}
	if ctl.strafeLeft {
		delta = delta.Sub(right)
	}
	l := math.Sqrt(delta.LenSquared())
	if l == 0 {
		return 0
	}
	delta = delta.Scale(speed / l)

	s.started = true
	before := s.level.PlayerPos()
	events := s.level.MovePlayer(delta, s.hasGun, true, s.cfg.Movement.Collision)
	s.moves += math.Sqrt(maze.DistanceSquared(before, s.level.PlayerPos()))
	return events
}

func (s *session) handle(events maze.EventSet) {
	if events.Has(maze.EventPickedUpKey) {
		got, total := s.level.KeysCollected()
		if got == total {
			s.say("all keys found, the exit is open")
		} else {
			s.say("key found")
		}
	}
	if events.Has(maze.EventPickedUpKeySensor) {
		s.sensorLeft = s.cfg.Items.KeySensorTime
		s.say("key sensor active")
	}
	if events.Has(maze.EventPickedUpGun) {
		s.hasGun = true
		s.say("picked up a gun")
	}
	if events.Has(maze.EventMonsterCaught) {
		s.caught()
	}
}

func (s *session) caught() {
	if !s.cfg.Monster.Killing || s.escape != nil {
		return
	}
	s.escape = &escapeAttempt{}
}

func (s *session) stepEscape(in core.InputFrame, dt float64) {
	if in.Has(core.ActionForward) {
		s.escape.presses++
	}
	if s.escape.presses >= s.cfg.Monster.PressesToEscape {
		s.level.RemoveMonster()
		s.escape = nil
		s.say("you broke free")
		return
	}
	s.escape.elapsed += dt
	if s.escape.elapsed > s.cfg.Monster.TimeToEscape {
		s.level.Kill()
		s.escape = nil
	}
}

// fire shoots along the facing direction. The gun is used up either way.
func (s *session) fire() {
	if !s.hasGun {
		return
	}
	s.hasGun = false
	_, sprites := raycast.FirstCollision(s.level, s.camera.Facing, s.options())
	for _, sp := range sprites {
		if sp.Kind == raycast.SpriteMonster {
			s.level.RemoveMonster()
			s.say("the monster is gone")
			return
		}
	}
	s.say("missed")
}

func (s *session) placeWall() {
	if !s.started || s.wallCooldown > 0 {
		return
	}
	if _, ok := s.level.PlayerWall(); ok {
		return
	}
	dx, dy := s.camera.Ahead()
	target := s.level.PlayerTile().Add(dx, dy)
	if err := s.level.PlaceWall(target, s.time, maze.UniformWall(playerWallTexture)); err != nil {
		s.say("cannot build there")
		return
	}
	s.say("wall placed")
}

func (s *session) stepItems(dt float64) {
	if s.sensorLeft > 0 {
		s.sensorLeft = math.Max(0, s.sensorLeft-dt)
	}
	if s.wallCooldown > 0 {
		s.wallCooldown = math.Max(0, s.wallCooldown-dt)
	}
	if s.level.ExpirePlayerWall(s.time, s.cfg.Items.PlayerWallTime) {
		s.wallCooldown = s.cfg.Items.PlayerWallCooldown
	}
}

// stepCompass drains the charge while the compass points at a monster and
// recharges it otherwise. A burned-out compass recharges at once at the
// burn rate and only works again when full.
func (s *session) stepCompass(dt float64) {
	_, monster := s.level.Monster()
	if s.compassShown && monster && !s.compassBurned {
		s.compassIdle = 0
		s.compassCharge -= dt
		if s.compassCharge <= 0 {
			s.compassCharge = 0
			s.compassBurned = true
			s.say("compass burned out")
		}
		return
	}

	s.compassIdle += dt
	full := s.cfg.Compass.Time
	if s.compassCharge >= full {
		s.compassCharge = full
		s.compassBurned = false
		return
	}
	switch {
	case s.compassBurned:
		s.compassCharge += dt / s.cfg.Compass.ChargeBurnMultiplier
	case s.compassIdle >= s.cfg.Compass.ChargeDelay:
		s.compassCharge += dt / s.cfg.Compass.ChargeNormMultiplier
	}
	if s.compassCharge >= full {
		s.compassCharge = full
		s.compassBurned = false
	}
}

// compassActive reports whether the compass is pointing this frame.
func (s *session) compassActive() bool {
	_, monster := s.level.Monster()
	return s.compassShown && monster && !s.compassBurned
}

func (s *session) stepMonster(dt float64) {
	if !s.cfg.Monster.Enabled || s.escape != nil || !s.started {
		return
	}
	switch s.level.MonsterState() {
	case maze.MonsterDormant, maze.MonsterActive:
	default:
		return
	}
	// The movement timer runs from the first move, so the monster steps
	// in on the first tick past its wait.
	s.monsterTimer += dt
	wait, ok := s.monsterWait()
	if !ok || s.time <= wait {
		return
	}
	if s.monsterTimer < s.difficulty.MonsterWait(s.cfg.Monster.MovementWait, s.time, s.moves) {
		return
	}
	s.monsterTimer = 0
	if s.level.MoveMonster() {
		s.caught()
	}
}

// report returns the run result once, on the first tick after the level
// ended.
func (s *session) report() *core.RunResult {
	if !s.level.Finished() || s.reported {
		return nil
	}
	s.reported = true
	s.escape = nil
	return &core.RunResult{
		LevelID: s.level.ID(),
		Time:    s.time,
		Moves:   s.moves,
		Won:     s.level.Won(),
	}
}
