package config

// GameConfig is the root config for game.json
type GameConfig struct {
	Display    DisplayConfig              `json:"display"`
	Physics    PhysicsSettings            `json:"physics"`
	Movement   MovementConfig             `json:"movement"`
	Jump       JumpConfig                 `json:"jump"`
	Collision  CollisionConfig            `json:"collision"`
	Sword      SwordConfig                `json:"sword"`
	Combat     CombatConfig               `json:"combat"`
	Round      RoundConfig                `json:"round"`
	Animations map[string]AnimationConfig `json:"animations"`
	Controls   []ControlsConfig           `json:"controls"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`      // pixels/sec²
	MaxFallSpeed float64 `json:"maxFallSpeed"` // pixels/sec
}

type MovementConfig struct {
	WalkSpeed float64 `json:"walkSpeed"` // pixels/sec
	// A movement key held shorter than this shows the step pose, longer walks
	StepThresholdMs float64 `json:"stepThresholdMs"`
	DropKickSpeed   float64 `json:"dropKickSpeed"` // pixels/sec
	DropKickDecel   float64 `json:"dropKickDecel"` // pixels/sec²
}

type JumpConfig struct {
	Force float64 `json:"force"` // initial upward speed, pixels/sec
	// The jump animation switches to its peak pose once the upward speed
	// drops below PeakThreshold, and to the falling pose once the downward
	// speed exceeds FallThreshold.
	PeakThreshold float64 `json:"peakThreshold"`
	FallThreshold float64 `json:"fallThreshold"`
	// Holding jump pushes upwards at HoldAccel (pixels/sec²) until the
	// extra speed gained reaches (MaxHoldScale-1) * Force.
	HoldAccel    float64 `json:"holdAccel"`
	MaxHoldScale float64 `json:"maxHoldScale"`
}

type CollisionConfig struct {
	GroundTolerance int `json:"groundTolerance"`
	WallTolerance   int `json:"wallTolerance"`
	WallBand        int `json:"wallBand"`
	ClashYTolerance int `json:"clashYTolerance"`
	PickupReach     int `json:"pickupReach"`
	CellSize        int `json:"cellSize"` // broad phase grid cell
}

type SwordConfig struct {
	Length       int     `json:"length"`
	ThrowSpeed   float64 `json:"throwSpeed"`   // pixels/sec
	ThrowGravity float64 `json:"throwGravity"` // pixels/sec²
}

type CombatConfig struct {
	HoldThresholdMs float64         `json:"holdThresholdMs"`
	RespawnMs       float64         `json:"respawnMs"`
	EmitterTTL      float64         `json:"emitterTTL"` // seconds
	Knockback       KnockbackConfig `json:"knockback"`
}

// RoundConfig is the countdown that opens a match. Controls stay locked
// for ReadyMs, then through the 3-2-1-GO count, each shown for CountMs.
type RoundConfig struct {
	ReadyMs float64 `json:"readyMs"`
	CountMs float64 `json:"countMs"`
}

type KnockbackConfig struct {
	Distance float64 `json:"distance"` // pixels
	Duration float64 `json:"duration"` // seconds
}

type AnimationConfig struct {
	FrameMs float64 `json:"frameMs"`
	Loop    bool    `json:"loop"`
}

// ControlsConfig binds one player's actions to ebiten key names
type ControlsConfig struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
	Up    []string `json:"up"`
	Down  []string `json:"down"`
	Stab  []string `json:"stab"`
	Jump  []string `json:"jump"`
}
