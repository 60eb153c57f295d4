package game

// Table geometry and simulation tuning. Units are abstract table units;
// the standard table is 2000x1000 centered on the origin with screen-style
// Y (top edge is negative Y).

const (
	TableWidth  = 2000.0
	TableHeight = 1000.0

	BallRadius   = 20.0
	CushionWidth = 12.0
	PocketRadius = 34.0
	NumBalls     = 10 // 0 = cue, 1-9 = object balls

	// The "D": cue ball placement zone anchored on the baulk spot, a
	// quarter table width in from the left cushion.
	BaulkSpotX  = -TableWidth / 4
	BaulkRadius = 180.0

	// Authoritative mover.
	RollFriction       = 0.12 // speed lost per tick
	MinVelocity        = 0.05 // below this a ball is parked
	CushionRestitution = 0.72
	BallRestitution    = 0.94
	MaxShotPower       = 60.0
	MaxBallSpeed       = 70.0

	// Trajectory prediction. The trail is traced against boundaries inset by
	// half a ball radius plus the cushion lip, matching the visual contact
	// point rather than the center-crossing point.
	TrailInset = BallRadius/2 + CushionWidth

	TrailMaxSteps    = 320
	TrailStepSize    = 1.0
	TrailMaxBounces  = 5
	TrailSpeedFloor  = 0.5
	TrailFriction    = 0.985
	TrailRestitution = 0.75

	// Obstacle field.
	MaxObstacles          = 3
	ObstacleSpawnTicks    = 300 // ticks between spawn attempts
	ObstacleSpawnAttempts = 24
	ObstacleSpawnMargin   = 80.0

	ObstacleWarningTicks  = 90
	ObstacleActiveTicks   = 300
	ObstacleFadingTicks   = 60
	ObstacleLifetimeTicks = ObstacleWarningTicks + ObstacleActiveTicks + ObstacleFadingTicks

	ObstacleFieldRadius     = 150.0
	ObstacleEmergencyRadius = 10.0
	ObstacleEscapeDistance  = 45.0
	ObstacleEscapeSpeed     = 4.0
	ObstacleForceMax        = 2.5
	ObstacleForceMin        = 0.2
	ObstacleForceBlend      = 0.35
	ObstacleRotationStep    = 0.08
	ObstacleWobbleGain      = 0.3

	ObstaclePocketClearance = 120.0
	ObstacleBodyClearance   = 100.0
	ObstacleSpacing         = 200.0
)
