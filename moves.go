package cubekit

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	state, err := cubekit.NewSolvedState().ApplyMoves(cubekit.R, cubekit.U, cubekit.RPrime, cubekit.UPrime)
var (
	// Right face moves
	R      = Move{Face: FaceR, Turn: CW, Duration: DefaultMoveDuration}     // Right clockwise
	RPrime = Move{Face: FaceR, Turn: CCW, Duration: DefaultMoveDuration}    // Right counter-clockwise
	R2     = Move{Face: FaceR, Turn: Double, Duration: DefaultMoveDuration} // Right 180

	// Left face moves
	L      = Move{Face: FaceL, Turn: CW, Duration: DefaultMoveDuration}     // Left clockwise
	LPrime = Move{Face: FaceL, Turn: CCW, Duration: DefaultMoveDuration}    // Left counter-clockwise
	L2     = Move{Face: FaceL, Turn: Double, Duration: DefaultMoveDuration} // Left 180

	// Up face moves
	U      = Move{Face: FaceU, Turn: CW, Duration: DefaultMoveDuration}     // Up clockwise
	UPrime = Move{Face: FaceU, Turn: CCW, Duration: DefaultMoveDuration}    // Up counter-clockwise
	U2     = Move{Face: FaceU, Turn: Double, Duration: DefaultMoveDuration} // Up 180

	// Down face moves
	D      = Move{Face: FaceD, Turn: CW, Duration: DefaultMoveDuration}     // Down clockwise
	DPrime = Move{Face: FaceD, Turn: CCW, Duration: DefaultMoveDuration}    // Down counter-clockwise
	D2     = Move{Face: FaceD, Turn: Double, Duration: DefaultMoveDuration} // Down 180

	// Front face moves
	F      = Move{Face: FaceF, Turn: CW, Duration: DefaultMoveDuration}     // Front clockwise
	FPrime = Move{Face: FaceF, Turn: CCW, Duration: DefaultMoveDuration}    // Front counter-clockwise
	F2     = Move{Face: FaceF, Turn: Double, Duration: DefaultMoveDuration} // Front 180

	// Back face moves
	B      = Move{Face: FaceB, Turn: CW, Duration: DefaultMoveDuration}     // Back clockwise
	BPrime = Move{Face: FaceB, Turn: CCW, Duration: DefaultMoveDuration}    // Back counter-clockwise
	B2     = Move{Face: FaceB, Turn: Double, Duration: DefaultMoveDuration} // Back 180
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
