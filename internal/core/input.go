package core

// Action represents a semantic player intent, abstracted from physical key presses.
// Front ends translate keys into actions and push them into a game at any time;
// an action whose precondition fails is silently ignored.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow - turn north (snake)
	ActionDown               // S, Down arrow - turn south (snake)
	ActionLeft               // A, Left arrow - turn west / move piece left
	ActionRight              // D, Right arrow - turn east / move piece right
	ActionRotateCW           // E, X - rotate piece clockwise
	ActionRotateCCW          // Q, Z - rotate piece anticlockwise
	ActionSoftDrop           // S, Down arrow - start soft drop (tetris)
	ActionSoftDropEnd        // synthesized when the drop key is released
	ActionConfirm            // Enter - start a new game / restart after game over
	ActionPause              // P - pause/unpause game
	ActionBack               // B, Escape - go back to menu
	ActionQuit               // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionSoftDropEnd:
		return "SoftDropEnd"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
