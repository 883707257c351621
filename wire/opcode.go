package wire

// Op is the single-byte record identifier at the start of every
// display-list record.
type Op byte

// Opcode values. The stream is framed by BeginFrame and terminated by
// EndFrame; everything in between is a draw record.
const (
	OpBeginFrame Op = 1
	OpRect       Op = 2
	OpPath       Op = 3
	OpText       Op = 4
	OpEndFrame   Op = 255
)

// String returns a human-readable name for the opcode.
func (o Op) String() string {
	switch o {
	case OpBeginFrame:
		return "BeginFrame"
	case OpRect:
		return "Rect"
	case OpPath:
		return "Path"
	case OpText:
		return "Text"
	case OpEndFrame:
		return "EndFrame"
	default:
		return "Unknown"
	}
}
