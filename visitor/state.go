package visitor

// State is the position of an Engine within its traversal
type State uint8

const (
	// Idle indicates that no file has been opened yet
	Idle State = iota
	// FileOpen indicates that the current file is open and its metadata is known
	FileOpen
	// Advancing indicates that a batch is being pulled from the current file
	Advancing
	// FileExhausted indicates that the current file has no more batches
	FileExhausted
	// Done indicates that the traversal has ended, either because every file was consumed or because of an error
	Done
)

// String returns a textual representation of a State
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case FileOpen:
		return "FileOpen"
	case Advancing:
		return "Advancing"
	case FileExhausted:
		return "FileExhausted"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}
