package circt

// PortDir is the direction of a hardware module port.
type PortDir uint8

const (
	Input PortDir = iota
	Output
)

func (d PortDir) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// Port describes one port of a generated hardware unit.
type Port struct {
	Name  string
	Dir   PortDir
	Width uint
}

// Unit is the contract a generated encode or decode block presents to the
// surrounding hardware: a clock, a liveness (valid) signal, a data input, and
// a single result whose width is fixed by the message type.
type Unit interface {
	Name() string
	Ports() []Port
}
