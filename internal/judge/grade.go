package judge

type Grade uint8

const (
	Perfect Grade = iota
	Good
	Bad
	Miss
)

// Grades lists every grade, best first
var Grades = [...]Grade{Perfect, Good, Bad, Miss}

func (g Grade) String() string {
	switch g {
	case Perfect:
		return "Perfect"
	case Good:
		return "Good"
	case Bad:
		return "Bad"
	case Miss:
		return "Miss"
	}
	return "Unknown"
}
