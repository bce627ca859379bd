package trust

import "fmt"

// Level is a closed, totally ordered relationship stage.
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
	Level4
	Level5
)

const MaxLevel = Level5

// floors holds the first interaction count of each level.
var floors = [...]int{
	Level1: 1,
	Level2: 11,
	Level3: 31,
	Level4: 61,
	Level5: 101,
}

// LevelFor maps an interaction count to its level. Counts up to 10,
// including zero, are Level1.
func LevelFor(count int) Level {
	for l := MaxLevel; l > Level1; l-- {
		if count >= floors[l] {
			return l
		}
	}
	return Level1
}

func (l Level) Valid() bool {
	return l >= Level1 && l <= MaxLevel
}

// Floor is the first count at which the level is reached.
func (l Level) Floor() int {
	if !l.Valid() {
		return 0
	}
	return floors[l]
}

// MessagesToNext is how many more interactions count needs to reach the
// next level. It is 0 at the top level.
func MessagesToNext(count int) int {
	l := LevelFor(count)
	if l == MaxLevel {
		return 0
	}
	return max(0, (l+1).Floor()-count)
}

func (l Level) Label() string {
	if !l.Valid() {
		return "unknown"
	}
	return policies[l].Label
}

func (l Level) String() string {
	return fmt.Sprintf("L%d %s", int(l), l.Label())
}
