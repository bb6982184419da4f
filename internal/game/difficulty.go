package game

// DifficultyNames maps the numeric difficulty of a chart to its name.
var DifficultyNames = map[uint32]string{
	0: "basic",
	1: "advanced",
	2: "expert",
	3: "master",
	4: "ultima",
	5: "worlds-end",
}

func DifficultyName(d uint32) string {
	name, ok := DifficultyNames[d]
	if !ok {
		return "unknown"
	}
	return name
}
