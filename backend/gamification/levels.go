package gamification

// LevelThresholds maps level index i (0-based) to the XP floor of level i+1.
// Level 1 starts at 0 XP.
var LevelThresholds = []int{
	0,
	100,
	250,
	500,
	1000,
	2000,
	3500,
	5500,
	8000,
	12000,
	17000,
	25000,
	35000,
	50000,
	75000,
}

var levelTitles = map[int]string{
	1:  "Newcomer",
	2:  "Observer",
	3:  "Citizen",
	4:  "Engaged Voter",
	5:  "Policy Enthusiast",
	6:  "Active Advocate",
	7:  "Parliament Watcher",
	8:  "EU Insider",
	9:  "Legislative Expert",
	10: "Democracy Champion",
	11: "Brussels Veteran",
	12: "Policy Architect",
	13: "Union Visionary",
	14: "EU Commissioner",
	15: "European Legend",
}

// GetLevel returns the level for an XP total: the highest level whose
// threshold the total has reached. Monotonic in xp.
func GetLevel(xp int) int {
	for i := len(LevelThresholds) - 1; i >= 0; i-- {
		if xp >= LevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// GetLevelTitle returns the display title for a level. Levels past the table
// keep the final title.
func GetLevelTitle(level int) string {
	if title, ok := levelTitles[level]; ok {
		return title
	}
	return levelTitles[len(LevelThresholds)]
}

// XPProgress describes progress within the current level
type XPProgress struct {
	Current  int     `json:"current"`
	Next     int     `json:"next"`
	Progress float64 `json:"progress"`
}

// GetXPProgress computes XP earned within the current level and the XP span
// to the next one. At the top level the span is zero and progress reports 100.
func GetXPProgress(xp int) XPProgress {
	level := GetLevel(xp)
	currentThreshold := LevelThresholds[level-1]

	nextThreshold := currentThreshold
	if level < len(LevelThresholds) {
		nextThreshold = LevelThresholds[level]
	}

	xpInLevel := xp - currentThreshold
	xpNeeded := nextThreshold - currentThreshold

	progress := 100.0
	if xpNeeded > 0 {
		progress = float64(xpInLevel) / float64(xpNeeded) * 100
	}

	return XPProgress{
		Current:  xpInLevel,
		Next:     xpNeeded,
		Progress: progress,
	}
}
