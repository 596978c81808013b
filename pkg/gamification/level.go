// Package gamification awards experience points and derives levels from them.
package gamification

// XPPerLevel is the amount of XP between two consecutive levels.
const XPPerLevel = 100

// LevelForXP returns floor(xp/100)+1. Negative xp is treated as zero.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// ProgressInLevel returns the XP earned inside the current level and the XP
// still needed to reach the next one.
func ProgressInLevel(xp int) (earned, remaining int) {
	if xp < 0 {
		xp = 0
	}
	earned = xp % XPPerLevel
	return earned, XPPerLevel - earned
}
