package gamification

import "eurolens/backend/models"

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// MergeStats combines two stat sets by taking each counter's max
// independently, so neither side can lose recorded activity.
func MergeStats(a, b models.UserStats) models.UserStats {
	return models.UserStats{
		TotalPositions:      maxInt(a.TotalPositions, b.TotalPositions),
		MEPsContacted:       maxInt(a.MEPsContacted, b.MEPsContacted),
		ConsultationsJoined: maxInt(a.ConsultationsJoined, b.ConsultationsJoined),
		PetitionsSigned:     maxInt(a.PetitionsSigned, b.PetitionsSigned),
		ProceduresShared:    maxInt(a.ProceduresShared, b.ProceduresShared),
		ProceduresViewed:    maxInt(a.ProceduresViewed, b.ProceduresViewed),
		SummariesGenerated:  maxInt(a.SummariesGenerated, b.SummariesGenerated),
	}
}

// MergeAchievements unions two unlocked sets, preserving the order of the
// first and appending what only the second has.
func MergeAchievements(server, guest []string) []string {
	merged := make([]string, 0, len(server)+len(guest))
	seen := make(map[string]bool, len(server)+len(guest))

	for _, id := range server {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range guest {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}

	return merged
}

// MergeLastActive picks the later of two date-only strings; if only one side
// has a date that side wins. Date-only strings compare lexicographically.
func MergeLastActive(server, guest string) string {
	if server == "" {
		return guest
	}
	if guest == "" {
		return server
	}
	if guest > server {
		return guest
	}
	return server
}

// MergeProfiles reconciles a guest profile into a server profile: XP, streak
// and each stat counter take their max, achievements are unioned, last-active
// is the later date and the level is recomputed from the merged XP. The
// operation is idempotent: merging the same guest snapshot again changes
// nothing.
func MergeProfiles(server, guest models.Profile) models.Profile {
	merged := server
	merged.XP = maxInt(server.XP, guest.XP)
	merged.Level = GetLevel(merged.XP)
	merged.Streak = maxInt(server.Streak, guest.Streak)
	merged.LastActiveDate = MergeLastActive(server.LastActiveDate, guest.LastActiveDate)
	merged.Stats = MergeStats(server.Stats, guest.Stats)
	merged.Achievements = MergeAchievements(server.Achievements, guest.Achievements)
	return merged
}
