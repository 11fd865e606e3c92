package gamification

import "eurolens/backend/models"

// Fixed XP rewards per engagement type
const (
	XPViewProcedure    = 5
	XPGenerateSummary  = 10
	XPStatePosition    = 10
	XPContactMEP       = 50
	XPJoinConsultation = 40
	XPSignPetition     = 30
	XPShareProcedure   = 15
)

// RewardForAction returns the XP reward for a civic action type. The second
// return is false for unknown types.
func RewardForAction(actionType string) (int, bool) {
	switch actionType {
	case models.ActionContactMEP:
		return XPContactMEP, true
	case models.ActionConsultation:
		return XPJoinConsultation, true
	case models.ActionPetition:
		return XPSignPetition, true
	case models.ActionShare:
		return XPShareProcedure, true
	default:
		return 0, false
	}
}

// ApplyAction bumps the stat counter for a civic action and grants its XP,
// recomputing the level. Returns the XP gained.
func ApplyAction(p *models.Profile, actionType string) int {
	reward, ok := RewardForAction(actionType)
	if !ok {
		return 0
	}

	switch actionType {
	case models.ActionContactMEP:
		p.Stats.MEPsContacted++
	case models.ActionConsultation:
		p.Stats.ConsultationsJoined++
	case models.ActionPetition:
		p.Stats.PetitionsSigned++
	case models.ActionShare:
		p.Stats.ProceduresShared++
	}

	p.XP += reward
	p.Level = GetLevel(p.XP)
	return reward
}

// ApplyProcedureView grants the procedure-view reward
func ApplyProcedureView(p *models.Profile) int {
	p.Stats.ProceduresViewed++
	p.XP += XPViewProcedure
	p.Level = GetLevel(p.XP)
	return XPViewProcedure
}

// ApplySummaryGenerated grants the summary-generation reward
func ApplySummaryGenerated(p *models.Profile) int {
	p.Stats.SummariesGenerated++
	p.XP += XPGenerateSummary
	p.Level = GetLevel(p.XP)
	return XPGenerateSummary
}

// ApplyStatePosition grants the first-stance reward for a procedure
func ApplyStatePosition(p *models.Profile) int {
	p.Stats.TotalPositions++
	p.XP += XPStatePosition
	p.Level = GetLevel(p.XP)
	return XPStatePosition
}

// TotalActions counts all civic actions a profile has performed
func TotalActions(stats models.UserStats) int {
	return stats.MEPsContacted +
		stats.ConsultationsJoined +
		stats.PetitionsSigned +
		stats.ProceduresShared
}

// UniqueActionTypes counts how many distinct civic action types the profile
// has performed at least once
func UniqueActionTypes(stats models.UserStats) int {
	count := 0
	if stats.MEPsContacted > 0 {
		count++
	}
	if stats.ConsultationsJoined > 0 {
		count++
	}
	if stats.PetitionsSigned > 0 {
		count++
	}
	if stats.ProceduresShared > 0 {
		count++
	}
	return count
}
