package gamification

import "eurolens/backend/models"

// Achievement is one entry of the static catalog
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xpReward"`
	MaxProgress int    `json:"maxProgress,omitempty"`

	unlocked func(p *models.Profile) bool
}

// Catalog lists every achievement with its unlock predicate. Unlocking is a
// one-time event per profile.
var Catalog = []Achievement{
	{
		ID:          "first-steps",
		Name:        "First Steps",
		Description: "View your first procedure",
		Icon:        "👀",
		XPReward:    50,
		unlocked:    func(p *models.Profile) bool { return p.Stats.ProceduresViewed >= 1 },
	},
	{
		ID:          "curious-mind",
		Name:        "Curious Mind",
		Description: "Generate your first AI summary",
		Icon:        "🧠",
		XPReward:    50,
		unlocked:    func(p *models.Profile) bool { return p.Stats.SummariesGenerated >= 1 },
	},
	{
		ID:          "first-voice",
		Name:        "First Voice",
		Description: "State your position on a procedure",
		Icon:        "🗣️",
		XPReward:    50,
		unlocked:    func(p *models.Profile) bool { return p.Stats.TotalPositions >= 1 },
	},
	{
		ID:          "civic-champion",
		Name:        "Civic Champion",
		Description: "Contact your first MEP",
		Icon:        "✉️",
		XPReward:    100,
		unlocked:    func(p *models.Profile) bool { return p.Stats.MEPsContacted >= 1 },
	},
	{
		ID:          "active-citizen",
		Name:        "Active Citizen",
		Description: "Take 3 different types of civic action",
		Icon:        "🌟",
		XPReward:    150,
		unlocked:    func(p *models.Profile) bool { return UniqueActionTypes(p.Stats) >= 3 },
	},
	{
		ID:          "democracy-defender",
		Name:        "Democracy Defender",
		Description: "Contact 5 MEPs about different procedures",
		Icon:        "🛡️",
		XPReward:    300,
		MaxProgress: 5,
		unlocked:    func(p *models.Profile) bool { return p.Stats.MEPsContacted >= 5 },
	},
	{
		ID:          "consultation-expert",
		Name:        "Consultation Expert",
		Description: "Join 5 public consultations",
		Icon:        "📋",
		XPReward:    250,
		MaxProgress: 5,
		unlocked:    func(p *models.Profile) bool { return p.Stats.ConsultationsJoined >= 5 },
	},
	{
		ID:          "amplifier",
		Name:        "Amplifier",
		Description: "Share 10 procedures to raise awareness",
		Icon:        "📢",
		XPReward:    200,
		MaxProgress: 10,
		unlocked:    func(p *models.Profile) bool { return p.Stats.ProceduresShared >= 10 },
	},
	{
		ID:          "eu-advocate",
		Name:        "EU Advocate",
		Description: "Take 50 total civic actions",
		Icon:        "🏆",
		XPReward:    500,
		MaxProgress: 50,
		unlocked:    func(p *models.Profile) bool { return TotalActions(p.Stats) >= 50 },
	},
	{
		ID:          "political-scientist",
		Name:        "Political Scientist",
		Description: "Generate 10 AI summaries",
		Icon:        "📚",
		XPReward:    150,
		MaxProgress: 10,
		unlocked:    func(p *models.Profile) bool { return p.Stats.SummariesGenerated >= 10 },
	},
	{
		ID:          "eu-expert",
		Name:        "EU Expert",
		Description: "Reach level 10",
		Icon:        "⭐",
		XPReward:    500,
		unlocked:    func(p *models.Profile) bool { return p.Level >= 10 },
	},
	{
		ID:          "streak-master",
		Name:        "Streak Master",
		Description: "Maintain a 7-day engagement streak",
		Icon:        "🔥",
		XPReward:    250,
		MaxProgress: 7,
		unlocked:    func(p *models.Profile) bool { return p.Streak >= 7 },
	},
}

func hasAchievement(p *models.Profile, id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// CheckAchievements evaluates every catalog predicate the profile has not
// unlocked yet. Each newly satisfied one is added to the profile's unlocked
// set with its XP reward granted and the level recomputed. Re-running with no
// state change returns an empty list; an achievement is never granted twice.
// The caller persists the mutated profile.
func CheckAchievements(p *models.Profile) []Achievement {
	var unlocked []Achievement

	for _, a := range Catalog {
		if hasAchievement(p, a.ID) {
			continue
		}
		if !a.unlocked(p) {
			continue
		}

		p.Achievements = append(p.Achievements, a.ID)
		p.XP += a.XPReward
		p.Level = GetLevel(p.XP)
		unlocked = append(unlocked, a)
	}

	return unlocked
}
