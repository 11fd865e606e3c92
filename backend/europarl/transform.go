package europarl

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"eurolens/backend/models"
)

var procedureTypeLabels = map[string]string{
	"def/ep-procedure-types/COD": "Codecision",
	"def/ep-procedure-types/CNS": "Consultation",
	"def/ep-procedure-types/NLE": "Non-legislative",
	"def/ep-procedure-types/BUD": "Budget",
	"def/ep-procedure-types/APP": "Consent",
	"def/ep-procedure-types/INI": "Own-initiative",
	"def/ep-procedure-types/INL": "Legislative Initiative",
	"def/ep-procedure-types/RSP": "Resolution",
	"def/ep-procedure-types/SYN": "Cooperation",
	"def/ep-procedure-types/IMM": "Immunity",
	"def/ep-procedure-types/REG": "Rules of Procedure",
	"def/ep-procedure-types/DCE": "Discharge",
}

var procedureTypeCodes = map[string]string{
	"COD": "Codecision",
	"CNS": "Consultation",
	"NLE": "Non-legislative",
	"BUD": "Budget",
	"APP": "Consent",
	"INI": "Own-initiative",
	"INL": "Legislative Initiative",
	"RSP": "Resolution",
}

var stageLabels = map[string]string{
	"http://publications.europa.eu/resource/authority/procedure-phase/RDG1": "1st Reading",
	"http://publications.europa.eu/resource/authority/procedure-phase/RDG2": "2nd Reading",
	"http://publications.europa.eu/resource/authority/procedure-phase/RDG3": "3rd Reading",
	"http://publications.europa.eu/resource/authority/procedure-phase/CONC": "Conciliation",
	"http://publications.europa.eu/resource/authority/procedure-phase/FIN":  "Completed",
}

var committeeRoles = map[string]bool{
	"def/ep-roles/COMMITTEE_RESPONSIBLE": true,
	"def/ep-roles/COMMITTEE_OPINION":     true,
}

var (
	// documentRefPattern matches plenary-document style references, e.g. A9-0123/2024
	documentRefPattern = regexp.MustCompile(`[A-Z]\d+-\d+/\d{4}`)
	// procedureRefPattern matches procedure style references, e.g. 2024/0123(COD)
	procedureRefPattern = regexp.MustCompile(`\d{4}/\d+\([A-Z]+\)`)

	documentRefExact  = regexp.MustCompile(`^([A-Z])(\d+)-(\d+)/(\d+)$`)
	procedureRefExact = regexp.MustCompile(`^(\d{4})/(\d+)\(([A-Z]+)\)$`)
	procedureIDShape  = regexp.MustCompile(`^(\d{4})-(\d+)$`)
)

// localizedLabel picks the English variant of a label map, falling back to
// any value present.
func localizedLabel(labels map[string]string) string {
	if labels == nil {
		return ""
	}
	if v, ok := labels["en"]; ok && v != "" {
		return v
	}
	for _, v := range labels {
		if v != "" {
			return v
		}
	}
	return ""
}

func procedureTypeLabel(procType string) string {
	if procType == "" {
		return "Procedure"
	}
	if label, ok := procedureTypeLabels[procType]; ok {
		return label
	}
	if idx := strings.LastIndex(procType, "/"); idx >= 0 && idx < len(procType)-1 {
		return procType[idx+1:]
	}
	return procType
}

func stageLabel(stage string) string {
	if stage == "" {
		return "In Progress"
	}
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return "In Progress"
}

// typeFromReference infers a display type from the reference shape alone
func typeFromReference(reference string) string {
	switch {
	case strings.HasPrefix(reference, "A"):
		return "Report"
	case strings.HasPrefix(reference, "B"):
		return "Resolution"
	case strings.HasPrefix(reference, "C"):
		return "Communication"
	}
	if m := procedureRefExact.FindStringSubmatch(reference); m != nil {
		if label, ok := procedureTypeCodes[m[3]]; ok {
			return label
		}
		return "Procedure"
	}
	return "Adopted"
}

// IsDocumentReference reports whether a reference has the plenary-document shape
func IsDocumentReference(reference string) bool {
	return documentRefExact.MatchString(reference)
}

// IsProcedureReference reports whether a reference has the procedure shape
func IsProcedureReference(reference string) bool {
	return procedureRefExact.MatchString(reference)
}

// documentID converts A9-0123/2024 into the upstream id A-9-2024-0123
func documentID(reference string) string {
	m := documentRefExact.FindStringSubmatch(reference)
	if m == nil {
		return ""
	}
	letter, term, num, year := m[1], m[2], m[3], m[4]
	for len(num) < 4 {
		num = "0" + num
	}
	return fmt.Sprintf("%s-%s-%s-%s", letter, term, year, num)
}

// procedureID converts 2024/0123(COD) into the upstream id 2024-0123
func procedureID(reference string) string {
	m := procedureRefExact.FindStringSubmatch(reference)
	if m == nil {
		r := strings.NewReplacer("/", "_", "(", "", ")", "")
		return r.Replace(reference)
	}
	return fmt.Sprintf("%s-%s", m[1], m[2])
}

// InferReference extracts a canonical reference code from a raw upstream
// label, falling back to a code derived from the internal identifier. This is
// best-effort text parsing: an unparseable label still yields a usable, if
// approximate, reference.
func InferReference(label, id string) string {
	if m := documentRefPattern.FindString(label); m != "" {
		return m
	}
	if m := procedureRefPattern.FindString(label); m != "" {
		return m
	}

	segment := id
	if idx := strings.LastIndex(id, "/"); idx >= 0 && idx < len(id)-1 {
		segment = id[idx+1:]
	}
	if m := procedureIDShape.FindStringSubmatch(segment); m != nil {
		return fmt.Sprintf("%s/%s", m[1], m[2])
	}
	return segment
}

func extractCommittees(participation []apiParticipation) []string {
	var committees []string
	seen := make(map[string]bool)

	for _, p := range participation {
		if !committeeRoles[p.ParticipationRole] {
			continue
		}

		var orgs []string
		switch v := p.HadParticipantOrganization.(type) {
		case string:
			orgs = []string{v}
		case []interface{}:
			for _, o := range v {
				if s, ok := o.(string); ok {
					orgs = append(orgs, s)
				}
			}
		}

		for _, org := range orgs {
			name := org
			if idx := strings.LastIndex(org, "/"); idx >= 0 && idx < len(org)-1 {
				name = org[idx+1:]
			}
			if name != "" && !seen[name] {
				seen[name] = true
				committees = append(committees, name)
			}
		}
	}

	return committees
}

func activityTypeLabel(hadActivityType string) string {
	name := hadActivityType
	if idx := strings.LastIndex(name, "/"); idx >= 0 && idx < len(name)-1 {
		name = name[idx+1:]
	}
	if name == "" {
		return "Activity"
	}
	return strings.ReplaceAll(name, "_", " ")
}

// latestActivity picks the most recent dated activity. Dates are ISO strings,
// so lexicographic order matches chronological order.
func latestActivity(activities []apiActivity) *models.ActivityStamp {
	var latest *apiActivity
	for i := range activities {
		a := &activities[i]
		if a.ActivityDate == "" {
			continue
		}
		if latest == nil || a.ActivityDate > latest.ActivityDate {
			latest = a
		}
	}
	if latest == nil {
		return nil
	}
	return &models.ActivityStamp{
		Date: latest.ActivityDate,
		Type: activityTypeLabel(latest.HadActivityType),
	}
}

// buildTimeline converts a procedure's activity list to timeline events,
// newest first.
func buildTimeline(activities []apiActivity) []models.TimelineEvent {
	dated := make([]apiActivity, 0, len(activities))
	for _, a := range activities {
		if a.ActivityDate != "" {
			dated = append(dated, a)
		}
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].ActivityDate > dated[j].ActivityDate
	})

	events := make([]models.TimelineEvent, 0, len(dated))
	for i, a := range dated {
		label := activityTypeLabel(a.HadActivityType)
		events = append(events, models.TimelineEvent{
			ID:    fmt.Sprintf("evt-%d-%s", i, a.ActivityDate),
			Date:  a.ActivityDate,
			Type:  label,
			Title: label,
		})
	}
	return events
}

// procedureURL links a reference to its OEIL procedure file
func procedureURL(reference string) string {
	return "https://oeil.secure.europarl.europa.eu/oeil/en/procedure-file?reference=" +
		url.QueryEscape(reference)
}
