package europarl

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"eurolens/backend/models"

	"golang.org/x/sync/errgroup"
)

const (
	// enrichLimit bounds how many listed procedures get a detail fetch, so
	// page latency stays flat no matter how long the upstream listing is
	enrichLimit = 8
	// decidedWindow is how far back "recently decided" looks
	decidedWindow = 180 * 24 * time.Hour
	// decidedMeetings is how many recent plenary meetings are inspected
	decidedMeetings = 5
	// decidedLimit caps the recently-decided view
	decidedLimit = 20
)

// Service composes upstream reads into the citizen-facing views
type Service struct {
	client *Client
	logger *log.Logger
	now    func() time.Time
}

func NewService(client *Client, logger *log.Logger) *Service {
	return &Service{client: client, logger: logger, now: time.Now}
}

// NewServiceWithClock creates a service with an injected time source
func NewServiceWithClock(client *Client, logger *log.Logger, now func() time.Time) *Service {
	return &Service{client: client, logger: logger, now: now}
}

func idSegment(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 && idx < len(id)-1 {
		return id[idx+1:]
	}
	return id
}

// InProgress returns the current year's procedures. The first few are fully
// enriched with per-procedure detail; the rest carry lightly derived fields
// only. A failed enrichment degrades to the unenriched entry; a failed
// listing fails the whole view.
func (s *Service) InProgress(ctx context.Context) ([]models.LegislativeProcedure, error) {
	basics, err := s.client.fetchProcedures(ctx, s.now().Year())
	if err != nil {
		return nil, err
	}

	details := make([]*apiProcedureDetailed, len(basics))
	g, gctx := errgroup.WithContext(ctx)
	for i := range basics {
		if i >= enrichLimit {
			break
		}
		i := i
		g.Go(func() error {
			procID := basics[i].ProcessID
			if procID == "" {
				procID = idSegment(basics[i].ID)
			}
			detail, err := s.client.fetchProcedureDetail(gctx, procID)
			if err != nil {
				s.logger.Printf("enrichment failed for procedure %s: %v", procID, err)
				return nil
			}
			details[i] = detail
			return nil
		})
	}
	// Enrichment goroutines swallow their own errors, so Wait never fails here
	_ = g.Wait()

	procedures := make([]models.LegislativeProcedure, 0, len(basics))
	for i, basic := range basics {
		id := basic.ProcessID
		if id == "" {
			id = idSegment(basic.ID)
		}

		proc := models.LegislativeProcedure{
			ID:        id,
			Reference: InferReference(basic.Label, basic.ID),
			Title:     basic.Label,
			Type:      procedureTypeLabel(basic.ProcessType),
			Subjects:  []string{},
			Status:    "Active",
		}
		if proc.Title == "" {
			proc.Title = "Untitled Procedure"
		}

		if detail := details[i]; detail != nil {
			if title := localizedLabel(detail.ProcessTitle); title != "" {
				proc.Title = title
			}
			proc.Summary = localizedLabel(detail.ProcessSummary)
			proc.Subjects = extractCommittees(detail.HadParticipation)
			proc.Status = stageLabel(detail.CurrentStage)
			proc.LastActivity = latestActivity(detail.ConsistsOf)
			proc.SourceURL = procedureURL(proc.Reference)
		}

		procedures = append(procedures, proc)
	}

	return procedures, nil
}

// meetingDate picks the best available date of a meeting
func meetingDate(m apiMeeting) (time.Time, bool) {
	for _, raw := range []string{m.ActivityStartDate, m.ActivityDate} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isPlenary(m apiMeeting) bool {
	return strings.Contains(m.HadActivityType, "PLENARY")
}

// isAdopted keeps decisions whose outcome indicates adoption; when the
// upstream omits the outcome field, a positive favor count stands in for it.
func isAdopted(d apiDecision) bool {
	if d.DecisionOutcome != "" {
		return strings.Contains(strings.ToUpper(d.DecisionOutcome), "ADOPT")
	}
	return d.VotesFavor > 0
}

// RecentlyDecided derives the recently-voted view: plenary meetings of the
// current and previous calendar year, dated within the last 180 days, five
// most recent, their adopted decisions grouped by inferred reference (a
// re-vote with real tallies replaces an earlier zero-tally entry), at most 20,
// newest first.
func (s *Service) RecentlyDecided(ctx context.Context) ([]models.LegislativeProcedure, error) {
	now := s.now()
	years := []int{now.Year(), now.Year() - 1}
	perYear := make([][]apiMeeting, len(years))

	g, gctx := errgroup.WithContext(ctx)
	for i, year := range years {
		i, year := i, year
		g.Go(func() error {
			meetings, err := s.client.fetchMeetings(gctx, year)
			if err != nil {
				return err
			}
			perYear[i] = meetings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Concatenate in fixed order: current year before previous year
	var meetings []apiMeeting
	for _, batch := range perYear {
		meetings = append(meetings, batch...)
	}

	type datedMeeting struct {
		meeting apiMeeting
		date    time.Time
	}
	var recent []datedMeeting
	for _, m := range meetings {
		if !isPlenary(m) {
			continue
		}
		date, ok := meetingDate(m)
		if !ok {
			continue
		}
		if now.Sub(date) < 0 || now.Sub(date) > decidedWindow {
			continue
		}
		recent = append(recent, datedMeeting{meeting: m, date: date})
	}
	sort.Slice(recent, func(i, j int) bool { return recent[i].date.After(recent[j].date) })
	if len(recent) > decidedMeetings {
		recent = recent[:decidedMeetings]
	}

	type decided struct {
		proc models.LegislativeProcedure
		date string
	}
	byReference := make(map[string]decided)

	for _, dm := range recent {
		meetingID := dm.meeting.ActivityID
		if meetingID == "" {
			meetingID = idSegment(dm.meeting.ID)
		}

		decisions, err := s.client.fetchMeetingDecisions(ctx, meetingID)
		if err != nil {
			s.logger.Printf("decisions fetch failed for meeting %s: %v", meetingID, err)
			continue
		}

		for _, d := range decisions {
			if !isAdopted(d) {
				continue
			}

			label := localizedLabel(d.ActivityLabel)
			reference := InferReference(label, d.ID)
			date := d.ActivityDate
			if date == "" {
				date = dm.date.Format("2006-01-02")
			}

			title := label
			if title == "" {
				title = "Adopted text " + reference
			}

			proc := models.LegislativeProcedure{
				ID:        idSegment(d.ID),
				Reference: reference,
				Title:     title,
				Type:      typeFromReference(reference),
				Subjects:  []string{},
				Status:    "Adopted",
				LastActivity: &models.ActivityStamp{
					Date: date,
					Type: "Voted",
				},
				Votes: &models.VoteTally{
					Favor:      d.VotesFavor,
					Against:    d.VotesAgainst,
					Abstention: d.VotesAbstention,
				},
			}

			existing, ok := byReference[reference]
			if ok {
				hasVotes := proc.Votes.Favor+proc.Votes.Against+proc.Votes.Abstention > 0
				existingHasVotes := existing.proc.Votes.Favor+existing.proc.Votes.Against+existing.proc.Votes.Abstention > 0
				if existingHasVotes && !hasVotes {
					continue
				}
				if existingHasVotes == hasVotes && date <= existing.date {
					continue
				}
			}
			byReference[reference] = decided{proc: proc, date: date}
		}
	}

	all := make([]decided, 0, len(byReference))
	for _, d := range byReference {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].date > all[j].date })
	if len(all) > decidedLimit {
		all = all[:decidedLimit]
	}

	procedures := make([]models.LegislativeProcedure, 0, len(all))
	for _, d := range all {
		procedures = append(procedures, d.proc)
	}
	return procedures, nil
}

// UpcomingSessions lists plenary sessions of the current year that have not
// started yet, soonest first.
func (s *Service) UpcomingSessions(ctx context.Context) ([]models.PlenarySession, error) {
	meetings, err := s.client.fetchMeetings(ctx, s.now().Year())
	if err != nil {
		return nil, err
	}

	now := s.now()
	var sessions []models.PlenarySession
	for _, m := range meetings {
		if !isPlenary(m) {
			continue
		}
		start, ok := meetingDate(m)
		if !ok || start.Before(now) {
			continue
		}

		end := start
		if m.ActivityEndDate != "" {
			if t, err := time.Parse(time.RFC3339, m.ActivityEndDate); err == nil {
				end = t
			} else if t, err := time.Parse("2006-01-02", m.ActivityEndDate); err == nil {
				end = t
			}
		}

		id := m.ActivityID
		if id == "" {
			id = idSegment(m.ID)
		}
		sessions = append(sessions, models.PlenarySession{
			ID:        id,
			Title:     localizedLabel(m.ActivityLabel),
			StartDate: start,
			EndDate:   end,
			Type:      "Plenary Session",
		})
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartDate.Before(sessions[j].StartDate) })
	return sessions, nil
}

// ResolveReference resolves a reference against the upstream sources,
// auto-detecting document-style vs procedure-style shapes. When nothing
// matches it returns a synthetic in-progress placeholder; the second return
// reports that fallback, which is never an error.
func (s *Service) ResolveReference(ctx context.Context, reference string) (models.ProcedureDetail, bool) {
	var detail *models.ProcedureDetail

	switch {
	case IsDocumentReference(reference):
		detail = s.resolveDocument(ctx, reference)
	case IsProcedureReference(reference):
		detail = s.resolveProcedure(ctx, reference)
	default:
		detail = s.resolveDocument(ctx, reference)
		if detail == nil {
			detail = s.resolveProcedure(ctx, reference)
		}
	}

	if detail == nil {
		return models.ProcedureDetail{
			Reference: reference,
			Title:     "Procedure " + reference,
			Type:      typeFromReference(reference),
			Status:    "In Progress",
			Timeline:  []models.TimelineEvent{},
		}, true
	}

	detail.Reference = reference
	detail.SourceURL = procedureURL(reference)
	return *detail, false
}

func (s *Service) resolveDocument(ctx context.Context, reference string) *models.ProcedureDetail {
	docID := documentID(reference)
	if docID == "" {
		return nil
	}

	doc, err := s.client.fetchDocumentDetail(ctx, docID)
	if err != nil {
		s.logger.Printf("document lookup failed for %s: %v", reference, err)
		return nil
	}
	if len(doc.IsRealizedBy) == 0 {
		return nil
	}

	title := ""
	for _, expr := range doc.IsRealizedBy {
		if strings.Contains(expr.Language, "/ENG") {
			title = localizedLabel(expr.Title)
			break
		}
	}
	if title == "" {
		title = localizedLabel(doc.IsRealizedBy[0].Title)
	}
	if title == "" {
		return nil
	}

	return &models.ProcedureDetail{
		Title:  title,
		Type:   typeFromReference(reference),
		Status: "Adopted",
		LastActivity: &models.ActivityStamp{
			Date: s.now().Format(time.RFC3339),
			Type: "Voted",
		},
		Timeline: []models.TimelineEvent{},
	}
}

func (s *Service) resolveProcedure(ctx context.Context, reference string) *models.ProcedureDetail {
	proc, err := s.client.fetchProcedureDetail(ctx, procedureID(reference))
	if err != nil {
		s.logger.Printf("procedure lookup failed for %s: %v", reference, err)
		return nil
	}

	title := localizedLabel(proc.ProcessTitle)
	if title == "" {
		title = reference
	}

	timeline := buildTimeline(proc.ConsistsOf)
	var lastActivity *models.ActivityStamp
	if len(timeline) > 0 {
		lastActivity = &models.ActivityStamp{Date: timeline[0].Date, Type: timeline[0].Type}
	}

	return &models.ProcedureDetail{
		Title:        title,
		Summary:      localizedLabel(proc.ProcessSummary),
		Type:         typeFromReference(reference),
		Status:       stageLabel(proc.CurrentStage),
		LastActivity: lastActivity,
		Timeline:     timeline,
	}
}
