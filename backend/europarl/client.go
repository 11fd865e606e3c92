package europarl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"eurolens/backend/cache"
)

// upstreamTTL is the freshness window for open-data responses
const upstreamTTL = 10 * time.Minute

// apiResponse is the envelope the open-data API uses. Depending on the
// endpoint the payload arrives under "data" or "@graph".
type apiResponse[T any] struct {
	Data  []T `json:"data"`
	Graph []T `json:"@graph"`
}

func (r *apiResponse[T]) items() []T {
	if len(r.Data) > 0 {
		return r.Data
	}
	return r.Graph
}

type apiMeeting struct {
	ID                string            `json:"id"`
	ActivityID        string            `json:"activity_id"`
	ActivityLabel     map[string]string `json:"activity_label"`
	ActivityDate      string            `json:"activity_date"`
	ActivityStartDate string            `json:"activity_start_date"`
	ActivityEndDate   string            `json:"activity_end_date"`
	HadActivityType   string            `json:"had_activity_type"`
}

type apiProcedureBasic struct {
	ID          string `json:"id"`
	ProcessID   string `json:"process_id"`
	ProcessType string `json:"process_type"`
	Label       string `json:"label"`
}

type apiActivity struct {
	ActivityDate    string `json:"activity_date"`
	HadActivityType string `json:"had_activity_type"`
}

type apiParticipation struct {
	HadParticipantOrganization interface{} `json:"had_participant_organization"`
	ParticipationRole          string      `json:"participation_role"`
}

type apiProcedureDetailed struct {
	ID               string             `json:"id"`
	ProcessID        string             `json:"process_id"`
	ProcessType      string             `json:"process_type"`
	Label            string             `json:"label"`
	ProcessTitle     map[string]string  `json:"process_title"`
	ProcessSummary   map[string]string  `json:"process_summary"`
	CurrentStage     string             `json:"current_stage"`
	ConsistsOf       []apiActivity      `json:"consists_of"`
	HadParticipation []apiParticipation `json:"had_participation"`
}

type apiDecision struct {
	ID              string            `json:"id"`
	ActivityID      string            `json:"activity_id"`
	ActivityLabel   map[string]string `json:"activity_label"`
	ActivityDate    string            `json:"activity_date"`
	DecisionOutcome string            `json:"had_decision_outcome"`
	VotesFavor      int               `json:"number_of_votes_favor"`
	VotesAgainst    int               `json:"number_of_votes_against"`
	VotesAbstention int               `json:"number_of_votes_abstention"`
	BasedOn         string            `json:"based_on_a_realization_of"`
}

type apiDocumentExpression struct {
	Language string            `json:"language"`
	Title    map[string]string `json:"title"`
}

type apiDocumentDetail struct {
	ID           string                  `json:"id"`
	IsRealizedBy []apiDocumentExpression `json:"is_realized_by"`
}

// Client talks to the European Parliament open-data API. Every read funnels
// through the response cache so repeated page loads do not multiply upstream
// request volume.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Store
	logger  *log.Logger
}

func NewClient(baseURL string, store cache.Store, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   store,
		logger:  logger,
	}
}

// getJSON fetches a path and decodes the body into out. Non-2xx responses
// are errors; the caller decides whether that degrades or fails the request.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/ld+json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return fmt.Errorf("europarl: %s returned status %d", path, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) fetchProcedures(ctx context.Context, year int) ([]apiProcedureBasic, error) {
	key := cache.Key("procedures", year)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]apiProcedureBasic), nil
	}

	var res apiResponse[apiProcedureBasic]
	path := fmt.Sprintf("/procedures?format=application%%2Fld%%2Bjson&offset=0&limit=50&year=%d", year)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return nil, err
	}

	procedures := res.items()
	c.cache.SetTTL(key, procedures, upstreamTTL)
	return procedures, nil
}

func (c *Client) fetchProcedureDetail(ctx context.Context, procID string) (*apiProcedureDetailed, error) {
	key := cache.Key("procedure", procID)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*apiProcedureDetailed), nil
	}

	var res apiResponse[apiProcedureDetailed]
	path := fmt.Sprintf("/procedures/%s?format=application%%2Fld%%2Bjson", procID)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return nil, err
	}

	items := res.items()
	if len(items) == 0 {
		return nil, fmt.Errorf("europarl: procedure %s not found", procID)
	}

	detail := &items[0]
	c.cache.SetTTL(key, detail, upstreamTTL)
	return detail, nil
}

func (c *Client) fetchMeetings(ctx context.Context, year int) ([]apiMeeting, error) {
	key := cache.Key("meetings", year)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]apiMeeting), nil
	}

	var res apiResponse[apiMeeting]
	path := fmt.Sprintf("/meetings?format=application%%2Fld%%2Bjson&offset=0&limit=100&year=%d", year)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return nil, err
	}

	meetings := res.items()
	c.cache.SetTTL(key, meetings, upstreamTTL)
	return meetings, nil
}

func (c *Client) fetchMeetingDecisions(ctx context.Context, meetingID string) ([]apiDecision, error) {
	key := cache.Key("decisions", meetingID)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]apiDecision), nil
	}

	var res apiResponse[apiDecision]
	path := fmt.Sprintf("/meetings/%s/decisions?format=application%%2Fld%%2Bjson", meetingID)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return nil, err
	}

	decisions := res.items()
	c.cache.SetTTL(key, decisions, upstreamTTL)
	return decisions, nil
}

func (c *Client) fetchDocumentDetail(ctx context.Context, docID string) (*apiDocumentDetail, error) {
	key := cache.Key("document", docID)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*apiDocumentDetail), nil
	}

	var res apiResponse[apiDocumentDetail]
	path := fmt.Sprintf("/plenary-documents/%s?format=application%%2Fld%%2Bjson", docID)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return nil, err
	}

	items := res.items()
	if len(items) == 0 {
		return nil, fmt.Errorf("europarl: document %s not found", docID)
	}

	doc := &items[0]
	c.cache.SetTTL(key, doc, upstreamTTL)
	return doc, nil
}
