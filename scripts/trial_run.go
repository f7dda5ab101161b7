// Console client for exercising a full timed quiz attempt against a
// running server: register/login, create a session, answer questions on
// the command line and watch the countdown submit for you.
//
// Usage: go run scripts/trial_run.go -base http://localhost:8080 -email you@example.com -password secret12
//
// Commands during the attempt:
//   a <n> <choiceId>   answer question n
//   submit             finish now
//   violate            simulate a proctoring violation
package main

import (
	"assess_prep_backend/internal/model"
	"assess_prep_backend/internal/runner"
	"assess_prep_backend/internal/service"
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type apiClient struct {
	base  string
	token string
	http  *http.Client
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *apiClient) call(method, path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}
	if !envelope.Success {
		return fmt.Errorf("%s %s: %s (status %d)", method, path, envelope.Message, resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

// quizSource loads the question set and duration over HTTP.
type quizSource struct {
	client    *apiClient
	sessionID string
}

func (s *quizSource) Load(ctx context.Context) ([]runner.Item, time.Duration, error) {
	var session model.AssessmentSession
	if err := s.client.call("GET", "/api/assessment/"+s.sessionID, nil, &session); err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	if err := s.client.call("GET", "/api/assessment/"+s.sessionID+"/questions", nil, &questions); err != nil {
		return nil, 0, err
	}

	items := make([]runner.Item, len(questions))
	for i, q := range questions {
		choices := q.ChoiceList()
		var b strings.Builder
		fmt.Fprintf(&b, "[%s/%s] %s\n", q.Topic, q.Difficulty, q.Question)
		for _, ch := range choices {
			fmt.Fprintf(&b, "    (%s) %s\n", ch.ID, ch.Text)
		}
		items[i] = runner.Item{ID: q.ID, Prompt: b.String()}
	}

	return items, time.Duration(session.DurationMinutes) * time.Minute, nil
}

// quizSubmitter posts the answer set with the submit reason.
type quizSubmitter struct {
	client    *apiClient
	sessionID string
}

func (s *quizSubmitter) Submit(ctx context.Context, answers map[string]string, reason model.SubmitReason) error {
	payload := struct {
		Answers []service.Answer   `json:"answers"`
		Reason  model.SubmitReason `json:"reason"`
	}{Reason: reason}
	for id, choice := range answers {
		payload.Answers = append(payload.Answers, service.Answer{QuestionID: id, ChoiceID: choice})
	}
	return s.client.call("POST", "/api/assessment/"+s.sessionID+"/submit", payload, nil)
}

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	topics := flag.String("topics", "logic,arithmetic", "comma separated topics")
	num := flag.Int("n", 5, "number of questions")
	duration := flag.Int("minutes", 10, "session duration in minutes")
	difficulty := flag.String("difficulty", "mixed", "easy|medium|hard|mixed")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	client := &apiClient{base: *base, http: &http.Client{Timeout: 5 * time.Minute}}

	var login struct {
		Token string `json:"token"`
	}
	if err := client.call("POST", "/api/login", map[string]string{
		"email":    *email,
		"password": *password,
	}, &login); err != nil {
		log.Fatalf("login failed: %v", err)
	}
	client.token = login.Token

	var created struct {
		SessionID string `json:"sessionId"`
	}
	params := service.CreateSessionParams{
		Topics:          strings.Split(*topics, ","),
		NumQuestions:    *num,
		DurationMinutes: *duration,
		Difficulty:      *difficulty,
	}
	if err := client.call("POST", "/api/assessment", params, &created); err != nil {
		log.Fatalf("create session failed: %v", err)
	}
	fmt.Printf("session %s created\n", created.SessionID)

	watcher := runner.NewEventWatcher()
	r := runner.New(
		&quizSource{client: client, sessionID: created.SessionID},
		&quizSubmitter{client: client, sessionID: created.SessionID},
		watcher,
	)

	var lastState runner.State = -1
	r.OnStatus = func(u runner.StatusUpdate) {
		switch {
		case u.State == runner.StateLoading && u.Message != "":
			fmt.Printf("\r%-50s", u.Message)
		case u.State == runner.StateRunning && u.State != lastState:
			fmt.Println("\nsession is live, type 'a <n> <choiceId>' to answer")
		case u.State == runner.StateRunning && u.Remaining%time.Minute == 0:
			fmt.Printf("time left: %s\n", u.Remaining)
		case u.State == runner.StateSubmitting && u.State != lastState:
			fmt.Println("submitting...")
		}
		lastState = u.State
	}

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "a":
				if len(fields) != 3 {
					fmt.Println("usage: a <n> <choiceId>")
					continue
				}
				idx, err := strconv.Atoi(fields[1])
				items := r.Items()
				if err != nil || idx < 1 || idx > len(items) {
					fmt.Println("no such question")
					continue
				}
				r.SetAnswer(items[idx-1].ID, fields[2])
				fmt.Printf("answered %d with %s\n", idx, fields[2])
			case "submit":
				r.Finish()
			case "violate":
				watcher.Report("manual")
			case "show":
				for i, item := range r.Items() {
					fmt.Printf("%d. %s\n", i+1, item.Prompt)
				}
			default:
				fmt.Println("commands: a <n> <choiceId>, show, submit, violate")
			}
		}
	}()

	outcome := r.Run(context.Background())
	if outcome.Err != nil {
		log.Fatalf("attempt failed: %v", outcome.Err)
	}
	fmt.Printf("submitted (%s)\n", outcome.Reason)

	var result model.SessionResult
	if err := client.call("GET", "/api/assessment/"+created.SessionID+"/result", nil, &result); err != nil {
		log.Fatalf("fetch result failed: %v", err)
	}
	fmt.Printf("score: %d%% (%d correct, %d incorrect, %d unanswered)\n",
		result.ScorePercent, result.Correct, result.Incorrect, result.Unanswered)
	if result.AISuggestions != "" {
		fmt.Println("\nsuggestions:")
		fmt.Println(result.AISuggestions)
	}
}
