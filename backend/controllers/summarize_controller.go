package controllers

import (
	"bufio"
	"context"
	"log"

	"eurolens/backend/config"
	"eurolens/backend/summarize"
	"eurolens/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type SummarizeController struct {
	Generator summarize.Generator
	Cfg       *config.Config
	Logger    *log.Logger
}

func NewSummarizeController(generator summarize.Generator, cfg *config.Config, logger *log.Logger) *SummarizeController {
	return &SummarizeController{Generator: generator, Cfg: cfg, Logger: logger}
}

type SummarizeRequest struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Subjects []string `json:"subjects"`
	Persona  string   `json:"persona"`
	Country  string   `json:"country"`
}

// Summarize godoc
// @Summary Stream an AI explanation of a procedure
// @Description Chunks are relayed as plain text while the provider generates.
// Rate limited per client IP.
// @Tags summarize
// @Accept json
// @Produce plain
// @Success 200 {string} string
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /summarize [post]
func (sc *SummarizeController) Summarize(c *fiber.Ctx) error {
	var input SummarizeRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "title is required")
	}

	systemPrompt := summarize.BuildSystemPrompt(input.Persona, input.Country)
	userPrompt := summarize.BuildUserPrompt(input.Title, input.Summary, input.Subjects)

	// Generation runs in its own goroutine feeding a channel, so a provider
	// that fails before producing anything still gets a proper 500. Once the
	// first chunk is out the status is committed and later errors can only be
	// logged. The request context dies with the handler, so the pump uses a
	// detached one.
	ctx, cancel := context.WithCancel(context.Background())

	type event struct {
		chunk string
		err   error
		done  bool
	}
	events := make(chan event)

	go func() {
		err := sc.Generator.Stream(ctx, systemPrompt, userPrompt, func(chunk string) error {
			select {
			case events <- event{chunk: chunk}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		select {
		case events <- event{err: err, done: true}:
		case <-ctx.Done():
		}
	}()

	first := <-events
	if first.done {
		cancel()
		if first.err != nil {
			sc.Logger.Printf("summary generation failed: %v", first.err)
			return utils.InternalServerError(c, "Failed to generate summary")
		}
		// Provider produced nothing at all
		c.Set("Content-Type", "text/plain; charset=utf-8")
		return c.SendString("")
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		if _, err := w.WriteString(first.chunk); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}

		for ev := range events {
			if ev.done {
				if ev.err != nil {
					sc.Logger.Printf("summary stream interrupted: %v", ev.err)
				}
				return
			}
			if _, err := w.WriteString(ev.chunk); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})

	return nil
}
