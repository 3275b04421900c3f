// ABOUTME: LLM extraction of structured deal input from raw emails
// ABOUTME: Talks to Mistral through an OpenAI-compatible chat completion API
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/lecanape/canape/mailbox"
	"github.com/lecanape/canape/models"
)

const (
	defaultModel = "mistral-large-latest"

	// One model call per second keeps batch runs inside the API quota.
	rateInterval = time.Second
)

const instructions = `Tu es un excellent assistant commercial. Ton travail est d'extraire de l'information commerciale des mails que l'on te soumet. Ces informations permettront le remplissage de fiches clients dans un CRM.`

const schemaDescription = `Le JSON doit suivre exactement ce schéma :
{
  "dealTitle": "titre court du deal (obligatoire)",
  "organizer": {"name": "nom de la structure organisatrice (obligatoire)", "email": "email de contact (obligatoire)"},
  "decisionMaker": {"name": "...", "email": "...", "phoneNumber": "..."} (optionnel, omis si inconnu),
  "gig": {"show": {"title": "titre du spectacle"}, "timestamp": "date ou date-heure de la représentation", "city": "ville (optionnel)"} (optionnel, omis si aucune représentation n'est évoquée)
}
Ne renvoie que le JSON, sans aucun texte autour.`

// ExtractionError reports an email whose LLM answer could not be turned
// into a valid deal input.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// Extractor turns raw emails into structured deal inputs. Answers are
// cached by email fingerprint so re-running a batch does not re-bill
// already extracted messages.
type Extractor struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	cache   *Cache
}

// NewExtractor builds an extractor against a Mistral-compatible endpoint.
// cache may be nil to disable caching.
func NewExtractor(apiKey, baseURL, model string, cache *Cache) *Extractor {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Extractor{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		limiter: rate.NewLimiter(rate.Every(rateInterval), 1),
		cache:   cache,
	}
}

// Extract returns the structured deal input for one email, from cache
// when available, otherwise by querying the model.
func (e *Extractor) Extract(ctx context.Context, email mailbox.Email) (models.CreateDealInput, error) {
	fingerprint := email.Fingerprint()

	if e.cache != nil {
		if raw, ok := e.cache.Get(fingerprint); ok {
			log.Debug("extraction cache hit", "fingerprint", fingerprint[:12])
			return parseAnswer(raw)
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return models.CreateDealInput{}, err
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.2,
		MaxTokens:   2048,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(email)},
		},
	})
	if err != nil {
		return models.CreateDealInput{}, fmt.Errorf("failed to query model: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.CreateDealInput{}, &ExtractionError{Reason: "model returned no choices"}
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return models.CreateDealInput{}, &ExtractionError{Reason: "model returned an empty answer"}
	}

	input, err := parseAnswer([]byte(answer))
	if err != nil {
		return models.CreateDealInput{}, err
	}

	if e.cache != nil {
		if err := e.cache.Put(fingerprint, []byte(answer)); err != nil {
			log.Warn("failed to cache extraction", "err", err)
		}
	}

	return input, nil
}

func buildPrompt(email mailbox.Email) string {
	return fmt.Sprintf(`%s

Tu as reçu ce mail

# BEGIN EMAIL
%s# END EMAIL

Extrais les informations demandées dans le format JSON structuré selon le schéma fourni.

%s`, instructions, email.Serialize(), schemaDescription)
}

// Wire shapes for the model's JSON answer.
type wirePayload struct {
	DealTitle     string         `json:"dealTitle"`
	Organizer     *wireOrganizer `json:"organizer"`
	DecisionMaker *wirePerson    `json:"decisionMaker"`
	Gig           *wireGig       `json:"gig"`
}

type wireOrganizer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type wirePerson struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type wireGig struct {
	Show      wireShow `json:"show"`
	Timestamp string   `json:"timestamp"`
	City      string   `json:"city"`
	GigTitle  string   `json:"gigTitle"`
}

type wireShow struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func parseAnswer(raw []byte) (models.CreateDealInput, error) {
	var payload wirePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.CreateDealInput{}, &ExtractionError{Reason: fmt.Sprintf("invalid JSON answer: %v", err)}
	}
	return payload.toInput()
}

func (p wirePayload) toInput() (models.CreateDealInput, error) {
	if strings.TrimSpace(p.DealTitle) == "" {
		return models.CreateDealInput{}, &ExtractionError{Reason: "missing deal title"}
	}
	if p.Organizer == nil {
		return models.CreateDealInput{}, &ExtractionError{Reason: "missing organizer"}
	}

	var organizer models.OrganizerRef
	switch {
	case p.Organizer.ID != "":
		organizer = models.OrganizerByID(p.Organizer.ID)
	case strings.TrimSpace(p.Organizer.Name) != "":
		organizer = models.OrganizerByName(models.OrganizerFields{
			Name:  strings.TrimSpace(p.Organizer.Name),
			Email: strings.TrimSpace(p.Organizer.Email),
		})
	default:
		return models.CreateDealInput{}, &ExtractionError{Reason: "organizer has neither id nor name"}
	}

	input := models.CreateDealInput{
		DealTitle: strings.TrimSpace(p.DealTitle),
		Organizer: organizer,
	}

	if p.DecisionMaker != nil {
		var person models.PersonRef
		switch {
		case p.DecisionMaker.ID != "":
			person = models.PersonByID(p.DecisionMaker.ID)
		case strings.TrimSpace(p.DecisionMaker.Name) != "":
			person = models.PersonByName(models.PersonFields{
				Name:        strings.TrimSpace(p.DecisionMaker.Name),
				Email:       strings.TrimSpace(p.DecisionMaker.Email),
				PhoneNumber: strings.TrimSpace(p.DecisionMaker.PhoneNumber),
			})
		default:
			return models.CreateDealInput{}, &ExtractionError{Reason: "decision maker has neither id nor name"}
		}
		input.DecisionMaker = &person
	}

	if p.Gig != nil {
		var show models.ShowRef
		switch {
		case p.Gig.Show.ID != "":
			show = models.ShowByID(p.Gig.Show.ID)
		case strings.TrimSpace(p.Gig.Show.Title) != "":
			show = models.ShowByTitle(strings.TrimSpace(p.Gig.Show.Title))
		default:
			return models.CreateDealInput{}, &ExtractionError{Reason: "gig has no show reference"}
		}
		if strings.TrimSpace(p.Gig.Timestamp) == "" {
			return models.CreateDealInput{}, &ExtractionError{Reason: "gig has no timestamp"}
		}
		input.Gig = &models.GigInput{
			Show:      show,
			Timestamp: strings.TrimSpace(p.Gig.Timestamp),
			City:      strings.TrimSpace(p.Gig.City),
			GigTitle:  strings.TrimSpace(p.Gig.GigTitle),
		}
	}

	return input, nil
}
