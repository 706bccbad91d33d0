package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"frappeinsight/cache"
	"frappeinsight/config"
	"frappeinsight/db"
	"frappeinsight/models"
)

const (
	defaultQueryLimit = 100
	schemaCacheKey    = "schema:"
)

// ChatService drives the conversational pipeline: one user submission runs
// through DocType selection, schema fan-out, query synthesis, execution and
// insight generation, and resolves to exactly one terminal bot message.
type ChatService struct {
	store       *db.DB
	ai          Reasoner
	gateway     DataGateway
	schemaCache *cache.Cache

	mu                sync.Mutex
	processing        bool
	messages          []models.Message
	memory            []string
	frappeConfig      *models.FrappeConfig
	availableDocTypes []string
	activeSchema      []models.DocType
}

// New restores session state from the store. An empty history is seeded with
// the demo-mode greeting.
func New(store *db.DB, reasoner Reasoner, gateway DataGateway, schemaCache *cache.Cache) (*ChatService, error) {
	s := &ChatService{
		store:        store,
		ai:           reasoner,
		gateway:      gateway,
		schemaCache:  schemaCache,
		activeSchema: config.DemoSchema(),
	}

	messages, err := store.LoadChatHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	memory, err := store.LoadMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to load memory: %w", err)
	}
	frappeConfig, err := store.LoadFrappeConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load connection config: %w", err)
	}

	s.messages = messages
	s.memory = memory
	s.frappeConfig = frappeConfig

	if len(s.messages) == 0 {
		s.messages = []models.Message{greetingMessage()}
		if err := store.SaveChatHistory(s.messages); err != nil {
			log.Printf("[CHAT] Error persisting greeting: %v", err)
		}
	}

	return s, nil
}

func greetingMessage() models.Message {
	return models.Message{
		ID:        "init-1",
		Sender:    models.SenderBot,
		Text:      config.GreetingText,
		Timestamp: time.Now(),
	}
}

func (s *ChatService) persistHistoryLocked() {
	if err := s.store.SaveChatHistory(s.messages); err != nil {
		log.Printf("[CHAT] Error persisting chat history: %v", err)
	}
}

// updateStatus refreshes the thinking placeholder's status line. Purely for
// user feedback; failures never alter pipeline control flow.
func (s *ChatService) updateStatus(id string, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].StatusMessage = status
			s.persistHistoryLocked()
			return
		}
	}
}

// replaceMessage swaps the placeholder for the terminal message of the turn.
// Returns false when the placeholder is gone (session reset mid-flight), in
// which case the stale result is dropped.
func (s *ChatService) replaceMessage(id string, final models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i] = final
			s.persistHistoryLocked()
			return true
		}
	}
	return false
}

// Send submits one user turn and runs the full pipeline synchronously.
// While a turn is in flight, further submissions fail with ErrBusy. The
// returned message is the terminal bot entry (success or error) that
// replaced the thinking placeholder.
func (s *ChatService) Send(ctx context.Context, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, fmt.Errorf("message is empty")
	}

	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return models.Message{}, ErrBusy
	}
	s.processing = true

	// History snapshot before this turn's messages are appended.
	history := make([]models.Message, len(s.messages))
	copy(history, s.messages)
	memory := make([]string, len(s.memory))
	copy(memory, s.memory)
	frappeConfig := s.frappeConfig

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	thinking := models.Message{
		ID:            uuid.NewString(),
		Sender:        models.SenderBot,
		Timestamp:     time.Now(),
		IsThinking:    true,
		StatusMessage: "Initializing...",
	}
	s.messages = append(s.messages, userMsg, thinking)
	s.persistHistoryLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	promptContext := BuildPromptContext(history, memory)

	var final models.Message
	insight, err := s.runPipeline(ctx, thinking.ID, text, frappeConfig, promptContext)
	if err != nil {
		log.Printf("[CHAT] Turn failed: %v", err)
		final = models.Message{
			ID:            uuid.NewString(),
			Sender:        models.SenderBot,
			Text:          fmt.Sprintf("I encountered an error while processing your request:\n\n%s.", err.Error()),
			Timestamp:     time.Now(),
			IsError:       true,
			OriginalQuery: text,
		}
	} else {
		final = models.Message{
			ID:                 uuid.NewString(),
			Sender:             models.SenderBot,
			Text:               insight.Answer,
			Timestamp:          time.Now(),
			Visualization:      insight.Visualization,
			SuggestedQuestions: insight.SuggestedQuestions,
		}
	}

	if !s.replaceMessage(thinking.ID, final) {
		log.Printf("[CHAT] Placeholder %s gone, dropping stale result", thinking.ID)
	}
	// Pipeline failures are terminal messages, not transport errors.
	return final, nil
}

// runPipeline executes the per-turn pipeline. Demo mode goes straight to the
// insight generator with the demo schema; connected mode runs the full
// selector -> schema fan-out -> query synthesis -> execution -> insight chain.
func (s *ChatService) runPipeline(ctx context.Context, thinkingID, text string, frappeConfig *models.FrappeConfig, promptContext string) (*models.InsightResponse, error) {
	if frappeConfig == nil {
		s.updateStatus(thinkingID, "Generating mock analysis...")
		return s.ai.GenerateInsight(ctx, text, config.DemoSchema(), nil, promptContext)
	}

	docTypes, err := s.discoverDocTypes(ctx, frappeConfig)
	if err != nil {
		return nil, err
	}

	s.updateStatus(thinkingID, fmt.Sprintf("Scanning %d DocTypes...", len(docTypes)))
	relevant, err := s.ai.SelectDocTypes(ctx, text, docTypes, promptContext)
	if err != nil {
		return nil, err
	}
	if len(relevant) == 0 {
		return nil, ErrNoRelevantDocType
	}

	s.updateStatus(thinkingID, fmt.Sprintf("Loading schema for: %s...", strings.Join(relevant, ", ")))
	schemas := s.fetchSchemas(ctx, frappeConfig, relevant)
	if len(schemas) == 0 {
		return nil, ErrSchemaUnavailable
	}

	s.updateStatus(thinkingID, "Constructing database query...")
	queryConfig, err := s.ai.GenerateQueryConfig(ctx, text, schemas, promptContext)
	if err != nil {
		return nil, err
	}
	limit := queryConfig.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	s.updateStatus(thinkingID, fmt.Sprintf("Executing query on %s...", queryConfig.Doctype))
	rows, err := s.gateway.ExecuteQuery(ctx, frappeConfig, queryConfig.Doctype, queryConfig.Fields, queryConfig.Filters, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}

	s.updateStatus(thinkingID, "Analyzing results...")
	return s.ai.GenerateInsight(ctx, text, schemas, rows, promptContext)
}

// discoverDocTypes returns the known DocType names, refreshing them from the
// gateway after a restart when the config survived but the discovery did not.
func (s *ChatService) discoverDocTypes(ctx context.Context, frappeConfig *models.FrappeConfig) ([]string, error) {
	s.mu.Lock()
	known := s.availableDocTypes
	s.mu.Unlock()
	if len(known) > 0 {
		return known, nil
	}

	names, err := s.gateway.ListDocTypes(ctx, frappeConfig)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.availableDocTypes = names
	s.activeSchema = namesOnlySchema(names)
	s.mu.Unlock()
	return names, nil
}

// fetchSchemas loads field definitions for the selected DocTypes
// sequentially. Individual failures are logged and skipped; successes are
// cached for five minutes.
func (s *ChatService) fetchSchemas(ctx context.Context, frappeConfig *models.FrappeConfig, names []string) []models.DocType {
	schemas := make([]models.DocType, 0, len(names))
	for _, name := range names {
		if cached, found := s.schemaCache.Get(schemaCacheKey + name); found {
			schemas = append(schemas, cached.(models.DocType))
			continue
		}
		schema, err := s.gateway.FetchDocTypeSchema(ctx, frappeConfig, name)
		if err != nil {
			log.Printf("[CHAT] Skipping DocType %s: %v", name, err)
			continue
		}
		s.schemaCache.SetDefault(schemaCacheKey+name, *schema)
		schemas = append(schemas, *schema)
	}
	return schemas
}

// Retry re-submits the original text of a failed turn.
func (s *ChatService) Retry(ctx context.Context, messageID string) (models.Message, error) {
	s.mu.Lock()
	var original string
	for _, m := range s.messages {
		if m.ID == messageID && m.IsError {
			original = m.OriginalQuery
			break
		}
	}
	s.mu.Unlock()

	if original == "" {
		return models.Message{}, fmt.Errorf("no retryable message with id %s", messageID)
	}
	return s.Send(ctx, original)
}

// Connect verifies the credentials, persists them and attempts DocType
// discovery. A connection that succeeds but fails discovery is a qualified
// success: connection state and discovery state are independent.
func (s *ChatService) Connect(ctx context.Context, frappeConfig models.FrappeConfig) (models.ConnectResponse, error) {
	if !s.gateway.CheckConnection(ctx, &frappeConfig) {
		return models.ConnectResponse{}, fmt.Errorf("could not connect to %s: check URL and credentials", frappeConfig.URL)
	}

	s.mu.Lock()
	s.frappeConfig = &frappeConfig
	if err := s.store.SaveFrappeConfig(&frappeConfig); err != nil {
		log.Printf("[CHAT] Error persisting connection config: %v", err)
	}
	s.mu.Unlock()

	names, err := s.gateway.ListDocTypes(ctx, &frappeConfig)
	if err != nil {
		log.Printf("[CHAT] Connected but DocType discovery failed: %v", err)
		s.appendBotMessage(fmt.Sprintf("Connected to %s, but I could not list its DocTypes yet: %s", frappeConfig.URL, err.Error()))
		return models.ConnectResponse{Connected: true, Warning: err.Error()}, nil
	}

	s.mu.Lock()
	s.availableDocTypes = names
	s.activeSchema = namesOnlySchema(names)
	s.mu.Unlock()

	s.appendBotMessage(fmt.Sprintf("Successfully connected to %s! \n\nI found %d DocTypes. You can now ask me anything about your data, and I will figure out which tables to query.", frappeConfig.URL, len(names)))
	return models.ConnectResponse{Connected: true, DocTypeCount: len(names)}, nil
}

func (s *ChatService) appendBotMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, models.Message{
		ID:        uuid.NewString(),
		Sender:    models.SenderBot,
		Text:      text,
		Timestamp: time.Now(),
	})
	s.persistHistoryLocked()
}

func namesOnlySchema(names []string) []models.DocType {
	schema := make([]models.DocType, 0, len(names))
	for _, name := range names {
		schema = append(schema, models.DocType{Name: name, Fields: []models.DocField{}})
	}
	return schema
}

// Reset clears history, connection config, discovered schema and memory
// together, restores the demo schema and re-seeds the greeting.
func (s *ChatService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(); err != nil {
		return fmt.Errorf("failed to clear persisted state: %w", err)
	}
	s.schemaCache.Flush()

	s.messages = []models.Message{greetingMessage()}
	s.memory = nil
	s.frappeConfig = nil
	s.availableDocTypes = nil
	s.activeSchema = config.DemoSchema()
	s.persistHistoryLocked()
	return nil
}

func (s *ChatService) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *ChatService) Memory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.memory))
	copy(out, s.memory)
	return out
}

func (s *ChatService) AddMemory(fact string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = append(s.memory, fact)
	if err := s.store.SaveMemory(s.memory); err != nil {
		log.Printf("[CHAT] Error persisting memory: %v", err)
	}
}

func (s *ChatService) RemoveMemory(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.memory) {
		return fmt.Errorf("memory index %d out of range", index)
	}
	s.memory = append(s.memory[:index], s.memory[index+1:]...)
	if err := s.store.SaveMemory(s.memory); err != nil {
		log.Printf("[CHAT] Error persisting memory: %v", err)
	}
	return nil
}

func (s *ChatService) Schema() []models.DocType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DocType, len(s.activeSchema))
	copy(out, s.activeSchema)
	return out
}

func (s *ChatService) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frappeConfig != nil
}
