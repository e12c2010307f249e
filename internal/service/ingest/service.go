package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"ipolls/internal/classify"
	"ipolls/internal/domain/comment"
)

// CommentSaver persists ingested comments.
type CommentSaver interface {
	SaveComments(ctx context.Context, comments []comment.Comment) error
}

// Config contains configuration for the ingest service.
type Config struct {
	Subreddit      string
	Flair          string
	PostLimit      int
	EventsTopic    string
	LabelSentiment bool
}

// Batch summarizes one completed ingest run.
type Batch struct {
	ID          string    `json:"id"`
	Posts       int       `json:"posts"`
	Comments    int       `json:"comments"`
	CompletedAt time.Time `json:"completed_at"`
}

// Service runs the ingest pipeline: fetch posts and comments from
// Reddit, classify each comment's party, optionally label sentiment,
// persist the batch and announce it on the event bus.
type Service struct {
	reddit     *RedditClient
	sentiment  *SentimentClient
	classifier *classify.Classifier
	store      CommentSaver
	eventBus   *nats.Conn
	config     Config

	handlers []func(Batch) error
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

// NewService creates a new ingest service. sentiment may be nil when
// labeling is disabled.
func NewService(
	reddit *RedditClient,
	sentiment *SentimentClient,
	classifier *classify.Classifier,
	store CommentSaver,
	eventBus *nats.Conn,
	config Config,
) *Service {
	return &Service{
		reddit:     reddit,
		sentiment:  sentiment,
		classifier: classifier,
		store:      store,
		eventBus:   eventBus,
		config:     config,
	}
}

// RegisterBatchHandler registers a callback invoked after every
// completed ingest run.
func (s *Service) RegisterBatchHandler(handler func(Batch) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Run executes one full ingest pass and returns its batch summary.
func (s *Service) Run(ctx context.Context) (Batch, error) {
	s.wg.Add(1)
	defer s.wg.Done()

	posts, err := s.reddit.SearchPosts(ctx, s.config.Subreddit, s.config.Flair, s.config.PostLimit)
	if err != nil {
		return Batch{}, fmt.Errorf("fetching posts: %w", err)
	}
	log.Printf("ingest: fetched %d posts from r/%s", len(posts), s.config.Subreddit)

	var comments []comment.Comment
	for _, post := range posts {
		fetched, err := s.reddit.FetchComments(ctx, s.config.Subreddit, post.ID)
		if err != nil {
			// One bad thread should not sink the batch.
			log.Printf("ingest: fetching comments for post %s: %v", post.ID, err)
			continue
		}
		for _, rc := range fetched {
			comments = append(comments, comment.Comment{
				ID:        uuid.New().String(),
				PostTitle: post.Title,
				Text:      rc.Body,
				PostedAt:  formatCreated(rc.Created),
				Score:     rc.Score,
				Party:     s.classifier.ClassifyParty(rc.Body),
			})
		}
	}
	log.Printf("ingest: collected %d comments", len(comments))

	if s.config.LabelSentiment && s.sentiment != nil {
		for i := range comments {
			if ctx.Err() != nil {
				return Batch{}, ctx.Err()
			}
			comments[i].Sentiment = s.sentiment.Classify(ctx, comments[i].Text)
			s.sentiment.pace(ctx)
		}
	}

	if err := s.store.SaveComments(ctx, comments); err != nil {
		return Batch{}, fmt.Errorf("saving comments: %w", err)
	}

	batch := Batch{
		ID:          uuid.New().String(),
		Posts:       len(posts),
		Comments:    len(comments),
		CompletedAt: time.Now().UTC(),
	}

	if err := s.publishBatchEvent(batch); err != nil {
		log.Printf("ingest: publishing batch event: %v", err)
	}
	s.callBatchHandlers(batch)

	return batch, nil
}

// publishBatchEvent announces a completed batch on the event bus.
func (s *Service) publishBatchEvent(batch Batch) error {
	if s.eventBus == nil {
		return nil
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s.ingested", s.config.EventsTopic)
	return s.eventBus.Publish(topic, data)
}

// callBatchHandlers calls all registered batch handlers.
func (s *Service) callBatchHandlers(batch Batch) {
	s.mu.RLock()
	handlers := make([]func(Batch) error, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			log.Printf("ingest: batch handler: %v", err)
		}
	}
}

// Stop waits for any in-flight run to finish, up to the context
// deadline.
func (s *Service) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
