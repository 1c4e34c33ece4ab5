package kafka

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"reelbot/task"
)

// Request is one video-generation message on the requests topic
type Request struct {
	ID     string      `json:"id,omitempty"`
	Params task.Params `json:"params"`
}

// Runner starts a pipeline run for a consumed request
type Runner func(ctx context.Context, id string, params task.Params) (*task.Status, error)

// Config holds consumer configuration
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
	Run     Runner
}

// Consumer reads generation requests from the requests topic and feeds
// them to the pipeline. Malformed or empty requests are committed and
// dropped so they cannot wedge the partition; requests whose pipeline
// run fails stay uncommitted and are redelivered.
type Consumer struct {
	group   sarama.ConsumerGroup
	run     Runner
	topic   string
	groupID string
	ready   chan struct{}
}

// NewConsumer joins the consumer group for the requests topic
func NewConsumer(cfg Config) (*Consumer, error) {
	sc := sarama.NewConfig()
	sc.Version = sarama.V3_6_0_0
	sc.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	sc.Consumer.Offsets.Initial = sarama.OffsetNewest
	sc.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		run:     cfg.Run,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		ready:   make(chan struct{}),
	}, nil
}

// Start begins consuming; it returns once the group session is up
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, c); err != nil {
				if err == context.Canceled {
					return
				}
				log.Printf("❌ Kafka consume error: %v", err)
			}
			if ctx.Err() != nil {
				return
			}
			// Session ended (rebalance); rejoin with a fresh ready gate
			c.ready = make(chan struct{})
		}
	}()

	<-c.ready
	log.Printf("✅ Listening for generation requests (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("❌ Kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close shuts down the consumer group
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

// RunUntilSignal consumes until SIGINT/SIGTERM, then drains and closes
func (c *Consumer) RunUntilSignal() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.Start(ctx); err != nil {
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm
	log.Println("Received termination signal")
	cancel()

	// Give in-flight renders a moment to finish
	time.Sleep(2 * time.Second)
	return c.Close()
}

// Setup implements sarama.ConsumerGroupHandler
func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-c.ready:
	default:
		close(c.ready)
	}
	return nil
}

// Cleanup implements sarama.ConsumerGroupHandler
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim drains one partition claim until the session ends
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok || msg == nil {
				return nil
			}

			commit, err := c.handle(session.Context(), msg.Value)
			if err != nil {
				log.Printf("❌ Request at partition=%d offset=%d failed, leaving for redelivery: %v",
					msg.Partition, msg.Offset, err)
			}
			if commit {
				session.MarkMessage(msg, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// handle decodes and runs one request payload. The returned commit
// flag reports whether the offset should be marked: poison and empty
// messages are marked so the partition keeps moving, pipeline failures
// are not so the group retries them.
func (c *Consumer) handle(ctx context.Context, payload []byte) (commit bool, err error) {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("⚠️ Dropping malformed request: %v", err)
		return true, nil
	}
	if req.Params.Subject == "" && req.Params.Script == "" && req.Params.SourceText == "" && req.Params.ArticleURL == "" {
		log.Printf("⚠️ Dropping request with nothing to narrate (id=%s)", req.ID)
		return true, nil
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	log.Printf("🎬 Processing request: id=%s subject=%q", id, req.Params.Subject)

	if _, err := c.run(ctx, id, req.Params); err != nil {
		return false, err
	}

	log.Printf("✅ Request complete: id=%s", id)
	return true, nil
}

// BrokersFromEnv parses the broker list from KAFKA_BOOTSTRAP_SERVERS
func BrokersFromEnv() []string {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		brokers = "localhost:9093"
	}
	return strings.Split(brokers, ",")
}

// TopicFromEnv returns the requests topic name
func TopicFromEnv() string {
	topic := os.Getenv("KAFKA_TOPIC_VIDEO_REQUESTS")
	if topic == "" {
		topic = "video-generation-requests"
	}
	return topic
}

// GroupIDFromEnv returns the consumer group ID
func GroupIDFromEnv() string {
	groupID := os.Getenv("KAFKA_CONSUMER_GROUP_ID")
	if groupID == "" {
		groupID = "reelbot-consumer-group"
	}
	return groupID
}
