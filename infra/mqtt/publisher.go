// Package mqtt publishes the latest monthly summary to an MQTT broker so
// home-automation dashboards can subscribe to it.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"chargestat/core/charging"
	"chargestat/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "chargestat/monthly"
	}
	if c.ClientID == "" {
		c.ClientID = "chargestat-" + uuid.NewString()[:8]
	}
	c.Retain = true
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required when mqtt is enabled")
	}
	return nil
}

type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher publishes summary payloads on a fixed topic.
type Publisher struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// NewPublisher connects to the broker.
func NewPublisher(cfg Config) (*Publisher, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetConnectTimeout(10 * time.Second)
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{
		cli:    c,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("mqtt-publisher"),
	}, nil
}

// PublishLatest publishes the most recent monthly row as JSON. Empty runs
// publish nothing.
func (p *Publisher) PublishLatest(rows []charging.TrendRow) error {
	if len(rows) == 0 {
		return nil
	}
	latest := rows[len(rows)-1]
	payload, err := json.Marshal(latest)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if token := p.cli.Publish(p.topic, p.qos, p.retain, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish summary: %w", token.Error())
	}
	p.log.Infof("published %s to %s", latest.Label, p.topic)
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
