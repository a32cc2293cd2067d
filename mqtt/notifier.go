package mqtt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"wayfindr-map/config"
	"wayfindr-map/models"
)

// Notifier publishes map-update events over MQTT so robots learn about zone
// and waypoint changes without waiting for their next poll cycle. Events
// carry no map content; robots re-fetch state through the snapshot endpoint.
type Notifier struct {
	client      mqtt.Client
	topicPrefix string
	logger      *slog.Logger
}

// NewNotifier creates and connects a notifier.
func NewNotifier(cfg *config.Config, logger *slog.Logger) (*Notifier, error) {
	notifier := &Notifier{
		topicPrefix: cfg.MQTTTopicPrefix,
		logger:      logger.With("component", "mqtt_notifier"),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID).
		SetUsername(cfg.MQTTUsername).
		SetPassword(cfg.MQTTPassword).
		SetKeepAlive(60 * time.Second).
		SetPingTimeout(1 * time.Second).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(10 * time.Second).
		SetCleanSession(true).
		SetOnConnectHandler(notifier.onConnect).
		SetConnectionLostHandler(notifier.onConnectionLost)

	client := mqtt.NewClient(opts)
	notifier.client = client

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return notifier, nil
}

func (n *Notifier) onConnect(client mqtt.Client) {
	n.logger.Info("Connected to MQTT broker")
}

func (n *Notifier) onConnectionLost(client mqtt.Client, err error) {
	n.logger.Error("MQTT connection lost. Reconnecting...", slog.Any("error", err))
}

// PublishMapUpdate publishes an event on <prefix>/updates/<floor_id>, or
// <prefix>/updates/all for events that are not scoped to one floor.
// Publishing is fire-and-forget at QoS 1: a robot that misses an event still
// converges on its next scheduled poll.
func (n *Notifier) PublishMapUpdate(event models.MapUpdateEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("Failed to marshal map update event", slog.Any("error", err))
		return
	}

	scope := event.FloorID
	if scope == "" {
		scope = "all"
	}
	topic := fmt.Sprintf("%s/updates/%s", n.topicPrefix, scope)

	token := n.client.Publish(topic, 1, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			n.logger.Warn("Failed to publish map update",
				"topic", topic, "event_type", event.Type, slog.Any("error", token.Error()))
		}
	}()
}

// Disconnect gracefully disconnects the client.
func (n *Notifier) Disconnect() {
	if n.client.IsConnected() {
		n.client.Disconnect(250)
		n.logger.Info("MQTT notifier disconnected")
	}
}
