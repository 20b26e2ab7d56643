package tripevents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleet/internal/core/domain/model/trip"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const (
	qosAtLeastOnce = 1
	publishTimeout = 5 * time.Second

	// DeletedStatus is sent in place of a trip status once the trip is gone.
	DeletedStatus = "DELETED"
)

var _ ports.TripChangeNotifier = (*TripStatusPublisher)(nil)

// Publisher is the part of mqtt.Client used here.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// StatusMessage is the payload of <prefix>/trips/<id>/status.
type StatusMessage struct {
	TripID       string               `json:"tripId"`
	Status       string               `json:"status"`
	Version      int64                `json:"version,omitempty"`
	Destinations []DestinationMessage `json:"destinations"`
}

type DestinationMessage struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	ActualArrival *time.Time `json:"actualArrival,omitempty"`
}

// TripStatusPublisher publishes one QoS 1 message per changed trip.
type TripStatusPublisher struct {
	client Publisher
	prefix string
}

func NewTripStatusPublisher(client Publisher, prefix string) (*TripStatusPublisher, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if prefix == "" {
		return nil, errs.NewValueIsRequiredError("prefix")
	}
	return &TripStatusPublisher{client: client, prefix: prefix}, nil
}

// Topic returns the status topic of a trip.
func (p *TripStatusPublisher) Topic(tripID string) string {
	return fmt.Sprintf("%s/trips/%s/status", p.prefix, tripID)
}

// TripsChanged publishes every change and reports all failures joined.
func (p *TripStatusPublisher) TripsChanged(ctx context.Context, changes []ports.TripChange) error {
	var failures []error
	for _, change := range changes {
		msg := newStatusMessage(change)
		payload, err := json.Marshal(msg)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if err := p.publish(ctx, p.Topic(msg.TripID), payload); err != nil {
			failures = append(failures, fmt.Errorf("trip %s: %w", msg.TripID, err))
		}
	}
	return errors.Join(failures...)
}

func (p *TripStatusPublisher) publish(ctx context.Context, topic string, payload []byte) error {
	token := p.client.Publish(topic, qosAtLeastOnce, false, payload)

	timeout := time.NewTimer(publishTimeout)
	defer timeout.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout.C:
		return fmt.Errorf("publish to %s timed out after %s", topic, publishTimeout)
	}
}

func newStatusMessage(change ports.TripChange) StatusMessage {
	msg := StatusMessage{
		TripID:       change.TripID.String(),
		Status:       DeletedStatus,
		Destinations: []DestinationMessage{},
	}
	if change.Trip == nil {
		return msg
	}

	t := change.Trip
	msg.Status = t.Status().String()
	msg.Version = t.Version()
	for _, d := range t.Destinations() {
		msg.Destinations = append(msg.Destinations, destinationMessage(d))
	}
	return msg
}

func destinationMessage(d *trip.Destination) DestinationMessage {
	return DestinationMessage{
		ID:            d.ID().String(),
		Status:        d.Status().String(),
		ActualArrival: d.ActualArrival(),
	}
}

// Connect opens a paho client against broker. The client reconnects on its
// own; lost connections are logged.
func Connect(ctx context.Context, broker, clientID string, log logrus.FieldLogger) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(false).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("mqtt connection lost")
		}).
		SetOnConnectHandler(func(mqtt.Client) {
			log.WithField("broker", broker).Info("mqtt connected")
		})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	select {
	case <-token.Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, err)
	}
	return client, nil
}
