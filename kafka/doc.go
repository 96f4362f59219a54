// Package kafka publishes domain events to a topic and streams them back.
//
// Producer wraps a kafka-go Writer with retries and a circuit breaker, and
// implements the event-publisher contract of the movie-info service.
// Consumer turns the topic into a cold flux.Stream: every subscription opens
// its own reader and tails the topic until cancelled.
//
//	kafka:
//	  enabled: true
//	  brokers: ["localhost:9092"]
//	  topic: "movieinfo-events"
package kafka
