// Package mqttsink forwards query-executed events to an MQTT broker.
//
// Each event is published as JSON to "<topic_prefix>/query-executed".
// The sink is fire-and-forget from the connection's point of view:
// publish failures are logged through an optional logger and dropped,
// so broker availability never affects statement execution.
//
// Usage:
//
//	sink, err := mqttsink.Connect(cfg.Events.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//
//	conn.SetDispatcher(sink)
package mqttsink
