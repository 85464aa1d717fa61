// Package influxsink records query-executed events as InfluxDB points.
//
// Each event becomes a point in the "query_executed" measurement,
// tagged by connection name and carrying the elapsed milliseconds and
// query text as fields. Writes go through the client's non-blocking
// batched WriteAPI; async write failures surface via an optional
// error callback.
//
// Usage:
//
//	sink, err := influxsink.Connect(cfg.Events.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//
//	conn.SetDispatcher(sink)
package influxsink
