// Package websocket streams walk events to subscribed clients.
//
// A central Hub owns every subscriber. Clients subscribe to one topic when
// they connect, usually a board name; clients on AllTopics receive every
// event. Each connection gets a read pump and a write pump goroutine, and the
// hub goroutine is the only one that touches the subscriber map.
//
// Messages are JSON objects:
//
//	{"topic": "5x5", "event": "walk_completed", "data": {...}}
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("board"))
//	})
//
//	hub.Publish("5x5", websocket.EventWalkCompleted, result)
package websocket
