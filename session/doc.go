// Package session holds the conversation data model: messages, ordered
// histories, and a JSON file store.
//
// A Session keeps at most one leading system message; everything else is
// append-only in arrival order. Context eviction removes from the front,
// never the newest message:
//
//	sess := session.New("demo", "You are a helpful assistant.")
//	sess.AppendUser("Hello!")
//	removed, ok := sess.EvictOldest() // ok == false: newest is protected
//
// Sessions carry a dirty flag so stores can skip redundant writes:
//
//	store, _ := session.NewStore("sessions")
//	store.Save(sess)  // writes sessions/demo.json
//	store.Save(sess)  // no-op until the session changes again
package session
