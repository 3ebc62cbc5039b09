// Package history records committed transitions.
//
// A Recorder turns every committed transition into a Record and hands it to a
// Storage. It plugs into a machine as a completion callback, so the engine
// itself stays free of persistence:
//
//	rec, err := history.NewRecorder[Status, Event](storage, func(o *Order) string { return o.ID })
//	if err != nil {
//		return err
//	}
//	m.OnTransitionCompleted(rec.Callback())
//
// Three storages are provided: MemoryStorage for tests and single-process
// use, RedisStorage keeping a capped list per entity, and PostgresStorage
// backed by a migrated table. Storage failures are logged and never fail the
// transition that has already been committed.
package history
