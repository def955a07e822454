// Package workers runs the agent's background workers: the periodic sync
// job and the connectivity probe. The Workers aggregate starts them
// together and stops them in reverse order.
package workers

// Worker is implemented by every background worker. Run either blocks for
// the duration of the work or spawns goroutines internally; workers that
// spawn goroutines also implement Stop.
type Worker interface {
	Run()
}
