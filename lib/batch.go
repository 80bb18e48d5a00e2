package linden

import (
	"github.com/sourcegraph/conc/pool"
)

// DeriveAll advances every system by the given number of generations, one
// goroutine per system. Instances are independent (each owns its word,
// scratch binding, and random source), so no locking is needed; the first
// error encountered is returned and the remaining systems still finish their
// own derivations.
func DeriveAll(systems []*LSystem, generations int) error {
	p := pool.New().WithErrors().WithFirstError()

	for _, sys := range systems {
		sys := sys
		p.Go(func() error {
			for g := 0; g < generations; g++ {
				if _, err := sys.NextGeneration(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return p.Wait()
}
