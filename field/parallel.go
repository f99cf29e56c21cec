package field

import "sync"

// workChunk is a half-open range of particle indices.
type workChunk struct {
	start, end int
}

// integrateAll steps every particle in place. Each worker owns a disjoint
// index range, so the result does not depend on the worker count.
func (g *Generator) integrateAll(particles []Particle, prm Params, steps int) {
	numWorkers := min(g.workers, len(particles))
	if numWorkers < 2 || len(particles) < g.threshold {
		g.integrateRange(particles, prm, steps, workChunk{0, len(particles)})
		return
	}

	chunkSize := (len(particles) + numWorkers - 1) / numWorkers

	work := make(chan workChunk, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range work {
				g.integrateRange(particles, prm, steps, chunk)
			}
		}()
	}

	for start := 0; start < len(particles); start += chunkSize {
		work <- workChunk{start: start, end: min(start+chunkSize, len(particles))}
	}
	close(work)
	wg.Wait()
}

func (g *Generator) integrateRange(particles []Particle, prm Params, steps int, c workChunk) {
	for i := c.start; i < c.end; i++ {
		particles[i] = Integrate(particles[i], g.noise, prm, steps)
	}
}
