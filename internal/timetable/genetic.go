package timetable

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// GeneticConfig tunes the evolutionary search. Zero values fall back to
// the defaults below.
type GeneticConfig struct {
	Generations    int
	PopulationSize int
	MutationRate   float64
}

const (
	defaultGenerations    = 200
	defaultPopulationSize = 100
	defaultMutationRate   = 0.05
)

func (c GeneticConfig) withDefaults() GeneticConfig {
	if c.Generations <= 0 {
		c.Generations = defaultGenerations
	}
	if c.PopulationSize <= 0 {
		c.PopulationSize = defaultPopulationSize
	}
	if c.MutationRate <= 0 {
		c.MutationRate = defaultMutationRate
	}
	return c
}

// sessionRef pairs a session with its owning course.
type sessionRef struct {
	course  Course
	session Session
}

// Genetic runs the evolutionary strategy: a population of greedily
// constructed candidate schedules evolved through tournament selection,
// single-point crossover and relocation mutation. The best individual
// ever evaluated is kept across the whole run, so more generations can
// only improve the returned schedule for a fixed seed, and the output
// is never worse than the best initial construction.
func Genetic(snap Snapshot, cfg GeneticConfig, rng *rand.Rand) Result {
	cfg = cfg.withDefaults()

	availability := make(map[string]map[string][]int, len(snap.Teachers))
	for _, t := range snap.Teachers {
		availability[t.ID] = deriveAvailability(t.Availability)
	}
	required := requiredSessions(snap.Courses)

	population := make([][]Entry, cfg.PopulationSize)
	for i := range population {
		population[i] = buildIndividual(required, availability, snap.Rooms, rng)
	}

	var best []Entry
	bestScore := -1

	for gen := 0; gen < cfg.Generations; gen++ {
		scores := evaluateAll(population)
		updateBest(&best, &bestScore, population, scores)

		pool, poolScores := feasibleSubset(population, scores)

		selected := make([][]Entry, cfg.PopulationSize)
		for k := range selected {
			selected[k] = cloneGenes(tournament(pool, poolScores, rng))
		}

		next := make([][]Entry, 0, cfg.PopulationSize+1)
		for i := 0; i < cfg.PopulationSize; i += 2 {
			p1 := selected[i]
			p2 := selected[(i+1)%cfg.PopulationSize]
			cut := 1
			if len(p1) > 1 {
				cut = 1 + rng.Intn(len(p1)-1)
			}
			next = append(next, splice(p1, p2, cut), splice(p2, p1, cut))
		}
		if len(next) > cfg.PopulationSize {
			next = next[:cfg.PopulationSize]
		}

		for i := range next {
			mutate(next[i], availability, cfg.MutationRate, rng)
		}
		population = next
	}

	scores := evaluateAll(population)
	updateBest(&best, &bestScore, population, scores)

	return assembleGenetic(best, bestScore, required)
}

// requiredSessions flattens every (course, session) pair in snapshot
// order, theory before lab within each course. Courses with data gaps
// still contribute pairs so the result reports them unscheduled.
func requiredSessions(courses []Course) []sessionRef {
	var refs []sessionRef
	for _, course := range courses {
		for _, session := range course.orderedSessions() {
			refs = append(refs, sessionRef{course: course, session: session})
		}
	}
	return refs
}

// buildIndividual greedily constructs one candidate schedule. Sessions
// that cannot be placed without breaking a hard constraint are simply
// omitted; a lab gene is only placed once its course has a theory gene.
func buildIndividual(refs []sessionRef, availability map[string]map[string][]int, rooms []Room, rng *rand.Rand) []Entry {
	var genes []Entry
	for _, ref := range refs {
		course, session := ref.course, ref.session
		av := availability[course.TeacherID]
		if len(av) == 0 || len(course.Departments) == 0 {
			continue
		}
		if session.Kind == KindLab && !hasTheory(genes, course.ID) {
			continue
		}
		students := course.Enrollment()
		eligible := matchRooms(session.Kind, rooms, students)
		if len(eligible) == 0 {
			continue
		}

		days := availableDays(av)
		rng.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })

		departments := course.departmentNames()
		placed := false
		for _, day := range days {
			forEachRun(av[day], session.Hours, func(span Range) bool {
				order := append([]Room(nil), eligible...)
				rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
				for _, room := range order {
					cand := Entry{
						Day:          dayTitle(day),
						Span:         span,
						CourseID:     course.ID,
						RoomID:       room.ID,
						TeacherID:    course.TeacherID,
						Departments:  departments,
						Level:        course.Level,
						SessionID:    session.ID,
						Kind:         session.Kind,
						Hours:        session.Hours,
						Students:     students,
						RoomCapacity: room.Capacity,
					}
					if placementOK(genes, cand) {
						genes = append(genes, cand)
						placed = true
						return false
					}
				}
				return true
			})
			if placed {
				break
			}
		}
	}
	return genes
}

// fitness is all-or-nothing: any teacher or room double-booking, or any
// over-capacity room, zeroes the individual; otherwise the score is the
// number of placed genes.
func fitness(genes []Entry) int {
	for i := 0; i < len(genes); i++ {
		if genes[i].RoomCapacity < genes[i].Students {
			return 0
		}
		for j := i + 1; j < len(genes); j++ {
			a, b := genes[i], genes[j]
			if a.Day != b.Day || !a.Span.Overlaps(b.Span) {
				continue
			}
			if a.TeacherID == b.TeacherID || a.RoomID == b.RoomID {
				return 0
			}
		}
	}
	return len(genes)
}

// evaluateAll scores the population on a worker pool. fitness is pure,
// so the result is independent of scheduling order.
func evaluateAll(population [][]Entry) []int {
	scores := make([]int, len(population))
	workers := runtime.NumCPU()
	if workers > len(population) {
		workers = len(population)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i] = fitness(population[i])
			}
		}()
	}
	for i := range population {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return scores
}

func updateBest(best *[]Entry, bestScore *int, population [][]Entry, scores []int) {
	for i, score := range scores {
		if score > *bestScore {
			*bestScore = score
			*best = cloneGenes(population[i])
		}
	}
}

// feasibleSubset restricts selection to individuals with positive
// fitness; if none exist the whole population stays eligible.
func feasibleSubset(population [][]Entry, scores []int) ([][]Entry, []int) {
	var pool [][]Entry
	var poolScores []int
	for i, score := range scores {
		if score > 0 {
			pool = append(pool, population[i])
			poolScores = append(poolScores, score)
		}
	}
	if len(pool) == 0 {
		return population, scores
	}
	return pool, poolScores
}

// tournament draws two contenders with replacement and keeps the fitter
// one; on a tie the second draw wins.
func tournament(pool [][]Entry, scores []int, rng *rand.Rand) []Entry {
	i := rng.Intn(len(pool))
	j := rng.Intn(len(pool))
	if scores[i] > scores[j] {
		return pool[i]
	}
	return pool[j]
}

// splice builds a crossover child from head[:cut] + tail[cut:], with
// cut clamped to each parent's length.
func splice(head, tail []Entry, cut int) []Entry {
	if cut > len(head) {
		cut = len(head)
	}
	child := make([]Entry, 0, len(head)+len(tail))
	child = append(child, head[:cut]...)
	if cut < len(tail) {
		child = append(child, tail[cut:]...)
	}
	return child
}

// mutate relocates one random gene to the first admissible slot found
// in a deterministic day-ordered scan, keeping the room. The individual
// is left untouched when no admissible relocation exists.
func mutate(genes []Entry, availability map[string]map[string][]int, rate float64, rng *rand.Rand) {
	if len(genes) == 0 || rng.Float64() >= rate {
		return
	}
	idx := rng.Intn(len(genes))
	gene := genes[idx]

	others := make([]Entry, 0, len(genes)-1)
	others = append(others, genes[:idx]...)
	others = append(others, genes[idx+1:]...)

	av := availability[gene.TeacherID]
	for _, day := range availableDays(av) {
		relocated := false
		forEachRun(av[day], gene.Hours, func(span Range) bool {
			cand := gene
			cand.Day = dayTitle(day)
			cand.Span = span
			if placementOK(others, cand) {
				genes[idx] = cand
				relocated = true
				return false
			}
			return true
		})
		if relocated {
			return
		}
	}
}

// assembleGenetic turns the best individual into a Result: lab genes
// whose theory sibling was lost to crossover are dropped, and every
// required session missing from the individual is reported unscheduled.
// Perfect marks a conflict-free best individual (fitness equals its own
// gene count); it does not imply every session was placed.
func assembleGenetic(best []Entry, bestScore int, required []sessionRef) Result {
	present := make(map[string]bool, len(best))
	for _, g := range best {
		present[g.SessionID] = true
	}

	var kept []Entry
	var unscheduled []Unscheduled
	for _, g := range best {
		if g.Kind == KindLab && !hasTheory(best, g.CourseID) {
			unscheduled = append(unscheduled, Unscheduled{CourseID: g.CourseID, Reason: "lab session requires a scheduled theory session"})
			continue
		}
		kept = append(kept, g)
	}

	for _, ref := range required {
		if present[ref.session.ID] {
			continue
		}
		reason := fmt.Sprintf("%.1f hour %s session could not be scheduled without conflicts", ref.session.Hours, ref.session.Kind)
		unscheduled = append(unscheduled, Unscheduled{CourseID: ref.course.ID, Reason: reason})
	}

	result := newResult(kept, unscheduled)
	result.Perfect = bestScore == len(best)
	return result
}

func hasTheory(genes []Entry, courseID string) bool {
	for _, g := range genes {
		if g.CourseID == courseID && g.Kind == KindTheory {
			return true
		}
	}
	return false
}

func cloneGenes(genes []Entry) []Entry {
	return append([]Entry(nil), genes...)
}
