package agent

import "github.com/nathoo/duelcore/types"

// Relapse window, measured from when the venom was delivered.
const (
	RelapseMin = 2 * types.Second
	RelapseMax = 12 * types.Second
)

// RelapseEntry is one venom that may resurface.
type RelapseEntry struct {
	Venom  string     `json:"venom"`
	Origin types.Time `json:"origin"`
	Age    types.Time `json:"age"`
}

// Eligible reports whether the entry may relapse now.
func (e RelapseEntry) Eligible() bool {
	return e.Age >= RelapseMin && e.Age <= RelapseMax
}

// RelapseResolution describes how observed relapses map onto the queue.
type RelapseResolution uint8

const (
	// RelapseNone means no queued entry can explain the observation.
	RelapseNone RelapseResolution = iota
	// RelapseConcrete means exactly the eligible entries relapsed.
	RelapseConcrete
	// RelapseUncertain means some subset of Candidates relapsed.
	RelapseUncertain
)

// RelapseResult is returned by RelapseState.Resolve.
type RelapseResult struct {
	Resolution RelapseResolution
	// Candidates are indices into the queue.
	Candidates []int
	// Count is how many relapses were observed.
	Count int
}

// RelapseState is the queue of pending relapses, oldest first.
type RelapseState struct {
	Entries []RelapseEntry `json:"entries,omitempty"`
}

// Push queues venom delivered at origin.
func (r *RelapseState) Push(venom string, origin types.Time) {
	r.Entries = append(r.Entries, RelapseEntry{Venom: venom, Origin: origin})
}

// Resolve matches n observed relapses against the eligible entries.
func (r *RelapseState) Resolve(n int) RelapseResult {
	var eligible []int
	for i, e := range r.Entries {
		if e.Eligible() {
			eligible = append(eligible, i)
		}
	}
	switch {
	case n <= 0 || len(eligible) < n:
		return RelapseResult{Resolution: RelapseNone, Count: n}
	case len(eligible) == n:
		return RelapseResult{Resolution: RelapseConcrete, Candidates: eligible, Count: n}
	default:
		return RelapseResult{Resolution: RelapseUncertain, Candidates: eligible, Count: n}
	}
}

// Take removes the entries at the given indices and returns their venoms
// in queue order.
func (r *RelapseState) Take(indices []int) []string {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	var venoms []string
	kept := r.Entries[:0:0]
	for i, e := range r.Entries {
		if drop[i] {
			venoms = append(venoms, e.Venom)
			continue
		}
		kept = append(kept, e)
	}
	r.Entries = kept
	return venoms
}

// Len returns the number of queued entries.
func (r *RelapseState) Len() int { return len(r.Entries) }

func (r *RelapseState) wait(d types.Time) {
	kept := r.Entries[:0]
	for _, e := range r.Entries {
		e.Age += d
		if e.Age > RelapseMax {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		kept = nil
	}
	r.Entries = kept
}

func (r RelapseState) clone() RelapseState {
	if r.Entries != nil {
		r.Entries = append([]RelapseEntry(nil), r.Entries...)
	}
	return r
}
