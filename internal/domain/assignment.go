package domain

import "fmt"

// Permutation is a candidate recipient ordering: Permutation[i] is the index
// of the recipient drawn for giver i.
type Permutation []int

// Check verifies that p is a permutation of [0,n): exactly n values, each in
// range, no repeats. It says nothing about fixed points.
func (p Permutation) Check(n int) error {
	if len(p) != n {
		return fmt.Errorf("expected %d values, got %d", n, len(p))
	}
	seen := make([]bool, n)
	for i, v := range p {
		if v < 0 || v >= n {
			return fmt.Errorf("value %d at position %d out of range [0,%d)", v, i, n)
		}
		if seen[v] {
			return fmt.Errorf("value %d repeated", v)
		}
		seen[v] = true
	}
	return nil
}

// FixedPoints returns the indices i where p[i] == i. A draw is only usable
// when this is empty.
func (p Permutation) FixedPoints() []int {
	var fixed []int
	for i, v := range p {
		if v == i {
			fixed = append(fixed, i)
		}
	}
	return fixed
}

// Assignment pairs one giver with the recipient they drew.
type Assignment struct {
	Giver     Participant
	Recipient Participant
}

// AssignmentSet is the finished giver→recipient mapping, ordered by the
// roster. It is built once per draw and never persisted.
type AssignmentSet []Assignment

// BuildAssignmentSet maps a fixed-point-free permutation over the roster.
// It rejects permutations that still contain fixed points so a caller bug
// can never produce a self-assignment.
func BuildAssignmentSet(roster Roster, perm Permutation) (AssignmentSet, error) {
	if err := perm.Check(len(roster)); err != nil {
		return nil, &OpError{
			Op:   "assignment.build",
			Kind: KindInvalidResponse,
			Err:  err,
		}
	}
	if fixed := perm.FixedPoints(); len(fixed) > 0 {
		return nil, &OpError{
			Op:   "assignment.build",
			Kind: KindInvalidResponse,
			Err:  fmt.Errorf("permutation has %d fixed point(s)", len(fixed)),
		}
	}

	set := make(AssignmentSet, len(roster))
	for i, j := range perm {
		set[i] = Assignment{Giver: roster[i], Recipient: roster[j]}
	}
	return set, nil
}

// Validate re-checks the full invariant on a finished set: one assignment per
// participant, every participant receives exactly once, nobody draws
// themselves.
func (s AssignmentSet) Validate(roster Roster) error {
	if len(s) != len(roster) {
		return fmt.Errorf("expected %d assignments, got %d", len(roster), len(s))
	}

	received := make(map[string]bool, len(roster))
	for i, a := range s {
		if a.Giver.Identity() != roster[i].Identity() {
			return fmt.Errorf("assignment %d: giver %s does not match roster order", i, a.Giver.Identity())
		}
		if a.Giver.Identity() == a.Recipient.Identity() {
			return fmt.Errorf("assignment %d: %s drew themselves", i, a.Giver.Identity())
		}
		if received[a.Recipient.Identity()] {
			return fmt.Errorf("assignment %d: %s receives more than once", i, a.Recipient.Identity())
		}
		received[a.Recipient.Identity()] = true
	}

	for _, p := range roster {
		if !received[p.Identity()] {
			return fmt.Errorf("%s never receives a gift", p.Identity())
		}
	}
	return nil
}
