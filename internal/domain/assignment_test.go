package domain

import "testing"

func TestPermutationCheck(t *testing.T) {
	cases := []struct {
		name    string
		perm    Permutation
		n       int
		wantErr bool
	}{
		{"valid", Permutation{1, 0, 3, 2}, 4, false},
		{"short", Permutation{1, 0}, 4, true},
		{"long", Permutation{1, 0, 3, 2, 4}, 4, true},
		{"out of range", Permutation{1, 0, 4, 2}, 4, true},
		{"negative", Permutation{1, 0, -1, 2}, 4, true},
		{"duplicate", Permutation{1, 0, 1, 2}, 4, true},
	}

	for _, tc := range cases {
		err := tc.perm.Check(tc.n)
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestPermutationFixedPoints(t *testing.T) {
	perm := Permutation{0, 2, 1, 3}
	fixed := perm.FixedPoints()
	if len(fixed) != 2 || fixed[0] != 0 || fixed[1] != 3 {
		t.Fatalf("expected fixed points [0 3], got %v", fixed)
	}

	if got := (Permutation{1, 0, 3, 2}).FixedPoints(); len(got) != 0 {
		t.Fatalf("expected no fixed points, got %v", got)
	}
}

func TestBuildAssignmentSet(t *testing.T) {
	r := roster(4)

	set, err := BuildAssignmentSet(r, Permutation{1, 0, 3, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set[0].Giver.Email != r[0].Email || set[0].Recipient.Email != r[1].Email {
		t.Fatalf("expected %s -> %s, got %s -> %s", r[0].Email, r[1].Email, set[0].Giver.Email, set[0].Recipient.Email)
	}
	if set[2].Recipient.Email != r[3].Email {
		t.Fatalf("expected third giver to draw %s", r[3].Email)
	}

	if err := set.Validate(r); err != nil {
		t.Fatalf("expected valid set: %v", err)
	}
}

func TestBuildAssignmentSetRejectsFixedPoint(t *testing.T) {
	_, err := BuildAssignmentSet(roster(3), Permutation{0, 2, 1})
	if err == nil {
		t.Fatalf("expected error for fixed point")
	}
	if !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid_response, got %v", err)
	}
}

func TestBuildAssignmentSetRejectsBadPermutation(t *testing.T) {
	_, err := BuildAssignmentSet(roster(3), Permutation{1, 0})
	if err == nil {
		t.Fatalf("expected error for short permutation")
	}
}

func TestAssignmentSetValidateCatchesSelfDraw(t *testing.T) {
	r := roster(2)
	set := AssignmentSet{
		{Giver: r[0], Recipient: r[0]},
		{Giver: r[1], Recipient: r[1]},
	}

	if err := set.Validate(r); err == nil {
		t.Fatalf("expected self-draw to fail validation")
	}
}

func TestAssignmentSetValidateCatchesDoubleReceive(t *testing.T) {
	r := roster(3)
	set := AssignmentSet{
		{Giver: r[0], Recipient: r[1]},
		{Giver: r[1], Recipient: r[0]},
		{Giver: r[2], Recipient: r[0]},
	}

	if err := set.Validate(r); err == nil {
		t.Fatalf("expected double receive to fail validation")
	}
}
