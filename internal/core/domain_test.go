package core

import "testing"

func TestNewTransaction_NormalizesCriticality(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "internal space removed", in: "Non Essential", want: "NonEssential"},
		{name: "already canonical", in: "NonEssential", want: "NonEssential"},
		{name: "surrounding whitespace", in: "  Essential ", want: "Essential"},
		{name: "spaces everywhere", in: " Non  Essential ", want: "NonEssential"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := NewTransaction(Transaction{Name: "x", Criticality: tt.in})
			if tx.Criticality != tt.want {
				t.Errorf("NewTransaction criticality = %q, want %q", tx.Criticality, tt.want)
			}
		})
	}
}

func TestNewTransaction_DefaultStatus(t *testing.T) {
	tx := NewTransaction(Transaction{Name: "x"})
	if tx.Status != StatusImported {
		t.Errorf("default status = %q, want %q", tx.Status, StatusImported)
	}

	tx = NewTransaction(Transaction{Name: "x", Status: "active"})
	if tx.Status != "active" {
		t.Errorf("explicit status = %q, want active", tx.Status)
	}
}

func TestCanonicalPerson(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "josh", want: PersonJosh, wantOK: true},
		{in: " JOSH ", want: PersonJosh, wantOK: true},
		{in: "Anna", want: PersonAnna, wantOK: true},
		{in: "joint", want: AccountJoint, wantOK: true},
		{in: "someone else", want: "", wantOK: false},
		{in: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CanonicalPerson(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CanonicalPerson(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewProjectedExpenses_JointSplitsInTwo(t *testing.T) {
	got := NewProjectedExpenses("Joint", "Essential", "Groceries", 120)
	if len(got) != 2 {
		t.Fatalf("joint plan produced %d records, want 2", len(got))
	}
	if got[0].Person != PersonJosh || got[1].Person != PersonAnna {
		t.Errorf("persons = %q, %q, want Josh, Anna", got[0].Person, got[1].Person)
	}
	for _, p := range got {
		if p.Amount != 60 {
			t.Errorf("%s amount = %v, want 60", p.Person, p.Amount)
		}
		if !p.IsJoint {
			t.Errorf("%s missing joint flag", p.Person)
		}
	}
	if got[0].Amount+got[1].Amount != 120 {
		t.Errorf("halves sum to %v, want 120", got[0].Amount+got[1].Amount)
	}
}

func TestNewProjectedExpenses_Individual(t *testing.T) {
	got := NewProjectedExpenses("anna", "Non Essential", "Books", 40)
	if len(got) != 1 {
		t.Fatalf("individual plan produced %d records, want 1", len(got))
	}
	p := got[0]
	if p.Person != PersonAnna || p.Criticality != CriticalityNonEssential || p.Amount != 40 || p.IsJoint {
		t.Errorf("unexpected record: %+v", p)
	}
}

func TestProjectedExpense_MatchesKey(t *testing.T) {
	p := ProjectedExpense{Person: "Josh", Criticality: "NonEssential", Subcategory: "Dining"}

	if !p.MatchesKey(" josh ", "Non Essential", "DINING") {
		t.Error("expected case-insensitive trimmed match")
	}
	if p.MatchesKey("Anna", "NonEssential", "Dining") {
		t.Error("matched wrong person")
	}
	if p.MatchesKey("Josh", "Essential", "Dining") {
		t.Error("matched wrong criticality")
	}
}
