package migrate

import (
	"strings"
	"testing"

	"github.com/sqlmorph/sqlmorph/schema"
)

func tagSchema(family schema.Family) *schema.Schema {
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.Column("tag", family)
	cat.PrimaryKey("Cat_pkey", id)
	return b.Build()
}

func TestPlanWithholdsUnexecutableChanges(t *testing.T) {
	previous := tagSchema(schema.FamilyDecimal)
	next := tagSchema(schema.FamilyBoolean)

	plan, err := NewPlan(previous, next, "postgresql", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if !plan.Blocked() {
		t.Fatal("expected the plan to be blocked")
	}
	if len(plan.Statements) != 0 {
		t.Errorf("expected no statements, got %v", plan.Statements)
	}
	var named bool
	for _, d := range plan.Diagnostics {
		if d.Column == "tag" {
			named = true
		}
	}
	if !named {
		t.Errorf("diagnostics do not name the column: %+v", plan.Diagnostics)
	}
}

func TestPlanForceRendersDropAndRecreate(t *testing.T) {
	previous := tagSchema(schema.FamilyDecimal)
	next := tagSchema(schema.FamilyBoolean)

	plan, err := NewPlan(previous, next, "postgresql", Options{Force: true})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.Blocked() {
		t.Fatal("forced plan must not be blocked")
	}
	want := `ALTER TABLE "Cat" DROP COLUMN "tag",
ADD COLUMN "tag" BOOLEAN NOT NULL`
	if len(plan.Statements) != 1 || plan.Statements[0] != want {
		t.Errorf("got statements %v, want [%s]", plan.Statements, want)
	}
	// The diagnostics still ride along for display.
	if len(plan.Diagnostics) == 0 {
		t.Error("expected diagnostics on the forced plan")
	}
}

func TestPlanEmptyDiff(t *testing.T) {
	s := tagSchema(schema.FamilyString)
	plan, err := NewPlan(s, s, "mysql", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.HasChanges() {
		t.Errorf("expected no changes, got %d steps", len(plan.Steps))
	}
	if plan.Script != "-- This is an empty migration." {
		t.Errorf("unexpected script: %q", plan.Script)
	}
	if !strings.Contains(plan.DriftSummary(), "No changes detected.") {
		t.Errorf("unexpected summary: %q", plan.DriftSummary())
	}
}

func TestPlanUnknownProvider(t *testing.T) {
	s := tagSchema(schema.FamilyString)
	if _, err := NewPlan(s, s, "oracle", Options{}); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestPlanRejectsBadEngineVersion(t *testing.T) {
	s := tagSchema(schema.FamilyString)
	if _, err := NewPlan(s, s, "postgresql", Options{EngineVersion: "not-a-version"}); err == nil {
		t.Fatal("expected an error for a malformed engine version")
	}
}

func TestDriftSummaryListsSteps(t *testing.T) {
	previous := tagSchema(schema.FamilyString)
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.Column("tag", schema.FamilyString)
	cat.Column("age", schema.FamilyInt, schema.Nullable())
	cat.PrimaryKey("Cat_pkey", id)
	next := b.Build()

	plan, err := NewPlan(previous, next, "postgresql", Options{})
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	summary := plan.DriftSummary()
	if !strings.Contains(summary, "## Changes") {
		t.Errorf("summary is missing the changes section: %q", summary)
	}
	if !strings.Contains(summary, `alter table "Cat"`) {
		t.Errorf("summary does not describe the table change: %q", summary)
	}
}
