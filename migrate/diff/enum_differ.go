package diff

import (
	"github.com/sqlmorph/sqlmorph/schema"
)

// pushEnumSteps emits AlterEnum steps for surviving enums whose variant sets
// diverged. Identical variant sets produce nothing.
func pushEnumSteps(db *DifferDatabase, steps []Step) []Step {
	for _, pair := range db.EnumPairs() {
		enums := schema.EnumPair(db.schemas, pair)

		created := variantsOnlyIn(enums.Next, enums.Previous)
		dropped := variantsOnlyIn(enums.Previous, enums.Next)
		if len(created) == 0 && len(dropped) == 0 {
			continue
		}

		step := AlterEnum{
			Enums:           pair,
			CreatedVariants: created,
			DroppedVariants: dropped,
		}
		if len(dropped) > 0 {
			step.PreviousUsagesAsDefault = previousUsagesAsDefault(db, enums)
		}
		steps = append(steps, step)
	}
	return steps
}

// variantsOnlyIn returns the variants of a that b lacks, in a's declaration
// order.
func variantsOnlyIn(a, b schema.EnumWalker) []string {
	var out []string
	for _, v := range a.Variants() {
		if !b.HasVariant(v) {
			out = append(out, v)
		}
	}
	return out
}

// previousUsagesAsDefault collects the previous snapshot's columns typed
// with the altered enum that carry a default, paired with the surviving
// column when it still has an enum default in the next snapshot. Renderers
// that recreate the type drop these defaults before casting and reinstate
// the surviving ones afterwards.
func previousUsagesAsDefault(db *DifferDatabase, enums schema.Pair[schema.EnumWalker]) []UsageAsDefault {
	var usages []UsageAsDefault
	prevSchema := db.schemas.Previous
	for i := range prevSchema.Columns {
		col := prevSchema.WalkColumn(schema.ColumnID(i))
		enum, ok := col.EnumType()
		if !ok || enum.ID != enums.Previous.ID || col.Default() == nil {
			continue
		}
		usage := UsageAsDefault{Previous: col.ID}
		if nextID, ok := db.survivingColumn(col); ok {
			nextCol := db.schemas.Next.WalkColumn(nextID)
			nextEnum, stillEnum := nextCol.EnumType()
			if stillEnum && nextEnum.ID == enums.Next.ID && nextCol.Default() != nil {
				id := nextID
				usage.Next = &id
			}
		}
		usages = append(usages, usage)
	}
	return usages
}
