package schema

// Pair bundles a previous and a next value of the same kind. Diffing and
// rendering pass pairs around wherever both sides of a migration are needed.
type Pair[T any] struct {
	Previous T
	Next     T
}

// PairOf builds a pair from its two sides.
func PairOf[T any](previous, next T) Pair[T] {
	return Pair[T]{Previous: previous, Next: next}
}

// Tuple unpacks the pair.
func (p Pair[T]) Tuple() (previous, next T) {
	return p.Previous, p.Next
}

// MapPair applies f to both sides of a pair.
func MapPair[A, B any](p Pair[A], f func(A) B) Pair[B] {
	return Pair[B]{Previous: f(p.Previous), Next: f(p.Next)}
}

// Schemas is the pair of snapshots a migration runs between.
type Schemas = Pair[*Schema]

// TablePair resolves a table id pair into walkers.
func TablePair(schemas Schemas, ids Pair[TableID]) Pair[TableWalker] {
	return Pair[TableWalker]{
		Previous: schemas.Previous.WalkTable(ids.Previous),
		Next:     schemas.Next.WalkTable(ids.Next),
	}
}

// ColumnPair resolves a column id pair into walkers.
func ColumnPair(schemas Schemas, ids Pair[ColumnID]) Pair[ColumnWalker] {
	return Pair[ColumnWalker]{
		Previous: schemas.Previous.WalkColumn(ids.Previous),
		Next:     schemas.Next.WalkColumn(ids.Next),
	}
}

// IndexPair resolves an index id pair into walkers.
func IndexPair(schemas Schemas, ids Pair[IndexID]) Pair[IndexWalker] {
	return Pair[IndexWalker]{
		Previous: schemas.Previous.WalkIndex(ids.Previous),
		Next:     schemas.Next.WalkIndex(ids.Next),
	}
}

// EnumPair resolves an enum id pair into walkers.
func EnumPair(schemas Schemas, ids Pair[EnumID]) Pair[EnumWalker] {
	return Pair[EnumWalker]{
		Previous: schemas.Previous.WalkEnum(ids.Previous),
		Next:     schemas.Next.WalkEnum(ids.Next),
	}
}

// ForeignKeyPair resolves a foreign key id pair into walkers.
func ForeignKeyPair(schemas Schemas, ids Pair[ForeignKeyID]) Pair[ForeignKeyWalker] {
	return Pair[ForeignKeyWalker]{
		Previous: schemas.Previous.WalkForeignKey(ids.Previous),
		Next:     schemas.Next.WalkForeignKey(ids.Next),
	}
}

// SequencePair resolves a sequence id pair into walkers.
func SequencePair(schemas Schemas, ids Pair[SequenceID]) Pair[SequenceWalker] {
	return Pair[SequenceWalker]{
		Previous: schemas.Previous.WalkSequence(ids.Previous),
		Next:     schemas.Next.WalkSequence(ids.Next),
	}
}

// ExtensionPair resolves an extension id pair into walkers.
func ExtensionPair(schemas Schemas, ids Pair[ExtensionID]) Pair[ExtensionWalker] {
	return Pair[ExtensionWalker]{
		Previous: schemas.Previous.WalkExtension(ids.Previous),
		Next:     schemas.Next.WalkExtension(ids.Next),
	}
}
