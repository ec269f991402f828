package history

import "fmt"

// Batch chains mutations into one, so the whole sequence lands on the undo
// stack as a single entry. If any step fails the batch fails.
func Batch[T any](mutations ...Mutation[T]) Mutation[T] {
	return func(doc T) (T, error) {
		for i, mut := range mutations {
			next, err := mut(doc)
			if err != nil {
				var zero T
				return zero, fmt.Errorf("batch step %d: %w", i, err)
			}
			doc = next
		}
		return doc, nil
	}
}

// Transaction applies several mutations as one undo unit.
func (m *Manager[T]) Transaction(label string, mutations ...Mutation[T]) (T, error) {
	return m.ApplyNamed(label, Batch(mutations...))
}
