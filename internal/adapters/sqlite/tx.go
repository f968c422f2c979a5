package sqlite

import (
	"context"
	"fmt"

	"daybook/internal/ports"
)

// DeleteCascade removes the child rows then the parent row in one transaction
func (s *Store) DeleteCascade(ctx context.Context, c ports.Cascade) error {
	parent, err := lookupTable(c.ParentTable)
	if err != nil {
		return err
	}
	child, err := lookupTable(c.ChildTable)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteRows(ctx, tx, child, c.ChildFilter); err != nil {
		return fmt.Errorf("delete from %s: %w", child.name, err)
	}
	if err := deleteRows(ctx, tx, parent, c.ParentFilter); err != nil {
		return fmt.Errorf("delete from %s: %w", parent.name, err)
	}

	return tx.Commit()
}
