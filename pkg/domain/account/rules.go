package account

import (
	"fmt"
	"strings"
)

// ValidateName checks that a single account name is usable as a path
// segment: non-empty and free of the separator.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, Separator)
	}
	return nil
}

// ValidatePath checks that every segment of a full path is a valid name.
func ValidatePath(path string) error {
	for _, segment := range SplitPath(path) {
		if err := ValidateName(segment); err != nil {
			return err
		}
	}
	return nil
}

// CompatibleParentChild reports whether two account types may sit adjacent
// in the hierarchy. Compatibility is symmetric: both types must carry a
// running balance, or neither.
func CompatibleParentChild(parent, child Type) bool {
	return parent.HasRunningBalance() == child.HasRunningBalance()
}

// ValidateOpening checks the pairing rule between an account type and its
// opening data: running-balance accounts must have it, flow accounts must
// not.
func ValidateOpening(t Type, opening *Opening) error {
	if t.HasRunningBalance() && opening == nil {
		return fmt.Errorf("%w: %s account needs an opening date and balance", ErrOpeningData, t)
	}
	if !t.HasRunningBalance() && opening != nil {
		return fmt.Errorf("%w: %s account cannot carry an opening balance", ErrOpeningData, t)
	}
	return nil
}

// ValidateRunningBalanceToggle checks whether an account's running-balance
// property may change. Flipping it is only allowed on an isolated account,
// one with no parent and no children, since the flip would otherwise strand
// relatives in a different type group.
func ValidateRunningBalanceToggle(hasParent bool, childCount int) error {
	if hasParent {
		return fmt.Errorf("%w: account has a parent", ErrRunningBalance)
	}
	if childCount > 0 {
		return fmt.Errorf("%w: account has %d children", ErrRunningBalance, childCount)
	}
	return nil
}
