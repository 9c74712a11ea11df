package config

import (
	"fmt"

	"github.com/idursun/layerview/internal/navigation"
)

// ParseLink maps a group's link setting to a link type. Empty means linked.
func ParseLink(s string) (navigation.LinkType, error) {
	switch s {
	case "", "linked":
		return navigation.Linked, nil
	case "relative":
		return navigation.Relative, nil
	case "unlinked":
		return navigation.Unlinked, nil
	}
	return navigation.Linked, fmt.Errorf("unknown link %q", s)
}
