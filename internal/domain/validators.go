package domain

import (
	"fmt"
	"sort"
	"strings"
)

// RequireFields returns an error naming every field whose value is blank.
// Names are reported in sorted order so messages are stable.
func RequireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	if len(missing) == 1 {
		return fmt.Errorf("%s is required", missing[0])
	}
	return fmt.Errorf("%s are required", strings.Join(missing, " and "))
}
