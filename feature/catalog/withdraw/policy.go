package withdraw

import "fmt"

// Policy decides which journals a withdrawal run may delete based on how
// their publisher relates to the external directory.
type Policy string

const (
	// PolicyRespectLinking deletes journals of directory publishers and of
	// publishers linked to the directory.
	PolicyRespectLinking Policy = "respect-linking"
	// PolicyForceIncludeAll deletes every matched journal regardless of its
	// publisher's directory status.
	PolicyForceIncludeAll Policy = "force-include-all"
	// PolicyForceExcludeLinked deletes only journals of directory publishers,
	// never those of merely linked ones.
	PolicyForceExcludeLinked Policy = "force-exclude-linked"
)

// ParsePolicy validates a policy name from a flag or request.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRespectLinking, PolicyForceIncludeAll, PolicyForceExcludeLinked:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown withdrawal policy %q", s)
}
