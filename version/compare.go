package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// semver is a parsed release tag. A pre-release such as "rc.1" sorts
// before the release it precedes.
type semver struct {
	core       []int
	prerelease string
}

func parse(s string) (semver, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "+")
	s, pre, _ := strings.Cut(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return semver{}, fmt.Errorf("invalid version %q", s)
	}

	core := make([]int, 0, 3)
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return semver{}, fmt.Errorf("invalid version %q", s)
		}
		core = append(core, n)
	}

	return semver{core: core, prerelease: pre}, nil
}

// Compare returns 1 when a is newer than b, -1 when it is older and 0 when
// both name the same release.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	if c := slices.Compare(av.core, bv.core); c != 0 {
		return c, nil
	}

	switch {
	case av.prerelease == bv.prerelease:
		return 0, nil
	case av.prerelease == "":
		return 1, nil
	case bv.prerelease == "":
		return -1, nil
	}

	return lo.Ternary(av.prerelease > bv.prerelease, 1, -1), nil
}
