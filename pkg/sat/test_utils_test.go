package sat

import "math/rand/v2"

func generateProblem(rng *rand.Rand, variables uint64, groups int) Problem {
	problem := Problem{
		Variables: variables,
		Groups:    make([]Group, groups),
	}

	for i := range groups {
		size := 1 + rng.IntN(min(int(variables), 5))
		members := rng.Perm(int(variables))[:size]

		group := Group{
			Name:      "random",
			Kind:      AtMost,
			Variables: make([]uint64, 0, size),
		}
		for _, member := range members {
			group.Variables = append(group.Variables, uint64(member))
		}

		if rng.Float32() < 0.4 {
			group.Kind = Exactly
			group.Bound = uint64(rng.IntN(size + 1))
		} else {
			group.Bound = uint64(rng.IntN(size))
		}
		problem.Groups[i] = group
	}

	return problem
}
