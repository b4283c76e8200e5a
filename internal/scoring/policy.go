package scoring

import (
	"fmt"
	"strings"

	"style-finder/internal/domain"
)

// Policy decides which style each response contributes to. Exactly one policy is active per run.
type Policy string

const (
	// PolicyGroupIdentity sums each group and adds the total to the group's style.
	// PART 5 and PART 6 are not mapped and do not contribute.
	PolicyGroupIdentity Policy = "group-identity"
	// PolicyRoundRobin assigns items to styles by their position within their group, modulo 4.
	PolicyRoundRobin Policy = "round-robin"
)

var groupStyles = map[domain.Group]domain.Style{
	1: domain.StyleTopDog,
	2: domain.StyleCollaborator,
	3: domain.StyleChillaxer,
	4: domain.StyleVisionary,
}

func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(name))); p {
	case PolicyGroupIdentity, PolicyRoundRobin:
		return p, nil
	case "":
		return PolicyGroupIdentity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Aggregate folds records into per-style totals. All four styles are present, starting at 0.
func (p Policy) Aggregate(records []domain.ResponseRecord) (domain.StyleTotals, error) {
	totals := domain.NewStyleTotals()
	switch p {
	case PolicyGroupIdentity:
		groupTotals := make(map[domain.Group]int)
		for _, r := range records {
			groupTotals[r.Group] += r.Score
		}
		for g, total := range groupTotals {
			if style, ok := groupStyles[g]; ok {
				totals[style] += total
			}
		}
	case PolicyRoundRobin:
		styles := domain.Styles()
		positions := make(map[domain.Group]int)
		for _, r := range records {
			pos := positions[r.Group]
			positions[r.Group] = pos + 1
			totals[styles[pos%len(styles)]] += r.Score
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(p))
	}
	return totals, nil
}

// MaxStyleScore is the highest total any single style can reach for the given catalog.
// It is the upper bound of the chart's radial axis.
func (p Policy) MaxStyleScore(items []domain.QuestionItem) (int, error) {
	counts := make(map[domain.Style]int)
	switch p {
	case PolicyGroupIdentity:
		for _, item := range items {
			if style, ok := groupStyles[item.Group]; ok {
				counts[style]++
			}
		}
	case PolicyRoundRobin:
		styles := domain.Styles()
		positions := make(map[domain.Group]int)
		for _, item := range items {
			pos := positions[item.Group]
			positions[item.Group] = pos + 1
			counts[styles[pos%len(styles)]]++
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(p))
	}
	highest := 0
	for _, n := range counts {
		if n > highest {
			highest = n
		}
	}
	return highest * domain.MaxScore, nil
}
